package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/wagiedev/bisca-engine-go/internal/config"
	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/event"
	"github.com/wagiedev/bisca-engine-go/internal/protocol"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// position describes one engine state rendered as a show dump.
type position struct {
	p0, p1   []string
	trick    []string
	current  int
	finished bool
	score0   int
	score1   int
}

func (p position) dump() string {
	var b strings.Builder

	b.WriteString(snapshot.Terminator + "\n")
	b.WriteString("Trunfo: A de Espadas (Espadas)\n")
	fmt.Fprintf(&b, "Pontuacao: P0=%d P1=%d\n", p.score0, p.score1)
	b.WriteString("Deck restante: 0 cartas\n")
	fmt.Fprintf(&b, "CurrentPlayer: %d\n", p.current)
	b.WriteString("Mao P0:\n")

	for i, c := range p.p0 {
		fmt.Fprintf(&b, "  [%d] %s\n", i, c)
	}

	b.WriteString("Mao P1:\n")

	for i, c := range p.p1 {
		fmt.Fprintf(&b, "  [%d] %s\n", i, c)
	}

	fmt.Fprintf(&b, "Trick atual (%d cartas jogadas nesta vaza):\n", len(p.trick))

	for i, c := range p.trick {
		fmt.Fprintf(&b, "  (%d) %s\n", i, c)
	}

	finished := "NAO"
	if p.finished {
		finished = "SIM"
	}

	fmt.Fprintf(&b, "Jogo terminado: %s\n", finished)
	b.WriteString(snapshot.Terminator + "\n")

	return b.String()
}

// line is a short hand: P0 leads with K de Paus, P1 answers and the hand ends.
var line = []position{
	{
		p0:      []string{"7 de Copas", "K de Paus"},
		p1:      []string{"2 de Ouros", "Q de Copas"},
		current: 0,
	},
	{
		p0:      []string{"7 de Copas"},
		p1:      []string{"2 de Ouros", "Q de Copas"},
		trick:   []string{"K de Paus"},
		current: 1,
	},
	{
		p0:       []string{"7 de Copas"},
		p1:       []string{"Q de Copas"},
		trick:    []string{"K de Paus", "2 de Ouros"},
		current:  0,
		finished: true,
		score0:   4,
	},
}

// fakeTransport replays a fixed line of positions.
type fakeTransport struct {
	mu        sync.Mutex
	positions []position
	pos       int
	status    string
	startErr  error
	sendErr   error
	rejectAll bool
	bestText  string
	timeout   map[protocol.Kind]bool
	blockOn   protocol.Kind // commands of this kind wait on block when set
	block     chan struct{}
	entered   chan struct{}
	holdStart chan struct{} // Start waits on it when set
	sent      []protocol.Command
	stops     int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		positions: line,
		status:    "Bisca4 Engine pronto.",
		bestText:  "bestmove index=1 eval=0.75",
		timeout:   map[protocol.Kind]bool{},
	}
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Start(context.Context) (string, error) {
	if f.holdStart != nil {
		f.entered <- struct{}{}
		<-f.holdStart
	}

	if f.startErr != nil {
		return "", f.startErr
	}

	return f.status, nil
}

func (f *fakeTransport) Send(_ context.Context, cmd protocol.Command) (*protocol.Response, error) {
	f.mu.Lock()
	f.sent = append(f.sent, cmd)
	block, entered, blockOn := f.block, f.entered, f.blockOn
	f.mu.Unlock()

	if block != nil && cmd.Kind == blockOn {
		entered <- struct{}{}
		<-block
	}

	if f.sendErr != nil {
		return nil, f.sendErr
	}

	resp := &protocol.Response{Command: cmd, TimedOut: f.timeout[cmd.Kind]}

	switch cmd.Kind {
	case protocol.KindNewGame:
		f.pos = 0
		resp.Text = "Novo jogo iniciado.\n" + f.positions[0].dump()
	case protocol.KindShow:
		resp.Text = f.positions[f.pos].dump()
	case protocol.KindPlay:
		if f.rejectAll {
			resp.Text = fmt.Sprintf("Jogada inválida (idx=%d).\n", cmd.Index)

			break
		}

		f.pos = min(f.pos+1, len(f.positions)-1)
		resp.Text = fmt.Sprintf("Jogada efetuada (idx %d).\n", cmd.Index) + f.positions[f.pos].dump()
	case protocol.KindBestMove:
		resp.Text = f.bestText
	}

	return resp, nil
}

func (f *fakeTransport) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stops++

	return nil
}

func (f *fakeTransport) kinds() []protocol.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]protocol.Kind, 0, len(f.sent))
	for _, cmd := range f.sent {
		out = append(out, cmd.Kind)
	}

	return out
}

func startSession(t *testing.T, transport *fakeTransport) *Session {
	t.Helper()

	s := New(&config.Options{Transport: transport})
	t.Cleanup(func() { _ = s.Stop() })

	require.NoError(t, s.Start(context.Background()))

	return s
}

func TestStart(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)

	require.Equal(t, StateReady, s.State())
	require.Equal(t, "Bisca4 Engine pronto.", s.Status())
	require.Len(t, s.ID(), 26)
	require.Equal(t, []protocol.Kind{protocol.KindNewGame, protocol.KindShow}, transport.kinds())

	snap, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, 0, snap.CurrentPlayer)
	require.Len(t, snap.P0Hand, 2)
	require.Equal(t, 0, s.history.Cursor())
	require.Equal(t, 1, s.history.Len())
}

func TestStart_Twice(t *testing.T) {
	s := startSession(t, newFakeTransport())

	require.ErrorIs(t, s.Start(context.Background()), errors.ErrSessionAlreadyStarted)
}

func TestStart_InvalidOptions(t *testing.T) {
	transport := newFakeTransport()
	s := New(&config.Options{Transport: transport, Depth: -1})

	err := s.Start(context.Background())

	cfgErr, ok := stderrors.AsType[*errors.ConfigurationError](err)
	require.True(t, ok)
	require.Equal(t, "depth", cfgErr.Field)
	require.Equal(t, StateStopped, s.State())
	require.Empty(t, transport.kinds())

	require.ErrorIs(t, s.Start(context.Background()), errors.ErrSessionStopped)
}

func TestStart_TransportFailure(t *testing.T) {
	transport := newFakeTransport()
	transport.startErr = &errors.TransportUnavailableError{Backend: "fake", Err: stderrors.New("boom")}

	s := New(&config.Options{Transport: transport})

	err := s.Start(context.Background())

	_, ok := stderrors.AsType[*errors.TransportUnavailableError](err)
	require.True(t, ok)
	require.Equal(t, StateStopped, s.State())
}

func TestStart_DealFailureStopsTransport(t *testing.T) {
	transport := newFakeTransport()
	transport.sendErr = &errors.ProcessExitedError{ExitCode: 1}

	s := New(&config.Options{Transport: transport})

	err := s.Start(context.Background())
	require.Error(t, err)

	_, ok := stderrors.AsType[*errors.ProcessExitedError](err)
	require.True(t, ok)
	require.Equal(t, StateStopped, s.State())
	require.Equal(t, 1, transport.stops)
}

func TestStart_ConcurrentStopWins(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fakeTransport) chan struct{}
	}{
		{
			name: "stop while engine starts",
			prepare: func(f *fakeTransport) chan struct{} {
				f.holdStart = make(chan struct{})

				return f.holdStart
			},
		},
		{
			name: "stop while dealing",
			prepare: func(f *fakeTransport) chan struct{} {
				f.blockOn = protocol.KindNewGame
				f.block = make(chan struct{})

				return f.block
			},
		},
		{
			name: "stop before first show returns",
			prepare: func(f *fakeTransport) chan struct{} {
				f.blockOn = protocol.KindShow
				f.block = make(chan struct{})

				return f.block
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newFakeTransport()
			transport.entered = make(chan struct{})
			release := tt.prepare(transport)

			s := New(&config.Options{Transport: transport})
			done := make(chan error, 1)

			go func() { done <- s.Start(context.Background()) }()

			select {
			case <-transport.entered:
			case <-time.After(5 * time.Second):
				t.Fatal("start never reached the transport")
			}

			require.NoError(t, s.Stop())
			close(release)

			require.ErrorIs(t, <-done, errors.ErrSessionStopped)
			require.Equal(t, StateStopped, s.State())

			transport.mu.Lock()
			require.Equal(t, 1, transport.stops)
			transport.mu.Unlock()

			_, err := s.Play(context.Background(), 0)
			require.ErrorIs(t, err, errors.ErrSessionStopped)
		})
	}
}

func TestPlay(t *testing.T) {
	s := startSession(t, newFakeTransport())
	ctx := context.Background()

	result, err := s.Play(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, result.Text, "Jogada efetuada")
	require.False(t, result.TimedOut)
	require.Equal(t, 1, result.Snapshot.CurrentPlayer)
	require.Equal(t, []event.GameEvent{
		&event.CardPlayed{By: 0, Card: snapshot.Card{Rank: "K", Suit: "Paus", Code: "KC"}},
	}, result.Events)
	require.Equal(t, 2, s.history.Len())

	result, err = s.Play(ctx, 0)
	require.NoError(t, err)
	require.True(t, result.Snapshot.Finished)
	require.Len(t, result.Events, 2)
	require.Equal(t, &event.CardPlayed{By: 1, Card: snapshot.Card{Rank: "2", Suit: "Ouros", Code: "2D"}}, result.Events[0])
	require.Equal(t, &event.HandFinished{Score0: 4, Score1: 0}, result.Events[1])

	_, err = s.Play(ctx, 0)
	require.ErrorIs(t, err, errors.ErrHandFinished)
}

func TestPlay_InvalidIndex(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)

	for _, index := range []int{-1, 2, 9} {
		_, err := s.Play(context.Background(), index)
		require.ErrorIs(t, err, errors.ErrInvalidMoveIndex)

		invalid, ok := stderrors.AsType[*errors.InvalidMoveError](err)
		require.True(t, ok)
		require.Equal(t, 0, invalid.Player)
		require.Equal(t, []int{0, 1}, invalid.Allowed)
	}

	require.Equal(t, []protocol.Kind{protocol.KindNewGame, protocol.KindShow}, transport.kinds())
	require.Equal(t, 1, s.history.Len())
}

func TestPlay_EngineRejects(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)
	transport.rejectAll = true

	_, err := s.Play(context.Background(), 0)
	require.ErrorIs(t, err, errors.ErrInvalidMoveIndex)
	require.Equal(t, 1, s.history.Len())
}

func TestPlay_TimedOutConfirmationStillRecords(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)
	transport.timeout[protocol.KindPlay] = true

	result, err := s.Play(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, result.TimedOut)
	require.Len(t, result.Events, 1)
	require.Equal(t, 2, s.history.Len())
}

func TestBestMove(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)

	best, err := s.BestMove(context.Background())
	require.NoError(t, err)
	require.NotNil(t, best.Index)
	require.Equal(t, 1, *best.Index)
	require.NotNil(t, best.Eval)
	require.InDelta(t, 0.75, *best.Eval, 1e-9)
	require.Equal(t, 1, s.history.Len())

	transport.bestText = "nothing useful"

	best, err = s.BestMove(context.Background())
	require.NoError(t, err)
	require.Nil(t, best.Index)
	require.Equal(t, "nothing useful", best.Text)
}

func TestNewGameResetsHistory(t *testing.T) {
	s := startSession(t, newFakeTransport())
	ctx := context.Background()

	_, err := s.Play(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, s.history.Len())

	snap, err := s.NewGame(ctx)
	require.NoError(t, err)
	require.Len(t, snap.P0Hand, 2)
	require.Equal(t, 1, s.history.Len())
	require.Equal(t, 0, s.history.Cursor())
}

func TestShowDoesNotRecord(t *testing.T) {
	s := startSession(t, newFakeTransport())

	snap, err := s.Show(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.P1Hand, 2)
	require.Equal(t, 1, s.history.Len())
}

func TestNavigation(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)
	ctx := context.Background()

	_, err := s.Play(ctx, 1)
	require.NoError(t, err)

	sent := len(transport.kinds())

	snap, ok := s.Rewind()
	require.True(t, ok)
	require.Len(t, snap.Trick, 0)

	snap, ok = s.Rewind()
	require.True(t, ok)
	require.Len(t, snap.Trick, 0)

	snap, ok = s.Forward()
	require.True(t, ok)
	require.Len(t, snap.Trick, 1)

	current, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, snap.Raw, current.Raw)

	require.Len(t, transport.kinds(), sent)

	// Playing while rewound uses the live position.
	_, _ = s.Rewind()

	result, err := s.Play(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, result.Events[0].(*event.CardPlayed).By)

	latest, ok := s.Latest()
	require.True(t, ok)
	require.True(t, latest.Finished)
}

func TestLifecycle(t *testing.T) {
	transport := newFakeTransport()
	s := New(&config.Options{Transport: transport})
	ctx := context.Background()

	require.Equal(t, StateCreated, s.State())

	_, err := s.BestMove(ctx)
	require.ErrorIs(t, err, errors.ErrSessionNotStarted)

	_, err = s.Play(ctx, 0)
	require.ErrorIs(t, err, errors.ErrSessionNotStarted)

	_, ok := s.Current()
	require.False(t, ok)

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	require.Equal(t, StateStopped, s.State())
	require.Equal(t, 1, transport.stops)

	_, err = s.NewGame(ctx)
	require.ErrorIs(t, err, errors.ErrSessionStopped)

	_, err = s.Show(ctx)
	require.ErrorIs(t, err, errors.ErrSessionStopped)

	// History stays navigable after Stop.
	_, ok = s.Current()
	require.True(t, ok)
}

func TestStopBeforeStart(t *testing.T) {
	s := New(nil)

	require.NoError(t, s.Stop())
	require.ErrorIs(t, s.Start(context.Background()), errors.ErrSessionStopped)
}

func TestCommandInFlight(t *testing.T) {
	transport := newFakeTransport()
	s := startSession(t, transport)

	transport.mu.Lock()
	transport.blockOn = protocol.KindBestMove
	transport.block = make(chan struct{})
	transport.entered = make(chan struct{})
	transport.mu.Unlock()

	done := make(chan error, 1)

	go func() {
		_, err := s.BestMove(context.Background())
		done <- err
	}()

	select {
	case <-transport.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("bestmove never reached the transport")
	}

	_, err := s.Play(context.Background(), 0)
	require.ErrorIs(t, err, errors.ErrCommandInFlight)

	_, err = s.BestMove(context.Background())
	require.ErrorIs(t, err, errors.ErrCommandInFlight)

	// History navigation is not blocked by the running command.
	_, ok := s.Current()
	require.True(t, ok)

	close(transport.block)
	require.NoError(t, <-done)
}

func TestCommandSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	transport := newFakeTransport()
	transport.timeout[protocol.KindShow] = true

	s := startSession(t, transport)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	for i, kind := range []string{"newgame", "show"} {
		span := spans[i]
		require.Equal(t, commandSpan, span.Name())

		attrs := map[attribute.Key]attribute.Value{}
		for _, kv := range span.Attributes() {
			attrs[kv.Key] = kv.Value
		}

		require.Equal(t, kind, attrs["bisca.command"].AsString())
		require.Equal(t, "fake", attrs["bisca.backend"].AsString())
		require.Equal(t, s.ID(), attrs["bisca.session_id"].AsString())
		require.Equal(t, kind == "show", attrs["bisca.timed_out"].AsBool())
	}
}
