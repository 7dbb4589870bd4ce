package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wagiedev/bisca-engine-go/internal/config"
	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/event"
	"github.com/wagiedev/bisca-engine-go/internal/history"
	"github.com/wagiedev/bisca-engine-go/internal/native"
	"github.com/wagiedev/bisca-engine-go/internal/protocol"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
	"github.com/wagiedev/bisca-engine-go/internal/subprocess"
)

// TracerName is the instrumentation scope of session spans.
const TracerName = "github.com/wagiedev/bisca-engine-go"

// commandSpan names the span wrapped around every engine command.
const commandSpan = "bisca.command"

// State is the lifecycle state of a Session.
type State int

const (
	// StateCreated is a session that has not been started.
	StateCreated State = iota
	// StateReady is a started session accepting commands.
	StateReady
	// StateStopped is a session whose engine has been torn down.
	StateStopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateReady:
		return "ready"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// BestMove is the engine's recommendation for the current player.
type BestMove struct {
	// Index is the recommended hand index, nil when the engine gave none.
	Index *int
	// Eval is the engine's evaluation when it reported one.
	Eval *float64
	// Text is the raw engine response.
	Text     string
	TimedOut bool
}

// PlayResult is the outcome of a successful play.
type PlayResult struct {
	// Text is the engine's confirmation text.
	Text string
	// Snapshot is the position after the play.
	Snapshot snapshot.Snapshot
	// Events are the events inferred between the previous and new position.
	Events []event.GameEvent
	// TimedOut is set when the play confirmation did not arrive in time.
	TimedOut bool
}

// Session drives one engine instance.
type Session struct {
	id      string
	log     *slog.Logger
	options *config.Options
	history *history.History
	tracer  trace.Tracer

	// cmdMu is held for the duration of an engine command.
	cmdMu sync.Mutex

	mu        sync.Mutex // protects the fields below
	state     State
	status    string
	transport config.Transport
}

// New creates a session. Options are copied and defaulted; they are
// validated by Start.
func New(options *config.Options) *Session {
	options = options.WithDefaults()

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := ulid.Make().String()

	return &Session{
		id:      id,
		log:     log.With("component", "session", "session_id", id),
		options: options,
		history: history.New(),
		tracer:  otel.Tracer(TracerName),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Options returns the session's effective options.
func (s *Session) Options() config.Options { return *s.options }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Status returns the engine's start-up status text.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// Start validates the options, brings the engine up and deals the first
// hand. The initial snapshot becomes the only entry of the history.
//
// Any failure stops the session.
func (s *Session) Start(ctx context.Context) error {
	if !s.cmdMu.TryLock() {
		return errors.ErrCommandInFlight
	}
	defer s.cmdMu.Unlock()

	s.mu.Lock()

	switch s.state {
	case StateStopped:
		s.mu.Unlock()

		return errors.ErrSessionStopped
	case StateReady:
		s.mu.Unlock()

		return errors.ErrSessionAlreadyStarted
	}

	s.mu.Unlock()

	if err := s.options.Validate(); err != nil {
		s.markStopped()

		return err
	}

	transport := s.newTransport()
	s.log.Info("Starting engine session", "backend", transport.Name(), "engine", s.options.Engine)

	status, err := transport.Start(ctx)
	if err != nil {
		s.markStopped()

		return fmt.Errorf("start transport: %w", err)
	}

	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		_ = transport.Stop()

		return errors.ErrSessionStopped
	}

	s.transport = transport
	s.status = status
	s.mu.Unlock()

	if _, err := s.deal(ctx); err != nil {
		_ = s.Stop()

		return fmt.Errorf("deal first hand: %w", err)
	}

	// A concurrent Stop owns the teardown; never revive the session.
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()

		return errors.ErrSessionStopped
	}

	s.state = StateReady
	s.mu.Unlock()

	s.log.Info("Engine session ready", "status", status)

	return nil
}

func (s *Session) newTransport() config.Transport {
	if s.options.Transport != nil {
		s.log.Debug("Using injected custom transport")

		return s.options.Transport
	}

	if s.options.Backend == config.BackendNative {
		return native.NewModuleTransport(s.log, s.options)
	}

	return subprocess.NewProcessTransport(s.log, s.options)
}

func (s *Session) markStopped() {
	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()
}

// NewGame deals a new hand and resets the history to its first position.
func (s *Session) NewGame(ctx context.Context) (snapshot.Snapshot, error) {
	if !s.cmdMu.TryLock() {
		return snapshot.Snapshot{}, errors.ErrCommandInFlight
	}
	defer s.cmdMu.Unlock()

	if err := s.requireReady(); err != nil {
		return snapshot.Snapshot{}, err
	}

	return s.deal(ctx)
}

// deal runs newgame then show and resets the history. Caller holds cmdMu.
func (s *Session) deal(ctx context.Context) (snapshot.Snapshot, error) {
	if _, err := s.command(ctx, protocol.NewGame()); err != nil {
		return snapshot.Snapshot{}, err
	}

	snap, err := s.show(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	s.history.Append(snap, true)
	s.log.Info("New hand dealt", "current_player", snap.CurrentPlayer, "deck", snap.DeckCount)

	return snap, nil
}

// Show fetches and parses the engine's current position without recording
// it.
func (s *Session) Show(ctx context.Context) (snapshot.Snapshot, error) {
	if !s.cmdMu.TryLock() {
		return snapshot.Snapshot{}, errors.ErrCommandInFlight
	}
	defer s.cmdMu.Unlock()

	if err := s.requireReady(); err != nil {
		return snapshot.Snapshot{}, err
	}

	return s.show(ctx)
}

func (s *Session) show(ctx context.Context) (snapshot.Snapshot, error) {
	resp, err := s.command(ctx, protocol.Show())
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	if resp.TimedOut {
		s.log.Warn("Parsing incomplete show output", "bytes", len(resp.Text))
	}

	return snapshot.Parse(resp.Text), nil
}

// BestMove asks the engine for the current player's best play. It has no
// effect on the history.
func (s *Session) BestMove(ctx context.Context) (*BestMove, error) {
	if !s.cmdMu.TryLock() {
		return nil, errors.ErrCommandInFlight
	}
	defer s.cmdMu.Unlock()

	if err := s.requireReady(); err != nil {
		return nil, err
	}

	resp, err := s.command(ctx, protocol.BestMove())
	if err != nil {
		return nil, err
	}

	index, eval := resp.BestMove()
	if index == nil {
		s.log.Warn("Engine gave no best move", "text", resp.Text, "timed_out", resp.TimedOut)
	}

	return &BestMove{Index: index, Eval: eval, Text: resp.Text, TimedOut: resp.TimedOut}, nil
}

// Play plays the card at index for the current player of the latest
// position, records the resulting snapshot and infers the events between
// the two positions.
//
// Returns ErrHandFinished once the hand is over, and an
// *errors.InvalidMoveError when index is not in the current player's hand
// or the engine rejects the play.
func (s *Session) Play(ctx context.Context, index int) (*PlayResult, error) {
	if !s.cmdMu.TryLock() {
		return nil, errors.ErrCommandInFlight
	}
	defer s.cmdMu.Unlock()

	if err := s.requireReady(); err != nil {
		return nil, err
	}

	prev, ok := s.history.Latest()
	if !ok {
		return nil, errors.ErrSessionNotStarted
	}

	if prev.Finished {
		return nil, errors.ErrHandFinished
	}

	actor := prev.CurrentPlayer

	if index < 0 || (prev.KnowsCurrentPlayer() && !prev.HasIndex(actor, index)) {
		return nil, &errors.InvalidMoveError{Index: index, Player: actor, Allowed: prev.HandIndices(actor)}
	}

	resp, err := s.command(ctx, protocol.Play(index))
	if err != nil {
		return nil, err
	}

	if !resp.TimedOut && !resp.PlayAccepted() {
		s.log.Warn("Engine rejected play", "index", index, "text", resp.Text)

		return nil, &errors.InvalidMoveError{Index: index, Player: actor, Allowed: prev.HandIndices(actor)}
	}

	curr, err := s.show(ctx)
	if err != nil {
		return nil, err
	}

	s.history.Append(curr, false)

	events := event.Infer(&prev, &curr, actor)
	s.log.Debug("Play recorded", "index", index, "actor", actor, "events", len(events))

	return &PlayResult{Text: resp.Text, Snapshot: curr, Events: events, TimedOut: resp.TimedOut}, nil
}

// Rewind moves the replay cursor one snapshot back.
func (s *Session) Rewind() (snapshot.Snapshot, bool) { return s.history.Rewind() }

// Forward moves the replay cursor one snapshot ahead.
func (s *Session) Forward() (snapshot.Snapshot, bool) { return s.history.Forward() }

// Current returns the snapshot under the replay cursor.
func (s *Session) Current() (snapshot.Snapshot, bool) { return s.history.Current() }

// Latest returns the most recent snapshot, the engine's live position.
func (s *Session) Latest() (snapshot.Snapshot, bool) { return s.history.Latest() }

// Stop tears the engine down. It's safe to call Stop multiple times and
// from any goroutine, including while a command is running.
func (s *Session) Stop() error {
	s.mu.Lock()

	if s.state == StateStopped && s.transport == nil {
		s.mu.Unlock()

		return nil
	}

	s.state = StateStopped
	transport := s.transport
	s.transport = nil
	s.mu.Unlock()

	if transport == nil {
		return nil
	}

	s.log.Info("Stopping engine session")

	if err := transport.Stop(); err != nil {
		return fmt.Errorf("stop transport: %w", err)
	}

	return nil
}

func (s *Session) requireReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCreated:
		return errors.ErrSessionNotStarted
	case StateStopped:
		return errors.ErrSessionStopped
	default:
		return nil
	}
}

// command sends one command inside a trace span. Caller holds cmdMu.
func (s *Session) command(ctx context.Context, cmd protocol.Command) (*protocol.Response, error) {
	s.mu.Lock()
	transport := s.transport
	s.mu.Unlock()

	if transport == nil {
		return nil, errors.ErrSessionStopped
	}

	ctx, span := s.tracer.Start(ctx, commandSpan, trace.WithAttributes(
		attribute.String("bisca.session_id", s.id),
		attribute.String("bisca.command", string(cmd.Kind)),
		attribute.String("bisca.backend", transport.Name()),
	))
	defer span.End()

	s.log.Debug("Engine command", "command", cmd.Line())

	resp, err := transport.Send(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("Engine command failed", "command", cmd.Line(), "error", err)

		return nil, fmt.Errorf("%s: %w", cmd.Kind, err)
	}

	span.SetAttributes(attribute.Bool("bisca.timed_out", resp.TimedOut))

	if resp.TimedOut {
		s.log.Warn("Engine command timed out", "command", cmd.Line())
	}

	return resp, nil
}
