// Package autoplay plays whole hands with the engine choosing the move for
// both seats. Hands run on parallel sessions and feed a match scoreboard and
// an optional ledger.
package autoplay

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/bisca-engine-go/internal/ledger"
	"github.com/wagiedev/bisca-engine-go/internal/match"
	"github.com/wagiedev/bisca-engine-go/internal/session"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// defaultMaxPlies bounds a hand: forty cards plus slack.
const defaultMaxPlies = 64

var (
	// ErrNoBestMove indicates the engine gave no move in an unfinished hand.
	ErrNoBestMove = stderrors.New("engine gave no best move")
	// ErrHandStalled indicates a hand exceeded the ply limit.
	ErrHandStalled = stderrors.New("hand did not finish within the ply limit")
)

// Player is the part of a session autoplay drives.
type Player interface {
	ID() string
	Start(ctx context.Context) error
	NewGame(ctx context.Context) (snapshot.Snapshot, error)
	BestMove(ctx context.Context) (*session.BestMove, error)
	Play(ctx context.Context, index int) (*session.PlayResult, error)
	Latest() (snapshot.Snapshot, bool)
	Stop() error
}

// Recorder stores finished hands.
type Recorder interface {
	RecordHand(ctx context.Context, hand ledger.HandRecord) (ledger.HandRecord, error)
}

// Config controls a run.
type Config struct {
	// Hands is the number of hands to play.
	Hands int
	// Workers is the number of parallel sessions. Defaults to 1.
	Workers int
	// MaxPlies bounds a single hand. Defaults to 64.
	MaxPlies int
	// NewPlayer creates one unstarted session per worker.
	NewPlayer func() Player
	// Scoreboard receives every finished hand. Required.
	Scoreboard *match.Scoreboard
	// Recorder is optional.
	Recorder Recorder
	// Profile and Engine label ledger records.
	Profile string
	Engine  string
	Logger  *slog.Logger
}

// Summary reports a completed run.
type Summary struct {
	Hands  int
	Total0 int
	Total1 int
}

// Run plays cfg.Hands hands and returns the scoreboard totals. The first
// failing hand cancels the run.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.NewPlayer == nil || cfg.Scoreboard == nil {
		return Summary{}, fmt.Errorf("autoplay: player factory and scoreboard are required")
	}

	if cfg.Hands <= 0 {
		return Summary{}, nil
	}

	workers := min(max(cfg.Workers, 1), cfg.Hands)

	if cfg.MaxPlies <= 0 {
		cfg.MaxPlies = defaultMaxPlies
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log = log.With("component", "autoplay")
	log.Info("Starting autoplay", "hands", cfg.Hands, "workers", workers)

	var (
		next   atomic.Int64
		played atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)

	for w := range workers {
		g.Go(func() error {
			r := &runner{cfg: cfg, log: log.With("worker", w)}

			return r.run(gctx, func() bool { return next.Add(1) <= int64(cfg.Hands) }, &played)
		})
	}

	err := g.Wait()

	total0, total1 := cfg.Scoreboard.Totals()
	summary := Summary{Hands: int(played.Load()), Total0: total0, Total1: total1}

	if err != nil {
		return summary, err
	}

	log.Info("Autoplay finished", "hands", summary.Hands, "total0", total0, "total1", total1)

	return summary, nil
}

type runner struct {
	cfg Config
	log *slog.Logger
}

// run plays hands on one session while claim grants them.
func (r *runner) run(ctx context.Context, claim func() bool, played *atomic.Int64) error {
	player := r.cfg.NewPlayer()
	defer func() { _ = player.Stop() }()

	if err := player.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	// Start deals the first hand.
	fresh := true

	for claim() {
		if !fresh {
			if _, err := player.NewGame(ctx); err != nil {
				return fmt.Errorf("new game: %w", err)
			}
		}

		fresh = false

		final, plies, err := r.playHand(ctx, player)
		if err != nil {
			return fmt.Errorf("session %s: %w", player.ID(), err)
		}

		round := r.cfg.Scoreboard.Record(final)
		played.Add(1)

		r.log.Info("Hand finished",
			"session_id", player.ID(), "score0", round.Score0, "score1", round.Score1,
			"gain0", round.Gain0, "gain1", round.Gain1, "plies", plies)

		if r.cfg.Recorder != nil {
			if _, err := r.cfg.Recorder.RecordHand(ctx, ledger.HandRecord{
				SessionID: player.ID(),
				Profile:   r.cfg.Profile,
				Engine:    r.cfg.Engine,
				Score0:    round.Score0,
				Score1:    round.Score1,
				Gain0:     round.Gain0,
				Gain1:     round.Gain1,
				Plays:     plies,
			}); err != nil {
				return fmt.Errorf("record hand: %w", err)
			}
		}
	}

	return nil
}

// playHand lets the engine move for whoever is to play until the hand ends.
func (r *runner) playHand(ctx context.Context, player Player) (snapshot.Snapshot, int, error) {
	for plies := 0; ; plies++ {
		snap, ok := player.Latest()
		if !ok {
			return snapshot.Snapshot{}, plies, fmt.Errorf("no position recorded")
		}

		if snap.Finished {
			return snap, plies, nil
		}

		if plies >= r.cfg.MaxPlies {
			return snapshot.Snapshot{}, plies, ErrHandStalled
		}

		best, err := player.BestMove(ctx)
		if err != nil {
			return snapshot.Snapshot{}, plies, fmt.Errorf("best move: %w", err)
		}

		if best.Index == nil {
			return snapshot.Snapshot{}, plies, fmt.Errorf("%w: %q", ErrNoBestMove, best.Text)
		}

		if _, err := player.Play(ctx, *best.Index); err != nil {
			return snapshot.Snapshot{}, plies, fmt.Errorf("play %d: %w", *best.Index, err)
		}
	}
}
