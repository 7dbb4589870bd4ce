package bisca

import (
	"context"

	"github.com/wagiedev/bisca-engine-go/internal/session"
)

// Session drives one bisca engine through a hand-by-hand game and keeps a
// navigable history of the positions it reported.
//
// Lifecycle: sessions are single-use. After Stop, create a new one with
// NewSession. A session runs one engine command at a time; a concurrent
// caller gets ErrCommandInFlight instead of waiting.
//
// Example usage:
//
//	s := bisca.NewSession(
//	    bisca.WithLogger(slog.Default()),
//	    bisca.WithEngine(bisca.EngineMCTS),
//	    bisca.WithIterations(2000),
//	)
//	if err := s.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//
//	best, err := s.BestMove(ctx)
//	if err != nil || best.Index == nil {
//	    log.Fatal("no move")
//	}
//
//	result, err := s.Play(ctx, *best.Index)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range result.Events {
//	    // react to CardPlayed, TrickCollected, HandFinished...
//	}
type Session interface {
	// ID returns the session's unique identifier.
	ID() string

	// State returns the lifecycle state.
	State() SessionState

	// Status returns the engine's start-up status text.
	Status() string

	// Options returns the effective, defaulted options.
	Options() Options

	// Start brings the engine up and deals the first hand.
	// Returns ConfigurationError for unusable options and
	// TransportUnavailableError when the engine cannot be started.
	Start(ctx context.Context) error

	// NewGame deals a new hand and resets the history to it.
	NewGame(ctx context.Context) (Snapshot, error)

	// Show asks the engine for the current position without recording it.
	Show(ctx context.Context) (Snapshot, error)

	// BestMove asks the engine for the current player's best hand index.
	BestMove(ctx context.Context) (*BestMove, error)

	// Play plays the card at index for the current player, records the
	// resulting position and returns the events it implies.
	// Returns an InvalidMoveError when index is not in the player's hand.
	Play(ctx context.Context, index int) (*PlayResult, error)

	// Rewind steps the replay cursor one position back.
	Rewind() (Snapshot, bool)

	// Forward steps the replay cursor one position forward.
	Forward() (Snapshot, bool)

	// Current returns the snapshot under the replay cursor.
	Current() (Snapshot, bool)

	// Latest returns the most recent snapshot.
	Latest() (Snapshot, bool)

	// Stop tears down the engine. It's safe to call Stop multiple times.
	Stop() error
}

// Compile-time verification that the session implementation satisfies Session.
var _ Session = (*session.Session)(nil)

// NewSession creates an unstarted session configured by opts.
func NewSession(opts ...Option) Session {
	return session.New(applyOptions(opts))
}
