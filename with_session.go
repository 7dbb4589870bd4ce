package bisca

import (
	"context"
	"fmt"
)

// WithSession manages session lifecycle with automatic cleanup.
//
// This helper creates a session with the provided options, starts it,
// executes the callback function, and ensures the engine is stopped when
// done. If Stop fails, a warning is logged but does not override the
// callback's error.
//
// Example usage:
//
//	err := bisca.WithSession(ctx, func(s bisca.Session) error {
//	    snap, ok := s.Latest()
//	    if !ok {
//	        return errors.New("no position")
//	    }
//	    fmt.Println(snap.DeckCount)
//	    return nil
//	},
//	    bisca.WithLogger(log),
//	    bisca.WithProfile(bisca.ProfileByID("hard")),
//	)
func WithSession(ctx context.Context, fn func(Session) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	s := NewSession(opts...)
	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	defer func() {
		if stopErr := s.Stop(); stopErr != nil {
			log.Warn("failed to stop session", "error", stopErr)
		}
	}()

	return fn(s)
}
