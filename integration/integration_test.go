//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	bisca "github.com/wagiedev/bisca-engine-go"
)

// skipIfEngineNotInstalled skips the test if the error indicates the engine is not found.
func skipIfEngineNotInstalled(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*bisca.EngineNotFoundError](err); ok {
		t.Skip("bisca engine not installed")
	}
}

// baseDirOption points sessions at BISCA_ENGINE_DIR when it is set.
func baseDirOption() bisca.Option {
	return bisca.WithBaseDir(os.Getenv("BISCA_ENGINE_DIR"))
}

// startSession starts a session or skips the test when no engine is installed.
func startSession(ctx context.Context, t *testing.T, opts ...bisca.Option) bisca.Session {
	t.Helper()

	s := bisca.NewSession(append([]bisca.Option{baseDirOption()}, opts...)...)

	if err := s.Start(ctx); err != nil {
		skipIfEngineNotInstalled(t, err)
		t.Fatalf("Start failed: %v", err)
	}

	t.Cleanup(func() { _ = s.Stop() })

	return s
}

// playOut lets the engine move for both seats until the hand ends.
func playOut(ctx context.Context, t *testing.T, s bisca.Session) (bisca.Snapshot, []bisca.GameEvent) {
	t.Helper()

	var events []bisca.GameEvent

	for range 64 {
		snap, ok := s.Latest()
		if !ok {
			t.Fatal("no position recorded")
		}

		if snap.Finished {
			return snap, events
		}

		best, err := s.BestMove(ctx)
		if err != nil {
			t.Fatalf("BestMove failed: %v", err)
		}

		if best.Index == nil {
			t.Fatalf("engine gave no move: %q", best.Text)
		}

		result, err := s.Play(ctx, *best.Index)
		if err != nil {
			t.Fatalf("Play(%d) failed: %v", *best.Index, err)
		}

		events = append(events, result.Events...)
	}

	t.Fatal("hand did not finish")

	return bisca.Snapshot{}, nil
}
