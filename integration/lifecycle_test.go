//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bisca "github.com/wagiedev/bisca-engine-go"
)

// TestSession_FullHand plays a whole hand on the alpha-beta engine and
// checks the inferred events add up to the final score.
func TestSession_FullHand(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s := startSession(ctx, t, bisca.WithEngine(bisca.EngineAlphaBeta), bisca.WithDepth(2))

	first, ok := s.Latest()
	require.True(t, ok)
	require.Len(t, first.P0Hand, 3)
	require.NotNil(t, first.Trump)

	final, events := playOut(ctx, t, s)
	require.True(t, final.Finished)
	require.Equal(t, 120, final.Score0+final.Score1, "a hand distributes all 120 points")

	var played, finished int

	for _, e := range events {
		switch e.(type) {
		case *bisca.CardPlayed:
			played++
		case *bisca.HandFinished:
			finished++
		}
	}

	require.Equal(t, 40, played)
	require.Equal(t, 1, finished)
}

// TestSession_StopMidSearch checks Stop returns promptly while a long
// search is running on another goroutine.
func TestSession_StopMidSearch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s := startSession(ctx, t, bisca.WithEngine(bisca.EngineMCTS), bisca.WithIterations(2_000_000))

	searchDone := make(chan struct{})

	go func() {
		defer close(searchDone)

		_, _ = s.BestMove(ctx)
	}()

	time.Sleep(500 * time.Millisecond)

	stopStart := time.Now()
	require.NoError(t, s.Stop())
	require.Less(t, time.Since(stopStart), 10*time.Second, "Stop should not wait for the search")

	select {
	case <-searchDone:
	case <-time.After(15 * time.Second):
		t.Fatal("BestMove did not return after Stop")
	}

	_, err := s.Show(ctx)
	require.ErrorIs(t, err, bisca.ErrSessionStopped)
}

// TestSession_Navigation rewinds to the deal and forwards back to the latest position.
func TestSession_Navigation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s := startSession(ctx, t, bisca.WithDepth(2))

	for range 2 {
		best, err := s.BestMove(ctx)
		require.NoError(t, err)
		require.NotNil(t, best.Index)

		_, err = s.Play(ctx, *best.Index)
		require.NoError(t, err)
	}

	latest, _ := s.Latest()

	_, ok := s.Rewind()
	require.True(t, ok)
	_, ok = s.Rewind()
	require.True(t, ok)

	_, ok = s.Forward()
	require.True(t, ok)

	current, ok := s.Forward()
	require.True(t, ok)
	require.Equal(t, latest.Trick, current.Trick)
}
