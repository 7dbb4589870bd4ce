// Package bisca drives a bisca (Portuguese trick-taking card game) engine
// from Go.
//
// The engine is an external program that speaks a line-oriented text
// protocol: newgame, show, bestmove, play <i> and quit. It can run as a
// child process or, with the native backend, be loaded from its shared
// library without cgo. A Session hides the difference: it sends commands,
// parses every show dump into a Snapshot, keeps a navigable history of
// positions and infers game events (CardPlayed, TrickCollected,
// HandFinished) by diffing consecutive snapshots.
//
// # Basic Usage
//
// Use WithSession for automatic lifecycle management:
//
//	ctx := context.Background()
//	err := bisca.WithSession(ctx, func(s bisca.Session) error {
//	    best, err := s.BestMove(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    if best.Index == nil {
//	        return errors.New("engine gave no move")
//	    }
//	    result, err := s.Play(ctx, *best.Index)
//	    if err != nil {
//	        return err
//	    }
//	    for _, e := range result.Events {
//	        switch e := e.(type) {
//	        case *bisca.CardPlayed:
//	            fmt.Printf("P%d played %s\n", e.By, e.Card)
//	        case *bisca.HandFinished:
//	            fmt.Printf("final %d-%d\n", e.Score0, e.Score1)
//	        }
//	    }
//	    return nil
//	},
//	    bisca.WithBaseDir("/opt/bisca"),
//	    bisca.WithProfile(bisca.ProfileByID("medium")),
//	)
//
// Or use NewSession directly for more control:
//
//	s := bisca.NewSession(bisca.WithEngine(bisca.EngineAlphaBeta), bisca.WithDepth(6))
//	if err := s.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//
// # Timeouts
//
// A command whose response does not complete within its budget is not an
// error: the partial text is returned with TimedOut set. Best-move budgets
// scale with the search settings unless WithBestMoveTimeout is given.
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	s := bisca.NewSession(bisca.WithLogger(logger))
//
// # Error Handling
//
// The package provides typed errors for different failure scenarios:
//
//	if err := s.Start(ctx); err != nil {
//	    if nf, ok := errors.AsType[*bisca.EngineNotFoundError](err); ok {
//	        log.Fatalf("engine not installed, searched: %v", nf.SearchedPaths)
//	    }
//	    if cfg, ok := errors.AsType[*bisca.ConfigurationError](err); ok {
//	        log.Fatalf("bad %s: %s", cfg.Field, cfg.Reason)
//	    }
//	    log.Fatal(err)
//	}
//
//	if _, err := s.Play(ctx, 7); errors.Is(err, bisca.ErrInvalidMoveIndex) {
//	    // index not in the current player's hand
//	}
//
// # Requirements
//
// The process backend needs the bisca4 (alpha-beta) or bisca4_mcts
// executable in the base directory or PATH. The native backend needs the
// engine's shared library; set BISCA_ENGINE_NATIVE=1 to prefer it.
package bisca
