package app

import (
	"context"
	"fmt"
	"io"

	bisca "github.com/wagiedev/bisca-engine-go"
	"github.com/wagiedev/bisca-engine-go/internal/autoplay"
	"github.com/wagiedev/bisca-engine-go/internal/ledger"
)

// RunAutoplay lets the engine play cfg.Hands hands against itself and
// prints the match result. Finished hands go to the ledger when
// cfg.Ledger is set.
func RunAutoplay(ctx context.Context, cfg Config, out io.Writer, extra ...bisca.Option) error {
	log := cfg.Logger()
	opts := append(cfg.SessionOptions(log), extra...)
	profile := cfg.Profile()

	run := autoplay.Config{
		Hands:      cfg.Hands,
		Workers:    cfg.Workers,
		NewPlayer:  func() autoplay.Player { return bisca.NewSession(opts...) },
		Scoreboard: bisca.NewScoreboard(),
		Profile:    profile.ID,
		Engine:     string(cfg.EngineKind()),
		Logger:     log,
	}

	var store *ledger.Store

	if cfg.Ledger != "" {
		var err error

		store, err = ledger.Open(ctx, cfg.Ledger)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}

		defer func() {
			if err := store.Close(); err != nil {
				log.Warn("failed to close ledger", "error", err)
			}
		}()

		run.Recorder = store
	}

	summary, err := autoplay.Run(ctx, run)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Maos: %d  Partidas: %d x %d\n", summary.Hands, summary.Total0, summary.Total1)

	if store != nil {
		totals, err := store.Totals(ctx)
		if err != nil {
			return fmt.Errorf("ledger totals: %w", err)
		}

		fmt.Fprintf(out, "Historico: %d maos, partidas %d x %d\n", totals.Hands, totals.Gain0, totals.Gain1)
	}

	return nil
}
