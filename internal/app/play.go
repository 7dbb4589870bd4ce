package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	bisca "github.com/wagiedev/bisca-engine-go"
)

// engineSeat is the seat the engine plays for.
const engineSeat = 1

// game is one terminal match: the human holds seat 0 and the engine seat 1.
type game struct {
	s     bisca.Session
	board *bisca.Scoreboard
	out   io.Writer
	// over is set once the finished hand has been scored.
	over bool
}

// RunPlay runs an interactive match read from in and written to out until
// the player quits or in is exhausted.
func RunPlay(ctx context.Context, cfg Config, in io.Reader, out io.Writer, extra ...bisca.Option) error {
	log := cfg.Logger()

	s := bisca.NewSession(append(cfg.SessionOptions(log), extra...)...)
	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	defer func() {
		if err := s.Stop(); err != nil {
			log.Warn("failed to stop session", "error", err)
		}
	}()

	g := &game{s: s, board: bisca.NewScoreboard(), out: out}

	fmt.Fprintf(out, "Perfil: %s. Comandos: <indice>, hint, back, fwd, new, quit\n", cfg.Profile().Name)

	if err := g.settle(ctx, nil); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := g.handle(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			return err
		}

		if quit {
			return nil
		}
	}
}

// handle executes one input line. Move errors are reported to the player
// and do not end the match.
func (g *game) handle(ctx context.Context, line string) (bool, error) {
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "quit", "q":
		return true, nil
	case "hint":
		best, err := g.s.BestMove(ctx)
		if err != nil {
			return false, err
		}

		if best.Index == nil {
			fmt.Fprintln(g.out, "O motor nao sugeriu jogada.")
		} else {
			fmt.Fprintf(g.out, "Sugestao: [%d]\n", *best.Index)
		}

		return false, nil
	case "back":
		g.navigate(g.s.Rewind)

		return false, nil
	case "fwd":
		g.navigate(g.s.Forward)

		return false, nil
	case "new":
		if _, err := g.s.NewGame(ctx); err != nil {
			return false, err
		}

		g.over = false

		return false, g.settle(ctx, nil)
	}

	index, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(g.out, "Comando desconhecido: %s\n", line)

		return false, nil
	}

	result, err := g.s.Play(ctx, index)
	if err != nil {
		if isMoveError(err) {
			fmt.Fprintln(g.out, err)

			return false, nil
		}

		return false, err
	}

	return false, g.settle(ctx, result)
}

// settle reports a play, then lets the engine move while it holds the turn,
// and scores the hand once it ends.
func (g *game) settle(ctx context.Context, result *bisca.PlayResult) error {
	if result != nil {
		renderEvents(g.out, result.Events)
	}

	for {
		snap, ok := g.s.Latest()
		if !ok {
			return fmt.Errorf("no position recorded")
		}

		if snap.Finished {
			g.finish(snap)

			return nil
		}

		if snap.CurrentPlayer != engineSeat {
			renderSnapshot(g.out, snap)

			return nil
		}

		best, err := g.s.BestMove(ctx)
		if err != nil {
			return err
		}

		if best.Index == nil {
			return fmt.Errorf("engine gave no move: %q", best.Text)
		}

		played, err := g.s.Play(ctx, *best.Index)
		if err != nil {
			return fmt.Errorf("engine move: %w", err)
		}

		renderEvents(g.out, played.Events)
	}
}

func (g *game) finish(snap bisca.Snapshot) {
	if g.over {
		return
	}

	g.over = true

	round := g.board.Record(snap)
	total0, total1 := g.board.Totals()

	fmt.Fprintf(g.out, "Partidas: +%d / +%d (total %d x %d). Digite new para outra mao.\n",
		round.Gain0, round.Gain1, total0, total1)
}

func (g *game) navigate(step func() (bisca.Snapshot, bool)) {
	snap, ok := step()
	if !ok {
		fmt.Fprintln(g.out, "Sem historico.")

		return
	}

	renderSnapshot(g.out, snap)
}

func isMoveError(err error) bool {
	return errors.Is(err, bisca.ErrInvalidMoveIndex) || errors.Is(err, bisca.ErrHandFinished)
}
