package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// Kind is the verb of an engine command.
type Kind string

const (
	// KindNewGame resets the table and deals a new hand.
	KindNewGame Kind = "newgame"
	// KindShow requests the textual state dump.
	KindShow Kind = "show"
	// KindBestMove requests the engine's recommended play index.
	KindBestMove Kind = "bestmove"
	// KindPlay plays the card at a hand index for the current player.
	KindPlay Kind = "play"
	// KindQuit asks the engine process to exit.
	KindQuit Kind = "quit"
)

// Play confirmation tokens printed by the engine.
const (
	PlayToken    = "Jogada"
	PlayAccepted = "Jogada efetuada"
	PlayRejected = "Jogada inválida"
	bestMoveTag  = "bestmove"
	finishedLine = "jogo terminado:"
)

// Command is a single engine command.
type Command struct {
	Kind Kind
	// Index is the hand index for KindPlay and ignored otherwise.
	Index int
}

// NewGame returns the newgame command.
func NewGame() Command { return Command{Kind: KindNewGame} }

// Show returns the show command.
func Show() Command { return Command{Kind: KindShow} }

// BestMove returns the bestmove command.
func BestMove() Command { return Command{Kind: KindBestMove} }

// Play returns the play command for a hand index.
func Play(index int) Command { return Command{Kind: KindPlay, Index: index} }

// Quit returns the quit command.
func Quit() Command { return Command{Kind: KindQuit} }

// Line renders the command as the protocol line, without the newline.
func (c Command) Line() string {
	if c.Kind == KindPlay {
		return string(c.Kind) + " " + strconv.Itoa(c.Index)
	}

	return string(c.Kind)
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return c.Line()
}

// Validate rejects commands outside the protocol.
func (c Command) Validate() error {
	switch c.Kind {
	case KindNewGame, KindShow, KindBestMove, KindQuit:
		return nil
	case KindPlay:
		if c.Index < 0 {
			return fmt.Errorf("play index %d: %w", c.Index, errors.ErrUnknownCommand)
		}

		return nil
	default:
		return fmt.Errorf("%q: %w", c.Kind, errors.ErrUnknownCommand)
	}
}

// Complete reports whether text holds the whole response to a command of
// the given kind.
func Complete(kind Kind, text string) bool {
	switch kind {
	case KindNewGame, KindShow:
		return endsWithDump(text)
	case KindPlay:
		if strings.Contains(text, PlayRejected) {
			return true
		}

		return strings.Contains(text, PlayToken) && endsWithDump(text)
	case KindBestMove:
		return strings.Contains(text, bestMoveTag)
	default:
		return true
	}
}

// endsWithDump reports whether text ends with a whole dump: an opening
// terminator, the finished line and the closing terminator. A dump opens
// and closes with the same dash line, so the closing one alone is not
// enough while the engine is still writing.
func endsWithDump(text string) bool {
	body, ok := strings.CutSuffix(strings.TrimSpace(text), snapshot.Terminator)
	if !ok {
		return false
	}

	open := strings.LastIndex(body, snapshot.Terminator)
	if open < 0 {
		return false
	}

	return strings.Contains(strings.ToLower(body[open:]), finishedLine)
}
