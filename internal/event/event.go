// Package event infers high-level game events by diffing two snapshots.
//
// The engine reports no events of its own. Infer is the substitute: a pure
// function of the previous snapshot, the current snapshot, and a hint naming
// the player who acted, so it can be tested without a live engine.
package event

import "github.com/wagiedev/bisca-engine-go/internal/snapshot"

// Event type names.
const (
	TypeCardPlayed     = "card_played"
	TypeTrickCollected = "trick_collected"
	TypeHandFinished   = "hand_finished"
)

// GameEvent is an occurrence inferred between two snapshots.
// Use a type switch to determine the concrete type.
type GameEvent interface {
	EventType() string
}

// Compile-time verification that all event types implement GameEvent.
var (
	_ GameEvent = (*CardPlayed)(nil)
	_ GameEvent = (*TrickCollected)(nil)
	_ GameEvent = (*HandFinished)(nil)
)

// CardPlayed reports a card moving from a hand onto the trick.
type CardPlayed struct {
	By   int           `json:"by"`
	Card snapshot.Card `json:"card"`
}

// EventType implements GameEvent.
func (*CardPlayed) EventType() string { return TypeCardPlayed }

// TrickCollected reports a completed trick taken by Winner.
// Cards has three entries in the degraded case where the fourth card could
// not be reconstructed.
type TrickCollected struct {
	Winner int             `json:"winner"`
	Cards  []snapshot.Card `json:"cards"`
}

// EventType implements GameEvent.
func (*TrickCollected) EventType() string { return TypeTrickCollected }

// HandFinished reports the end of a hand with its final points.
type HandFinished struct {
	Score0 int `json:"score0"`
	Score1 int `json:"score1"`
}

// EventType implements GameEvent.
func (*HandFinished) EventType() string { return TypeHandFinished }
