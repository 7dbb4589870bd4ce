package bisca

import (
	"github.com/wagiedev/bisca-engine-go/internal/config"
	"github.com/wagiedev/bisca-engine-go/internal/event"
	"github.com/wagiedev/bisca-engine-go/internal/match"
	"github.com/wagiedev/bisca-engine-go/internal/protocol"
	"github.com/wagiedev/bisca-engine-go/internal/session"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// Re-export types from internal packages

// ===== Options and Configuration =====

// Options configures an engine session.
type Options = config.Options

// EngineKind selects the engine's search strategy.
type EngineKind = config.EngineKind

const (
	// EngineAlphaBeta is the alpha-beta search engine.
	EngineAlphaBeta = config.EngineAlphaBeta
	// EngineMCTS is the Monte-Carlo tree search engine.
	EngineMCTS = config.EngineMCTS
)

// InfoMode selects how much of the hidden state the engine may see.
type InfoMode = config.InfoMode

const (
	// InfoPartial hides the opponent's hand and the deck.
	InfoPartial = config.InfoPartial
	// InfoPerfect lets the engine see everything.
	InfoPerfect = config.InfoPerfect
)

// Backend selects how the engine is hosted.
type Backend = config.Backend

const (
	// BackendProcess runs the engine executable as a child process.
	BackendProcess = config.BackendProcess
	// BackendNative loads the engine's shared library in-process.
	BackendNative = config.BackendNative
)

// ===== Engine Protocol =====

// Command is one engine protocol command.
type Command = protocol.Command

// Response is the engine's reply to a Command.
type Response = protocol.Response

// ===== Positions =====

// Snapshot is a parsed point-in-time state of the table.
type Snapshot = snapshot.Snapshot

// Card is a playing card.
type Card = snapshot.Card

// HandCard is a card held in a hand, with its position in that hand.
type HandCard = snapshot.HandCard

// ParseSnapshot parses a show dump. Missing sections degrade to defaults.
func ParseSnapshot(text string) Snapshot { return snapshot.Parse(text) }

// ===== Events =====

// GameEvent is an occurrence inferred between two snapshots.
type GameEvent = event.GameEvent

// CardPlayed reports a card moving from a hand onto the trick.
type CardPlayed = event.CardPlayed

// TrickCollected reports a completed trick taken by its winner.
type TrickCollected = event.TrickCollected

// HandFinished reports the end of a hand with its final points.
type HandFinished = event.HandFinished

// InferEvents returns the events that explain the change from prev to curr.
// actor is the player who moved, or -1 when unknown.
func InferEvents(prev, curr *Snapshot, actor int) []GameEvent {
	return event.Infer(prev, curr, actor)
}

// ===== Session Results =====

// SessionState is the lifecycle state of a session.
type SessionState = session.State

// BestMove is the engine's recommendation for the current player.
type BestMove = session.BestMove

// PlayResult is the outcome of a successful play.
type PlayResult = session.PlayResult

// ===== Match =====

// Scoreboard accumulates match points over consecutive hands.
type Scoreboard = match.Scoreboard

// Round is one recorded hand on a Scoreboard.
type Round = match.Round

// NewScoreboard returns an empty scoreboard.
func NewScoreboard() *Scoreboard { return match.NewScoreboard() }
