// Package match keeps the running score of a match: the "partidas" won
// across successive hands.
package match

import (
	"sync"

	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

const (
	// gainShutout is awarded when the loser scored no points.
	gainShutout = 4
	// gainDouble is awarded when the loser scored at most lowScore points.
	gainDouble = 2
	// gainSingle is awarded for any other win.
	gainSingle = 1

	lowScore = 25
)

// Gain returns the partidas each player earns for a finished hand with the
// given points. A tie earns nothing.
func Gain(score0, score1 int) (int, int) {
	switch {
	case score0 > score1:
		return winnerGain(score1), 0
	case score1 > score0:
		return 0, winnerGain(score0)
	default:
		return 0, 0
	}
}

func winnerGain(loserScore int) int {
	switch {
	case loserScore == 0:
		return gainShutout
	case loserScore <= lowScore:
		return gainDouble
	default:
		return gainSingle
	}
}

// Round is the result of one finished hand.
type Round struct {
	Score0 int `json:"score0"`
	Score1 int `json:"score1"`
	Gain0  int `json:"gain0"`
	Gain1  int `json:"gain1"`
}

// Scoreboard accumulates partidas over a match. It is safe for concurrent
// use.
type Scoreboard struct {
	mu        sync.Mutex
	total0    int
	total1    int
	rounds    []Round
	nextStart int
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// Record scores a finished hand. The player to move in the final position
// took the last trick and starts the next hand.
func (b *Scoreboard) Record(final snapshot.Snapshot) Round {
	gain0, gain1 := Gain(final.Score0, final.Score1)
	round := Round{Score0: final.Score0, Score1: final.Score1, Gain0: gain0, Gain1: gain1}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.total0 += gain0
	b.total1 += gain1
	b.rounds = append(b.rounds, round)

	b.nextStart = 0
	if final.KnowsCurrentPlayer() {
		b.nextStart = final.CurrentPlayer
	}

	return round
}

// Totals returns the partidas won by each player.
func (b *Scoreboard) Totals() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.total0, b.total1
}

// Rounds returns a copy of the per-hand results, oldest first.
func (b *Scoreboard) Rounds() []Round {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Round, len(b.rounds))
	copy(out, b.rounds)

	return out
}

// NextStartPlayer returns the player who starts the next hand.
func (b *Scoreboard) NextStartPlayer() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.nextStart
}

// Reset clears the match.
func (b *Scoreboard) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total0, b.total1 = 0, 0
	b.rounds = nil
	b.nextStart = 0
}
