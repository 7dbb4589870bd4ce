package snapshot

import "slices"

// Unknown marks an integer field the dump did not carry.
const Unknown = -1

// MaxTrick is the number of cards in a complete trick.
const MaxTrick = 4

// Snapshot is a fully parsed point-in-time state of the table.
//
// Snapshots are values produced by Parse and are treated as immutable:
// nothing in this module mutates a Snapshot after parsing.
type Snapshot struct {
	P0Hand []HandCard `json:"p0_hand"`
	P1Hand []HandCard `json:"p1_hand"`
	Trick  []Card     `json:"trick"`

	Trump      *Card `json:"trump,omitempty"`
	TrumpGiven bool  `json:"trump_given"`
	// DeckCount is Unknown when the dump has no "Deck restante" line.
	DeckCount int `json:"deck_count"`

	Score0 int `json:"score0"`
	Score1 int `json:"score1"`

	// CurrentPlayer is 0, 1 or Unknown.
	CurrentPlayer int  `json:"current_player"`
	Finished      bool `json:"finished"`

	Raw string `json:"-"`
}

// Hand returns the hand of the given player, or nil for any other value.
func (s *Snapshot) Hand(player int) []HandCard {
	switch player {
	case 0:
		return s.P0Hand
	case 1:
		return s.P1Hand
	default:
		return nil
	}
}

// HandIndices returns the play indices of the given player's hand in order.
func (s *Snapshot) HandIndices(player int) []int {
	hand := s.Hand(player)

	indices := make([]int, 0, len(hand))
	for _, c := range hand {
		indices = append(indices, c.Index)
	}

	return indices
}

// HasIndex reports whether the player's hand offers the given play index.
func (s *Snapshot) HasIndex(player, index int) bool {
	return slices.Contains(s.HandIndices(player), index)
}

// CardAt returns the card at the given play index of a player's hand.
func (s *Snapshot) CardAt(player, index int) (Card, bool) {
	for _, c := range s.Hand(player) {
		if c.Index == index {
			return c.Card, true
		}
	}

	return Card{}, false
}

// HandCodes returns the set of card codes in a player's hand.
func (s *Snapshot) HandCodes(player int) map[string]struct{} {
	hand := s.Hand(player)

	codes := make(map[string]struct{}, len(hand))
	for _, c := range hand {
		codes[c.Code] = struct{}{}
	}

	return codes
}

// KnowsCurrentPlayer reports whether the dump carried a CurrentPlayer line.
func (s *Snapshot) KnowsCurrentPlayer() bool {
	return s.CurrentPlayer == 0 || s.CurrentPlayer == 1
}
