package snapshot

import (
	"strings"

	"golang.org/x/text/cases"
)

// Suit letter codes.
const (
	SuitSpades   = "S"
	SuitHearts   = "H"
	SuitDiamonds = "D"
	SuitClubs    = "C"
)

// suitPrefixes maps a case-folded name prefix to its letter code, in lookup order.
// The first entry doubles as the fallback for unrecognized suits.
var suitPrefixes = []struct {
	prefix string
	code   string
}{
	{"esp", SuitSpades},   // Espadas
	{"cop", SuitHearts},   // Copas
	{"our", SuitDiamonds}, // Ouros
	{"pau", SuitClubs},    // Paus
}

// Card is a single playing card as printed by the engine.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
	// Code is the two-character rank-code + suit-code, e.g. "TD" or "AS".
	Code string `json:"code"`
}

// String returns the card code.
func (c Card) String() string {
	return c.Code
}

// HandCard is a card held in a hand together with the engine's play index.
type HandCard struct {
	Card
	Index int `json:"index"`
}

// RankCode maps a rank as printed by the engine to its one-letter code.
// "10" becomes "T"; every other rank is upper-cased verbatim.
func RankCode(rank string) string {
	if rank == "10" {
		return "T"
	}

	return strings.ToUpper(rank)
}

// SuitCode maps a Portuguese suit name to its letter code by case-insensitive
// prefix. Unrecognized names map to SuitSpades, matching the engine front
// ends this grammar was taken from.
func SuitCode(suit string) string {
	folded := cases.Fold().String(strings.TrimSpace(suit))

	for _, s := range suitPrefixes {
		if strings.HasPrefix(folded, s.prefix) {
			return s.code
		}
	}

	return suitPrefixes[0].code
}

// ParseCard parses "<rank> de <suit>". Text without the " de " separator is
// taken as a bare rank with an empty suit.
func ParseCard(text string) Card {
	var rank, suit string

	parts := strings.Split(text, " de ")
	if len(parts) >= 2 {
		rank = strings.TrimSpace(parts[0])
		suit = strings.TrimSpace(parts[1])
	} else {
		rank = strings.TrimSpace(text)
	}

	return Card{
		Rank: rank,
		Suit: suit,
		Code: RankCode(rank) + SuitCode(suit),
	}
}
