package app

import (
	"fmt"
	"io"
	"strings"

	bisca "github.com/wagiedev/bisca-engine-go"
)

// renderSnapshot writes the human player's view of a position. The
// engine's hand is shown only as a card count.
func renderSnapshot(w io.Writer, snap bisca.Snapshot) {
	trump := "?"
	if snap.Trump != nil {
		trump = snap.Trump.Rank + " de " + snap.Trump.Suit
	}

	deck := "?"
	if snap.DeckCount != -1 {
		deck = fmt.Sprint(snap.DeckCount)
	}

	fmt.Fprintf(w, "Trunfo: %s | Baralho: %s | Pontos: %d x %d\n", trump, deck, snap.Score0, snap.Score1)
	fmt.Fprintf(w, "Mesa: %s\n", cardList(snap.Trick))
	fmt.Fprintf(w, "Adversario: %d cartas\n", len(snap.P1Hand))

	hand := make([]string, 0, len(snap.P0Hand))
	for _, c := range snap.P0Hand {
		hand = append(hand, fmt.Sprintf("[%d] %s de %s", c.Index, c.Rank, c.Suit))
	}

	fmt.Fprintf(w, "Sua mao: %s\n", strings.Join(hand, "  "))
}

func cardList(cards []bisca.Card) string {
	if len(cards) == 0 {
		return "-"
	}

	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Rank+" de "+c.Suit)
	}

	return strings.Join(out, ", ")
}

// renderEvents writes one line per inferred event.
func renderEvents(w io.Writer, events []bisca.GameEvent) {
	for _, e := range events {
		switch e := e.(type) {
		case *bisca.CardPlayed:
			fmt.Fprintf(w, "P%d jogou %s de %s\n", e.By, e.Card.Rank, e.Card.Suit)
		case *bisca.TrickCollected:
			fmt.Fprintf(w, "P%d recolheu a vaza (%s)\n", e.Winner, cardList(e.Cards))
		case *bisca.HandFinished:
			fmt.Fprintf(w, "Fim da mao: %d x %d\n", e.Score0, e.Score1)
		}
	}
}
