package event

import (
	"slices"

	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// Infer derives the ordered events that explain the move from prev to curr.
//
// Trick rules are tried in order and the first match wins:
//
//  1. prev is nil: no events.
//  2. one card more on the trick: CardPlayed with the new last card.
//  3. four cards to none: TrickCollected by curr.CurrentPlayer.
//  4. three cards to none: the engine closed the trick in the same response
//     as the fourth play. The fourth card is recovered from the actor's hand
//     and reported as CardPlayed followed by TrickCollected; without it the
//     trick is collected with the three known cards.
//
// Any other trick transition yields no trick event. HandFinished is checked
// independently and appended last.
func Infer(prev *snapshot.Snapshot, curr *snapshot.Snapshot, actor int) []GameEvent {
	if prev == nil || curr == nil {
		return nil
	}

	var events []GameEvent

	prevLen, currLen := len(prev.Trick), len(curr.Trick)

	switch {
	case currLen == prevLen+1:
		card := curr.Trick[currLen-1]
		events = append(events, &CardPlayed{
			By:   playedBy(prev, curr, card.Code, actor),
			Card: card,
		})

	case prevLen == snapshot.MaxTrick && currLen == 0:
		events = append(events, &TrickCollected{
			Winner: curr.CurrentPlayer,
			Cards:  slices.Clone(prev.Trick),
		})

	case prevLen == snapshot.MaxTrick-1 && currLen == 0:
		cards := slices.Clone(prev.Trick)

		if last, ok := missingCard(prev, curr, actor); ok {
			events = append(events, &CardPlayed{By: actor, Card: last})
			cards = append(cards, last)
		}

		events = append(events, &TrickCollected{
			Winner: curr.CurrentPlayer,
			Cards:  cards,
		})
	}

	if curr.Finished && !prev.Finished {
		events = append(events, &HandFinished{
			Score0: curr.Score0,
			Score1: curr.Score1,
		})
	}

	return events
}

// playedBy names the player whose hand lost the given card between prev and
// curr. When neither or both hands qualify, the actor hint is used.
func playedBy(prev, curr *snapshot.Snapshot, code string, actor int) int {
	owner := snapshot.Unknown

	for _, player := range []int{0, 1} {
		if lostCard(prev, curr, player, code) {
			if owner != snapshot.Unknown {
				return actor
			}

			owner = player
		}
	}

	if owner == snapshot.Unknown {
		return actor
	}

	return owner
}

func lostCard(prev, curr *snapshot.Snapshot, player int, code string) bool {
	_, had := prev.HandCodes(player)[code]
	_, has := curr.HandCodes(player)[code]

	return had && !has
}

// missingCard returns the first card, in prev hand order, that the actor held
// in prev and no longer holds in curr.
func missingCard(prev, curr *snapshot.Snapshot, actor int) (snapshot.Card, bool) {
	after := curr.HandCodes(actor)

	for _, c := range prev.Hand(actor) {
		if _, still := after[c.Code]; !still {
			return c.Card, true
		}
	}

	return snapshot.Card{}, false
}
