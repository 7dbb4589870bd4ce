package snapshot

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Terminator is the dash run that delimits a dump and resets the section mode.
var Terminator = strings.Repeat("-", 33)

// Line prefixes of the show dump.
const (
	prefixTrump       = "Trunfo:"
	prefixDeck        = "Deck restante:"
	prefixTrumpGiven  = "TrunfoDado:"
	prefixCurrent     = "CurrentPlayer:"
	prefixScore       = "Pontuacao:"
	prefixFinished    = "jogo terminado"
	markerHand0       = "mao p0"
	markerHand1       = "mao p1"
	markerTrick       = "trick atual"
	finishedYesMarker = "SIM"
)

var (
	deckPattern       = regexp.MustCompile(`Deck restante:\s+(\d+)`)
	trumpGivenPattern = regexp.MustCompile(`TrunfoDado:\s*(-?\d+)`)
	currentPattern    = regexp.MustCompile(`CurrentPlayer:\s*(-?\d+)`)
	score0Pattern     = regexp.MustCompile(`P0=(\d+)`)
	score1Pattern     = regexp.MustCompile(`P1=(\d+)`)
)

type section int

const (
	sectionNone section = iota
	sectionHand0
	sectionHand1
	sectionTrick
)

// Parse turns a raw show dump into a Snapshot.
//
// Parse never fails. Absent fields take their defaults: scores 0, DeckCount
// and CurrentPlayer Unknown, TrumpGiven and Finished false, Trump nil.
func Parse(raw string) Snapshot {
	snap := Snapshot{
		DeckCount:     Unknown,
		CurrentPlayer: Unknown,
		Raw:           raw,
	}

	fold := cases.Fold()
	mode := sectionNone

	for rawLine := range strings.Lines(raw) {
		line := strings.TrimSpace(rawLine)
		folded := fold.String(line)

		switch {
		case strings.HasPrefix(folded, prefixFinished):
			if strings.Contains(strings.ToUpper(line), finishedYesMarker) {
				snap.Finished = true
			}

		case strings.HasPrefix(line, prefixTrump):
			trump := strings.TrimSpace(strings.TrimPrefix(line, prefixTrump))
			if i := strings.Index(trump, " ("); i != -1 {
				trump = strings.TrimSpace(trump[:i])
			}

			card := ParseCard(trump)
			snap.Trump = &card

		case strings.HasPrefix(line, prefixDeck):
			if n, ok := firstInt(deckPattern, line); ok {
				snap.DeckCount = n
			}

		case strings.HasPrefix(line, prefixTrumpGiven):
			if n, ok := firstInt(trumpGivenPattern, line); ok {
				snap.TrumpGiven = n != 0
			}

		case strings.HasPrefix(line, prefixCurrent):
			if n, ok := firstInt(currentPattern, line); ok && (n == 0 || n == 1) {
				snap.CurrentPlayer = n
			}

		case strings.HasPrefix(line, prefixScore):
			if n, ok := firstInt(score0Pattern, line); ok {
				snap.Score0 = n
			}

			if n, ok := firstInt(score1Pattern, line); ok {
				snap.Score1 = n
			}

		case strings.HasPrefix(folded, markerHand0):
			mode = sectionHand0

		case strings.HasPrefix(folded, markerHand1):
			mode = sectionHand1

		case strings.HasPrefix(folded, markerTrick):
			mode = sectionTrick

		case strings.HasPrefix(line, Terminator):
			mode = sectionNone

		case strings.HasPrefix(line, "[") || strings.HasPrefix(line, "("):
			card, ok := parseCardLine(line)
			if !ok {
				continue
			}

			switch mode {
			case sectionHand0:
				snap.P0Hand = append(snap.P0Hand, card)
			case sectionHand1:
				snap.P1Hand = append(snap.P1Hand, card)
			case sectionTrick:
				snap.Trick = append(snap.Trick, card.Card)
			case sectionNone:
			}
		}
	}

	return snap
}

// parseCardLine parses "[i] <rank> de <suit>" or "(i) <rank> de <suit>".
// A non-numeric index is read as 0.
func parseCardLine(line string) (HandCard, bool) {
	head, rest, ok := strings.Cut(line, " ")
	if !ok {
		return HandCard{}, false
	}

	index, err := strconv.Atoi(strings.Trim(head, "[]()"))
	if err != nil {
		index = 0
	}

	return HandCard{
		Card:  ParseCard(strings.TrimSpace(rest)),
		Index: index,
	}, true
}

func firstInt(pattern *regexp.Regexp, line string) (int, bool) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return n, true
}
