package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullDump mirrors a complete engine show dump with every section present.
const fullDump = `---------------------------------
Trunfo: A de Espadas (Espadas)
Pontuacao: P0=31 P1=12
Deck restante: 22 cartas (sem contar trumpCard especial)
TrunfoDado: 1
CurrentPlayer: 1
Mao P0:
  [0] 10 de Ouros
  [1] K de Copas
  [2] 7 de Paus
Mao P1:
  [0] Q de Copas
  [1] 2 de Espadas
Trick atual (2 cartas jogadas nesta vaza):
  (0) J de Ouros
  (1) 6 de Paus
Jogo terminado: NAO
---------------------------------
`

func TestParse_FullDump(t *testing.T) {
	snap := Parse(fullDump)

	require.NotNil(t, snap.Trump)
	require.Equal(t, Card{Rank: "A", Suit: "Espadas", Code: "AS"}, *snap.Trump)
	require.Equal(t, 31, snap.Score0)
	require.Equal(t, 12, snap.Score1)
	require.Equal(t, 22, snap.DeckCount)
	require.True(t, snap.TrumpGiven)
	require.Equal(t, 1, snap.CurrentPlayer)
	require.False(t, snap.Finished)
	require.Equal(t, fullDump, snap.Raw)

	require.Equal(t, []HandCard{
		{Card: Card{Rank: "10", Suit: "Ouros", Code: "TD"}, Index: 0},
		{Card: Card{Rank: "K", Suit: "Copas", Code: "KH"}, Index: 1},
		{Card: Card{Rank: "7", Suit: "Paus", Code: "7C"}, Index: 2},
	}, snap.P0Hand)
	require.Equal(t, []HandCard{
		{Card: Card{Rank: "Q", Suit: "Copas", Code: "QH"}, Index: 0},
		{Card: Card{Rank: "2", Suit: "Espadas", Code: "2S"}, Index: 1},
	}, snap.P1Hand)
	require.Equal(t, []Card{
		{Rank: "J", Suit: "Ouros", Code: "JD"},
		{Rank: "6", Suit: "Paus", Code: "6C"},
	}, snap.Trick)
}

func TestParse_HandScenario(t *testing.T) {
	raw := strings.Join([]string{
		"Mao P0",
		"[0] 10 de Ouros",
		"[1] A de Espadas",
		"Trick atual",
		"CurrentPlayer: 0",
		"Pontuacao: P0=0 P1=0",
		"Jogo terminado: NAO",
		"---------------------------------",
	}, "\n")

	snap := Parse(raw)

	require.Equal(t, []HandCard{
		{Card: Card{Rank: "10", Suit: "Ouros", Code: "TD"}, Index: 0},
		{Card: Card{Rank: "A", Suit: "Espadas", Code: "AS"}, Index: 1},
	}, snap.P0Hand)
	require.Empty(t, snap.P1Hand)
	require.Empty(t, snap.Trick)
	require.Equal(t, 0, snap.CurrentPlayer)
	require.False(t, snap.Finished)
}

func TestParse_Defaults(t *testing.T) {
	snap := Parse("banner text\nnothing useful here\n")

	require.Nil(t, snap.Trump)
	require.Equal(t, Unknown, snap.DeckCount)
	require.Equal(t, Unknown, snap.CurrentPlayer)
	require.False(t, snap.KnowsCurrentPlayer())
	require.Zero(t, snap.Score0)
	require.Zero(t, snap.Score1)
	require.False(t, snap.TrumpGiven)
	require.False(t, snap.Finished)
	require.Empty(t, snap.P0Hand)
}

func TestParse_EmptyInput(t *testing.T) {
	snap := Parse("")

	require.Equal(t, Unknown, snap.CurrentPlayer)
	require.Empty(t, snap.Trick)
}

func TestParse_Finished(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "sim", line: "Jogo terminado: SIM", want: true},
		{name: "lower case marker", line: "jogo terminado: sim", want: true},
		{name: "nao", line: "Jogo terminado: NAO", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.line).Finished)
		})
	}
}

func TestParse_TerminatorResetsSection(t *testing.T) {
	raw := strings.Join([]string{
		"Mao P1:",
		"  [0] Q de Copas",
		"---------------------------------",
		"  [1] K de Copas",
	}, "\n")

	snap := Parse(raw)

	require.Len(t, snap.P1Hand, 1)
	require.Equal(t, "QH", snap.P1Hand[0].Code)
}

func TestParse_CardLinesOutsideSectionIgnored(t *testing.T) {
	snap := Parse("[0] A de Espadas\n(1) K de Paus\n")

	require.Empty(t, snap.P0Hand)
	require.Empty(t, snap.P1Hand)
	require.Empty(t, snap.Trick)
}

func TestParse_NonNumericIndexIsZero(t *testing.T) {
	snap := Parse("Mao P0\n[x] 7 de Copas\n")

	require.Len(t, snap.P0Hand, 1)
	require.Equal(t, 0, snap.P0Hand[0].Index)
	require.Equal(t, "7H", snap.P0Hand[0].Code)
}

func TestParse_OutOfRangeCurrentPlayerIsUnknown(t *testing.T) {
	require.Equal(t, Unknown, Parse("CurrentPlayer: 3").CurrentPlayer)
	require.Equal(t, Unknown, Parse("CurrentPlayer: ?").CurrentPlayer)
}

func TestParse_IsDeterministic(t *testing.T) {
	require.Equal(t, Parse(fullDump), Parse(fullDump))
}

func TestRankCode(t *testing.T) {
	tests := map[string]string{
		"10": "T",
		"A":  "A",
		"q":  "Q",
		"k":  "K",
		"7":  "7",
	}

	for rank, want := range tests {
		t.Run(rank, func(t *testing.T) {
			require.Equal(t, want, RankCode(rank))
		})
	}
}

func TestSuitCode(t *testing.T) {
	tests := []struct {
		suit string
		want string
	}{
		{"Espadas", SuitSpades},
		{"Copas", SuitHearts},
		{"Ouros", SuitDiamonds},
		{"Paus", SuitClubs},
		{"ESPADAS", SuitSpades},
		{"copas", SuitHearts},
		{"  ouros ", SuitDiamonds},
		{"Paus (naipe Paus)", SuitClubs},
		// Unrecognized suits fall back to the first suit's code.
		{"Hearts", SuitSpades},
		{"", SuitSpades},
	}

	for _, tt := range tests {
		t.Run(tt.suit, func(t *testing.T) {
			require.Equal(t, tt.want, SuitCode(tt.suit))
		})
	}
}

func TestParseCard_WithoutSeparator(t *testing.T) {
	require.Equal(t, Card{Rank: "J", Suit: "", Code: "JS"}, ParseCard("J"))
}

func TestSnapshotHelpers(t *testing.T) {
	snap := Parse(fullDump)

	require.Equal(t, []int{0, 1, 2}, snap.HandIndices(0))
	require.Equal(t, []int{0, 1}, snap.HandIndices(1))
	require.Empty(t, snap.HandIndices(Unknown))
	require.True(t, snap.HasIndex(0, 2))
	require.False(t, snap.HasIndex(1, 2))

	card, ok := snap.CardAt(1, 1)
	require.True(t, ok)
	require.Equal(t, "2S", card.Code)

	_, ok = snap.CardAt(1, 5)
	require.False(t, ok)

	require.Contains(t, snap.HandCodes(0), "KH")
	require.Len(t, snap.HandCodes(0), 3)
}
