package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/event"
	"github.com/wagiedev/bisca-engine-go/internal/session"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

type fakeGame struct {
	snap    snapshot.Snapshot
	played  []int
	rewinds int
	empty   bool
}

func (g *fakeGame) Show(context.Context) (snapshot.Snapshot, error) { return g.snap, nil }

func (g *fakeGame) BestMove(context.Context) (*session.BestMove, error) {
	index, eval := 2, 0.5

	return &session.BestMove{Index: &index, Eval: &eval, Text: "bestmove index=2 eval=0.5"}, nil
}

func (g *fakeGame) Play(_ context.Context, index int) (*session.PlayResult, error) {
	if index > 2 {
		return nil, &errors.InvalidMoveError{Index: index, Player: 0, Allowed: []int{0, 1, 2}}
	}

	g.played = append(g.played, index)

	return &session.PlayResult{
		Text:     "Jogada efetuada (idx 1).",
		Snapshot: g.snap,
		Events: []event.GameEvent{
			&event.CardPlayed{By: 0, Card: snapshot.Card{Rank: "K", Suit: "Paus", Code: "KC"}},
		},
	}, nil
}

func (g *fakeGame) NewGame(context.Context) (snapshot.Snapshot, error) { return g.snap, nil }

func (g *fakeGame) Rewind() (snapshot.Snapshot, bool) {
	g.rewinds++

	return g.snap, !g.empty
}

func (g *fakeGame) Forward() (snapshot.Snapshot, bool) { return g.snap, !g.empty }

func newFakeGame() *fakeGame {
	return &fakeGame{snap: snapshot.Snapshot{DeckCount: 30, CurrentPlayer: 1, Score0: 11}}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestGameServer_Tools(t *testing.T) {
	server := NewGameServer("bisca", "1.0.0", newFakeGame())

	require.Equal(t, "bisca", server.Name())
	require.Equal(t, "1.0.0", server.Version())
	require.Equal(t, []string{
		ToolBestMove, ToolForward, ToolNewGame, ToolPlay, ToolRewind, ToolShow,
	}, server.ToolNames())
}

func TestGameServer_Show(t *testing.T) {
	server := NewGameServer("bisca", "1.0.0", newFakeGame())

	result, err := server.CallTool(context.Background(), ToolShow, nil)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var snap map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &snap))
	require.InDelta(t, 30, snap["deck_count"], 0)
	require.NotContains(t, snap, "Raw")
}

func TestGameServer_BestMove(t *testing.T) {
	server := NewGameServer("bisca", "1.0.0", newFakeGame())

	result, err := server.CallTool(context.Background(), ToolBestMove, nil)
	require.NoError(t, err)

	var out bestMoveOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	require.Equal(t, 2, *out.Index)
	require.InDelta(t, 0.5, *out.Eval, 1e-9)
}

func TestGameServer_Play(t *testing.T) {
	game := newFakeGame()
	server := NewGameServer("bisca", "1.0.0", game)
	ctx := context.Background()

	result, err := server.CallTool(ctx, ToolPlay, map[string]any{"index": 1})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, []int{1}, game.played)

	var out struct {
		Events []struct {
			Type  string         `json:"type"`
			Event map[string]any `json:"event"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	require.Len(t, out.Events, 1)
	require.Equal(t, event.TypeCardPlayed, out.Events[0].Type)

	tests := []struct {
		name  string
		input map[string]any
		want  string
	}{
		{name: "missing index", input: map[string]any{}, want: "missing argument: index"},
		{name: "fractional index", input: map[string]any{"index": 1.5}, want: "index must be an integer"},
		{name: "string index", input: map[string]any{"index": "1"}, want: "index must be an integer"},
		{name: "rejected move", input: map[string]any{"index": 7}, want: "invalid move index 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := server.CallTool(ctx, ToolPlay, tt.input)
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Contains(t, resultText(t, result), tt.want)
		})
	}

	require.Equal(t, []int{1}, game.played)
}

func TestGameServer_Navigation(t *testing.T) {
	game := newFakeGame()
	server := NewGameServer("bisca", "1.0.0", game)

	result, err := server.CallTool(context.Background(), ToolRewind, nil)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, 1, game.rewinds)

	game.empty = true

	result, err = server.CallTool(context.Background(), ToolForward, nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestToolServer_UnknownTool(t *testing.T) {
	server := NewToolServer("bisca", "1.0.0")

	result, err := server.CallTool(context.Background(), "bisca_undo", nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "Tool not found: bisca_undo", resultText(t, result))
}

func TestGameServer_OverTransport(t *testing.T) {
	ctx := context.Background()
	game := newFakeGame()
	server := NewGameServer("bisca", "1.0.0", game)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Server().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	defer clientSession.Close()

	tools, err := clientSession.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, tools.Tools, 6)

	result, err := clientSession.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolPlay,
		Arguments: map[string]any{"index": 0},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, []int{0}, game.played)
}

func TestSimpleSchema(t *testing.T) {
	schema := SimpleSchema(map[string]string{"index": "int", "note": "string", "eval": "float64", "hint": "bool"})

	require.Equal(t, "object", schema.Type)
	require.Equal(t, []string{"eval", "hint", "index", "note"}, schema.Required)
	require.Equal(t, "integer", schema.Properties["index"].Type)
	require.Equal(t, "number", schema.Properties["eval"].Type)
	require.Equal(t, "boolean", schema.Properties["hint"].Type)
	require.Equal(t, "string", schema.Properties["note"].Type)
}

func TestParseArguments(t *testing.T) {
	args, err := ParseArguments(nil)
	require.NoError(t, err)
	require.Empty(t, args)

	_, err = ParseArguments(&mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: []byte("{")}})
	require.Error(t, err)
}
