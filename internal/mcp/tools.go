package mcp

import (
	"context"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/bisca-engine-go/internal/event"
	"github.com/wagiedev/bisca-engine-go/internal/session"
	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// Tool names.
const (
	ToolShow     = "bisca_show"
	ToolBestMove = "bisca_bestmove"
	ToolPlay     = "bisca_play"
	ToolNewGame  = "bisca_new_game"
	ToolRewind   = "bisca_rewind"
	ToolForward  = "bisca_forward"
)

// Game is the session surface exposed as tools.
type Game interface {
	Show(ctx context.Context) (snapshot.Snapshot, error)
	BestMove(ctx context.Context) (*session.BestMove, error)
	Play(ctx context.Context, index int) (*session.PlayResult, error)
	NewGame(ctx context.Context) (snapshot.Snapshot, error)
	Rewind() (snapshot.Snapshot, bool)
	Forward() (snapshot.Snapshot, bool)
}

type bestMoveOutput struct {
	Index    *int     `json:"index"`
	Eval     *float64 `json:"eval,omitempty"`
	Text     string   `json:"text"`
	TimedOut bool     `json:"timed_out,omitempty"`
}

type eventOutput struct {
	Type  string          `json:"type"`
	Event event.GameEvent `json:"event"`
}

type playOutput struct {
	Text     string            `json:"text"`
	Snapshot snapshot.Snapshot `json:"snapshot"`
	Events   []eventOutput     `json:"events"`
	TimedOut bool              `json:"timed_out,omitempty"`
}

// NewGameServer returns a tool server exposing game.
func NewGameServer(name, version string, game Game) *ToolServer {
	s := NewToolServer(name, version)
	noArgs := SimpleSchema(nil)

	s.AddTool(
		&mcp.Tool{Name: ToolShow, Description: "Show the engine's current position.", InputSchema: noArgs},
		func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			snap, err := game.Show(ctx)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			return JSONResult(snap), nil
		},
	)

	s.AddTool(
		&mcp.Tool{Name: ToolBestMove, Description: "Ask the engine for the current player's best hand index.", InputSchema: noArgs},
		func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			best, err := game.BestMove(ctx)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			return JSONResult(bestMoveOutput{
				Index:    best.Index,
				Eval:     best.Eval,
				Text:     best.Text,
				TimedOut: best.TimedOut,
			}), nil
		},
	)

	s.AddTool(
		&mcp.Tool{
			Name:        ToolPlay,
			Description: "Play the card at a hand index for the current player.",
			InputSchema: SimpleSchema(map[string]string{"index": "int"}),
		},
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			index, err := indexArgument(req)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			result, err := game.Play(ctx, index)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			events := make([]eventOutput, 0, len(result.Events))
			for _, e := range result.Events {
				events = append(events, eventOutput{Type: e.EventType(), Event: e})
			}

			return JSONResult(playOutput{
				Text:     result.Text,
				Snapshot: result.Snapshot,
				Events:   events,
				TimedOut: result.TimedOut,
			}), nil
		},
	)

	s.AddTool(
		&mcp.Tool{Name: ToolNewGame, Description: "Deal a new hand.", InputSchema: noArgs},
		func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			snap, err := game.NewGame(ctx)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			return JSONResult(snap), nil
		},
	)

	s.AddTool(
		&mcp.Tool{Name: ToolRewind, Description: "Step the replay cursor one position back.", InputSchema: noArgs},
		navigate(game.Rewind),
	)

	s.AddTool(
		&mcp.Tool{Name: ToolForward, Description: "Step the replay cursor one position forward.", InputSchema: noArgs},
		navigate(game.Forward),
	)

	return s
}

func navigate(step func() (snapshot.Snapshot, bool)) mcp.ToolHandler {
	return func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, ok := step()
		if !ok {
			return ErrorResult("no positions recorded"), nil
		}

		return JSONResult(snap), nil
	}
}

// indexArgument reads the integral "index" argument.
func indexArgument(req *mcp.CallToolRequest) (int, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return 0, err
	}

	raw, ok := args["index"]
	if !ok {
		return 0, fmt.Errorf("missing argument: index")
	}

	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("index must be an integer, got %v", raw)
	}

	return int(f), nil
}
