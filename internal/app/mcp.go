package app

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	bisca "github.com/wagiedev/bisca-engine-go"
	mcpserver "github.com/wagiedev/bisca-engine-go/internal/mcp"
)

// ServerName is the MCP implementation name.
const ServerName = "bisca"

// RunMCP starts one engine session and serves it as MCP tools over
// transport until the client disconnects or ctx is done.
func RunMCP(ctx context.Context, cfg Config, transport mcp.Transport, extra ...bisca.Option) error {
	log := cfg.Logger()

	s := bisca.NewSession(append(cfg.SessionOptions(log), extra...)...)
	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	defer func() {
		if err := s.Stop(); err != nil {
			log.Warn("failed to stop session", "error", err)
		}
	}()

	log.Info("Serving MCP tools", "session_id", s.ID())

	return mcpserver.NewGameServer(ServerName, Version, s).Run(ctx, transport)
}
