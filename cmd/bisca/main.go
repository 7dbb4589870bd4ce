// Package main is the bisca command: play against the engine, let it play
// itself, or serve a session as MCP tools over stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/bisca-engine-go/internal/app"
	"github.com/wagiedev/bisca-engine-go/internal/telemetry"
)

const usage = "usage: bisca <play|autoplay|mcp> [flags]"

// setupTelemetry is swapped in tests.
var setupTelemetry = telemetry.Setup

func main() {
	log.SetPrefix("[BISCA] ")
	os.Exit(realMain(os.Args[1:]))
}

// realMain runs one command and returns the process exit code. Every path
// that got past telemetry setup flushes it before returning.
func realMain(args []string) int {
	if len(args) < 1 {
		log.Print(usage)

		return 2
	}

	command := args[0]

	fs := flag.NewFlagSet("bisca "+command, flag.ContinueOnError)

	cfg, err := app.ParseConfig(fs, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		log.Printf("parse flags: %v", err)

		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := setupTelemetry(ctx, "bisca")
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}

	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	if err := run(ctx, command, cfg); err != nil {
		log.Printf("%s: %v", command, err)

		return 1
	}

	return 0
}

func run(ctx context.Context, command string, cfg app.Config) error {
	switch command {
	case "play":
		return app.RunPlay(ctx, cfg, os.Stdin, os.Stdout)
	case "autoplay":
		return app.RunAutoplay(ctx, cfg, os.Stdout)
	case "mcp":
		return app.RunMCP(ctx, cfg, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("unknown command %q; %s", command, usage)
	}
}
