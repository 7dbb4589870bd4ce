// Package app implements the bisca command line front end: a terminal
// game against the engine, engine-vs-engine autoplay and an MCP tool
// server.
package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	bisca "github.com/wagiedev/bisca-engine-go"
	"github.com/wagiedev/bisca-engine-go/internal/config"
)

// Version is reported by the MCP server.
var Version = "dev"

// Config holds command configuration. Environment values are the flag
// defaults; flags win.
type Config struct {
	Engine config.Env

	Hands   int    `env:"BISCA_AUTOPLAY_HANDS" envDefault:"10"`
	Workers int    `env:"BISCA_AUTOPLAY_WORKERS" envDefault:"1"`
	Ledger  string `env:"BISCA_LEDGER_PATH"`
	Verbose bool   `env:"BISCA_VERBOSE"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Engine.Profile == "" {
		cfg.Engine.Profile = bisca.DefaultProfileID
	}

	e := &cfg.Engine
	fs.StringVar(&e.Profile, "profile", e.Profile, "Difficulty profile (easy, medium, hard)")
	fs.StringVar(&e.Engine, "engine", e.Engine, "Search strategy (alphabeta or mcts); overrides the profile")
	fs.StringVar(&e.Backend, "backend", e.Backend, "Engine host (process or native)")
	fs.StringVar(&e.BaseDir, "dir", e.BaseDir, "Directory holding the engine, its module and weights")
	fs.StringVar(&e.EnginePath, "engine-path", e.EnginePath, "Explicit engine executable path")
	fs.StringVar(&e.ModulePath, "module", e.ModulePath, "Explicit engine shared library path")
	fs.StringVar(&e.WeightsPath, "weights", e.WeightsPath, "Evaluation weights file")
	fs.IntVar(&e.Depth, "depth", e.Depth, "Alpha-beta search depth")
	fs.IntVar(&e.Iterations, "iterations", e.Iterations, "MCTS iterations")
	fs.Float64Var(&e.Exploration, "cpuct", e.Exploration, "MCTS exploration constant")
	fs.StringVar(&e.Info, "info", e.Info, "Information mode (partial or perfect)")
	fs.BoolVar(&e.RootMT, "root-mt", e.RootMT, "Root multithreading for alpha-beta")
	fs.DurationVar(&e.Timeout, "timeout", e.Timeout, "Response timeout for newgame, show and play")
	fs.IntVar(&cfg.Hands, "hands", cfg.Hands, "Hands to play in autoplay")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel engine sessions in autoplay")
	fs.StringVar(&cfg.Ledger, "ledger", cfg.Ledger, "SQLite ledger path for autoplay results")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if bisca.ProfileByID(e.Profile) == nil {
		return Config{}, fmt.Errorf("unknown profile %q", e.Profile)
	}

	return cfg, nil
}

// Profile returns the selected difficulty profile.
func (c Config) Profile() *bisca.Profile {
	return bisca.ProfileByID(c.Engine.Profile)
}

// EngineKind returns the effective search strategy: the explicit one, else
// the profile's.
func (c Config) EngineKind() bisca.EngineKind {
	if c.Engine.Engine != "" {
		return config.NormalizeEngineKind(c.Engine.Engine)
	}

	return c.Profile().Engine
}

// SessionOptions translates the configuration into session options: the
// base directory, then the profile, then every explicit setting.
func (c Config) SessionOptions(log *slog.Logger) []bisca.Option {
	return []bisca.Option{
		bisca.WithLogger(log),
		bisca.WithBaseDir(c.Engine.BaseDir),
		bisca.WithProfile(c.Profile()),
		bisca.WithEnv(c.Engine),
	}
}

// Logger returns the stderr logger selected by Verbose.
func (c Config) Logger() *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
