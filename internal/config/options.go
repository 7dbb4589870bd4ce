package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/protocol"
)

// Defaults applied by WithDefaults.
const (
	DefaultDepth          = 3
	DefaultIterations     = 2000
	DefaultExploration    = 1.41421356
	DefaultCommandTimeout = 5 * time.Second
	DefaultPollInterval   = 50 * time.Millisecond

	// minBestMoveTimeout is the floor for best-move searches.
	minBestMoveTimeout = 5 * time.Second
	// perIterationBudget scales MCTS best-move timeouts by iteration count.
	perIterationBudget = 10 * time.Millisecond
	// perDepthBudget scales alpha-beta best-move timeouts by search depth.
	perDepthBudget = 2500 * time.Millisecond
)

// EnvNative selects the native backend when set to any non-empty value and
// no backend was chosen explicitly.
const EnvNative = "BISCA_ENGINE_NATIVE"

// Options configures an engine session.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Engine selects the search strategy (alphabeta or mcts).
	Engine EngineKind

	// Backend selects the transport. Empty means process, unless
	// BISCA_ENGINE_NATIVE is set.
	Backend Backend

	// EnginePath is the explicit path to the engine executable.
	// If empty, the executable is searched in BaseDir and PATH.
	EnginePath string

	// ModulePath is the explicit path to the engine's shared library.
	// If empty, the platform default name inside BaseDir is used.
	ModulePath string

	// BaseDir is where default executables, modules and weights live.
	BaseDir string

	// WeightsPath is the evaluation weights file handed to the engine.
	// The session never reads it; it must merely exist when set.
	WeightsPath string

	// Depth is the alpha-beta search depth.
	Depth int

	// Iterations is the MCTS iteration count.
	Iterations int

	// Exploration is the MCTS exploration constant (cpuct).
	Exploration float64

	// Info selects partial or perfect information for the engine.
	Info InfoMode

	// RootMT enables root-level multithreading in the alpha-beta engine.
	RootMT bool

	// CommandTimeout bounds newgame, show and play.
	CommandTimeout time.Duration

	// BestMoveTimeout bounds bestmove. Zero scales it with the search budget.
	BestMoveTimeout time.Duration

	// PollInterval is how often the process transport re-checks its buffer.
	PollInterval time.Duration

	// Transport overrides the backend selection with a custom transport.
	Transport Transport
}

// WithDefaults returns a copy of o with unset fields filled in.
func (o *Options) WithDefaults() *Options {
	out := &Options{}
	if o != nil {
		*out = *o
	}

	if out.Engine == "" {
		out.Engine = EngineAlphaBeta
	}

	if out.Backend == "" {
		out.Backend = BackendProcess
		if os.Getenv(EnvNative) != "" {
			out.Backend = BackendNative
		}
	}

	if out.Depth == 0 {
		out.Depth = DefaultDepth
	}

	if out.Iterations == 0 {
		out.Iterations = DefaultIterations
	}

	if out.Exploration == 0 {
		out.Exploration = DefaultExploration
	}

	if out.Info == "" {
		out.Info = InfoPartial
	}

	if out.CommandTimeout == 0 {
		out.CommandTimeout = DefaultCommandTimeout
	}

	if out.PollInterval == 0 {
		out.PollInterval = DefaultPollInterval
	}

	return out
}

// Validate checks the options for start-time fatal problems.
// It returns a *errors.ConfigurationError describing the first problem found.
func (o *Options) Validate() error {
	switch o.Engine {
	case EngineAlphaBeta, EngineMCTS:
	default:
		return &errors.ConfigurationError{Field: "engine", Value: string(o.Engine), Reason: "must be alphabeta or mcts"}
	}

	switch o.Backend {
	case BackendProcess, BackendNative:
	default:
		return &errors.ConfigurationError{Field: "backend", Value: string(o.Backend), Reason: "must be process or native"}
	}

	switch o.Info {
	case InfoPartial, InfoPerfect:
	default:
		return &errors.ConfigurationError{Field: "info", Value: string(o.Info), Reason: "must be partial or perfect"}
	}

	if o.Depth < 1 {
		return &errors.ConfigurationError{Field: "depth", Value: fmt.Sprint(o.Depth), Reason: "must be at least 1"}
	}

	if o.Iterations < 1 {
		return &errors.ConfigurationError{Field: "iterations", Value: fmt.Sprint(o.Iterations), Reason: "must be at least 1"}
	}

	if o.Exploration <= 0 || math.IsNaN(o.Exploration) || math.IsInf(o.Exploration, 0) {
		return &errors.ConfigurationError{Field: "exploration", Value: fmt.Sprint(o.Exploration), Reason: "must be a positive number"}
	}

	if o.WeightsPath != "" {
		info, err := os.Stat(o.WeightsPath)
		if err != nil {
			return &errors.ConfigurationError{Field: "weights", Value: o.WeightsPath, Reason: "file not readable", Err: err}
		}

		if info.IsDir() {
			return &errors.ConfigurationError{Field: "weights", Value: o.WeightsPath, Reason: "is a directory"}
		}
	}

	return nil
}

// Timeout returns the response budget for a command kind.
// Best-move searches scale with the configured search budget so a long
// Monte-Carlo search is not cut short.
func (o *Options) Timeout(kind protocol.Kind) time.Duration {
	if kind != protocol.KindBestMove {
		return o.CommandTimeout
	}

	if o.BestMoveTimeout > 0 {
		return o.BestMoveTimeout
	}

	var scaled time.Duration

	switch o.Engine {
	case EngineMCTS:
		scaled = time.Duration(o.Iterations) * perIterationBudget
	default:
		scaled = time.Duration(o.Depth) * perDepthBudget
	}

	return max(minBestMoveTimeout, scaled)
}
