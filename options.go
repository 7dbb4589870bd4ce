package bisca

import (
	"log/slog"
	"time"

	"github.com/wagiedev/bisca-engine-go/internal/config"
)

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEngine selects the search strategy.
func WithEngine(kind EngineKind) Option {
	return func(o *Options) {
		o.Engine = kind
	}
}

// WithBackend selects how the engine is hosted.
// Without it the process backend is used unless BISCA_ENGINE_NATIVE is set.
func WithBackend(backend Backend) Option {
	return func(o *Options) {
		o.Backend = backend
	}
}

// WithInfo selects partial or perfect information.
func WithInfo(mode InfoMode) Option {
	return func(o *Options) {
		o.Info = mode
	}
}

// ===== Locations =====

// WithEnginePath sets an explicit path to the engine executable.
func WithEnginePath(path string) Option {
	return func(o *Options) {
		o.EnginePath = path
	}
}

// WithModulePath sets an explicit path to the engine's shared library.
func WithModulePath(path string) Option {
	return func(o *Options) {
		o.ModulePath = path
	}
}

// WithBaseDir sets the directory holding the engine, its module and weights.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}

// WithWeights sets the evaluation weights file handed to the engine.
func WithWeights(path string) Option {
	return func(o *Options) {
		o.WeightsPath = path
	}
}

// ===== Search Budget =====

// WithDepth sets the alpha-beta search depth.
func WithDepth(depth int) Option {
	return func(o *Options) {
		o.Depth = depth
	}
}

// WithIterations sets the MCTS iteration count.
func WithIterations(iterations int) Option {
	return func(o *Options) {
		o.Iterations = iterations
	}
}

// WithExploration sets the MCTS exploration constant.
func WithExploration(cpuct float64) Option {
	return func(o *Options) {
		o.Exploration = cpuct
	}
}

// WithRootMT enables root-level multithreading in the alpha-beta engine.
func WithRootMT(enabled bool) Option {
	return func(o *Options) {
		o.RootMT = enabled
	}
}

// WithProfile applies a difficulty profile. The profile's weights are
// resolved in the base directory, so place it after WithBaseDir.
// A nil profile is ignored.
func WithProfile(profile *Profile) Option {
	return func(o *Options) {
		if profile != nil {
			profile.Apply(o)
		}
	}
}

// ===== Timeouts =====

// WithCommandTimeout bounds newgame, show and play responses.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.CommandTimeout = timeout
	}
}

// WithBestMoveTimeout bounds bestmove responses.
// Without it the budget scales with the search settings.
func WithBestMoveTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.BestMoveTimeout = timeout
	}
}

// WithPollInterval sets how often the process backend re-checks engine output.
func WithPollInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.PollInterval = interval
	}
}

// ===== Advanced =====

// Env is the BISCA_ENGINE_* environment overlay.
type Env = config.Env

// LoadEnv reads the BISCA_ENGINE_* environment variables.
func LoadEnv() (Env, error) { return config.LoadEnv() }

// WithEnv overlays env onto the options collected so far.
func WithEnv(env Env) Option {
	return func(o *Options) {
		env.Apply(o)
	}
}

// WithTransport injects a custom transport implementation.
// The transport must implement the Transport interface.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}
