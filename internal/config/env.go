package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the environment overlay for engine sessions. Zero values leave the
// corresponding option untouched.
type Env struct {
	Backend     string        `env:"BISCA_ENGINE_BACKEND"`
	Native      string        `env:"BISCA_ENGINE_NATIVE"`
	Engine      string        `env:"BISCA_ENGINE_TYPE"`
	Profile     string        `env:"BISCA_ENGINE_PROFILE"`
	EnginePath  string        `env:"BISCA_ENGINE_PATH"`
	ModulePath  string        `env:"BISCA_ENGINE_MODULE"`
	BaseDir     string        `env:"BISCA_ENGINE_DIR"`
	WeightsPath string        `env:"BISCA_ENGINE_WEIGHTS"`
	Depth       int           `env:"BISCA_ENGINE_DEPTH"`
	Iterations  int           `env:"BISCA_ENGINE_ITERATIONS"`
	Exploration float64       `env:"BISCA_ENGINE_CPUCT"`
	Info        string        `env:"BISCA_ENGINE_INFO"`
	RootMT      bool          `env:"BISCA_ENGINE_ROOT_MT"`
	Timeout     time.Duration `env:"BISCA_ENGINE_TIMEOUT"`
}

// LoadEnv reads the BISCA_ENGINE_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}

	return e, nil
}

// Apply overlays the non-zero environment values onto o.
func (e Env) Apply(o *Options) {
	switch {
	case e.Backend != "":
		o.Backend = NormalizeBackend(e.Backend)
	case e.Native != "":
		o.Backend = BackendNative
	}

	if e.Engine != "" {
		o.Engine = NormalizeEngineKind(e.Engine)
	}

	if e.EnginePath != "" {
		o.EnginePath = e.EnginePath
	}

	if e.ModulePath != "" {
		o.ModulePath = e.ModulePath
	}

	if e.BaseDir != "" {
		o.BaseDir = e.BaseDir
	}

	if e.WeightsPath != "" {
		o.WeightsPath = e.WeightsPath
	}

	if e.Depth != 0 {
		o.Depth = e.Depth
	}

	if e.Iterations != 0 {
		o.Iterations = e.Iterations
	}

	if e.Exploration != 0 {
		o.Exploration = e.Exploration
	}

	if e.Info != "" {
		o.Info = NormalizeInfoMode(e.Info)
	}

	if e.RootMT {
		o.RootMT = true
	}

	if e.Timeout != 0 {
		o.CommandTimeout = e.Timeout
	}
}
