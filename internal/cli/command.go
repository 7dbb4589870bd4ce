package cli

import (
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/wagiedev/bisca-engine-go/internal/config"
)

// ExecutableName returns the engine executable name for a strategy.
func ExecutableName(kind config.EngineKind) string {
	name := "bisca4"
	if kind == config.EngineMCTS {
		name = "bisca4_mcts"
	}

	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	return name
}

// ModuleName returns the platform file name of the engine's native module.
func ModuleName() string {
	switch runtime.GOOS {
	case "windows":
		return "bisca4_android.dll"
	case "darwin":
		return "libbisca4_android.dylib"
	default:
		return "libbisca4_android.so"
	}
}

// DefaultModulePath returns the native module path for options that do not
// name one explicitly.
func DefaultModulePath(options *config.Options) string {
	if options.ModulePath != "" {
		return options.ModulePath
	}

	return filepath.Join(options.BaseDir, ModuleName())
}

// BuildArgs constructs the engine command line arguments.
//
// The engine always runs in interactive engine mode. The search budget flags
// depend on the strategy: --depth for alpha-beta, --iterations and --cpuct
// for MCTS.
func BuildArgs(options *config.Options) []string {
	args := []string{"--mode", "engine"}

	switch options.Engine {
	case config.EngineMCTS:
		args = append(args,
			"--iterations", strconv.Itoa(options.Iterations),
			"--cpuct", strconv.FormatFloat(options.Exploration, 'g', -1, 64),
		)
	default:
		args = append(args, "--depth", strconv.Itoa(options.Depth))

		if options.RootMT {
			args = append(args, "--root-mt")
		}
	}

	info := config.InfoPartial
	if options.Info == config.InfoPerfect {
		info = config.InfoPerfect
	}

	args = append(args, "--info", string(info))

	if options.WeightsPath != "" {
		args = append(args, "--nnue", options.WeightsPath)
	}

	return args
}
