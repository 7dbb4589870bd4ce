package cli

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wagiedev/bisca-engine-go/internal/config"
	"github.com/wagiedev/bisca-engine-go/internal/errors"
)

// Config holds configuration for engine discovery.
type Config struct {
	// EnginePath is an explicit executable path that skips every search.
	EnginePath string

	// BaseDir is searched before PATH when set.
	BaseDir string

	// Engine selects which executable name is searched for.
	Engine config.EngineKind

	// Logger is an optional logger for discovery operations.
	// If nil, a default no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the engine executable.
type Discoverer interface {
	// Discover returns the path to the engine executable or an
	// *errors.EngineNotFoundError listing the places searched.
	Discover(ctx context.Context) (string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new engine discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}

	return &discoverer{
		cfg: cfg,
		log: log,
	}
}

// Discover locates the engine executable.
func (d *discoverer) Discover(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.log.Debug("Discovering bisca engine executable", "engine", d.cfg.Engine)

	if d.cfg.EnginePath != "" {
		if isFile(d.cfg.EnginePath) {
			return d.cfg.EnginePath, nil
		}

		d.log.Debug("Explicit engine path not found", "engine_path", d.cfg.EnginePath)

		return "", &errors.EngineNotFoundError{SearchedPaths: []string{d.cfg.EnginePath}}
	}

	name := ExecutableName(d.cfg.Engine)
	searchedPaths := make([]string, 0, 5)

	if d.cfg.BaseDir != "" {
		path := filepath.Join(d.cfg.BaseDir, name)
		searchedPaths = append(searchedPaths, path)

		if isFile(path) {
			d.log.Debug("Found engine in base dir", "path", path)

			return path, nil
		}
	}

	searchedPaths = append(searchedPaths, "$PATH")

	if path, err := exec.LookPath(name); err == nil {
		d.log.Debug("Found engine in PATH", "path", path)

		return path, nil
	}

	commonDirs := []string{"/usr/local/bin", "/usr/bin"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		commonDirs = append(commonDirs, filepath.Join(homeDir, ".local/bin"))
	}

	for _, dir := range commonDirs {
		path := filepath.Join(dir, name)
		searchedPaths = append(searchedPaths, path)

		if isFile(path) {
			d.log.Debug("Found engine at common path", "path", path)

			return path, nil
		}
	}

	d.log.Warn("Bisca engine not found in any searched paths", "searched_paths", searchedPaths)

	return "", &errors.EngineNotFoundError{SearchedPaths: searchedPaths}
}

// ResolveModule returns the native module path, or an
// *errors.EngineNotFoundError when the file does not exist.
func ResolveModule(options *config.Options) (string, error) {
	path := DefaultModulePath(options)
	if !isFile(path) {
		return "", &errors.EngineNotFoundError{SearchedPaths: []string{path}}
	}

	return path, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
