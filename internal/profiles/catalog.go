// Package profiles provides the catalog of difficulty profiles. A profile
// maps a difficulty level to an engine strategy, its search budget and the
// weights file it plays with.
package profiles

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wagiedev/bisca-engine-go/internal/config"
)

// DefaultID is the profile used when none is requested.
const DefaultID = "medium"

// fallbackPrefix and fallbackSuffix match training checkpoints used when a
// profile's weights file is absent.
const (
	fallbackPrefix = "nnue_iter"
	fallbackSuffix = ".bin"
)

// Profile holds the engine settings for one difficulty level.
type Profile struct {
	// ID is the stable identifier (e.g. "medium").
	ID string
	// Name is the display name.
	Name string
	// Aliases are alternative names accepted by ByID.
	Aliases []string
	// Engine is the search strategy.
	Engine config.EngineKind
	// Depth is the alpha-beta search depth; zero keeps the current value.
	Depth int
	// Iterations is the MCTS iteration count; zero keeps the current value.
	Iterations int
	// Exploration is the MCTS cpuct; zero keeps the current value.
	Exploration float64
	// Weights is the weights file name inside the base directory.
	Weights string
}

// All returns a copy of every profile, easiest first.
func All() []Profile {
	out := make([]Profile, len(registry))
	copy(out, registry)

	return out
}

// ByID looks up a profile by ID, display name or alias, ignoring case.
// Returns nil if no profile matches.
func ByID(id string) *Profile {
	id = strings.TrimSpace(id)

	for i := range registry {
		p := registry[i]

		if strings.EqualFold(p.ID, id) || strings.EqualFold(p.Name, id) {
			return &p
		}

		if slices.ContainsFunc(p.Aliases, func(alias string) bool { return strings.EqualFold(alias, id) }) {
			return &p
		}
	}

	return nil
}

// Apply copies the profile's settings onto options. An explicit
// options.WeightsPath is kept; otherwise the profile's weights are resolved
// in options.BaseDir.
func (p Profile) Apply(options *config.Options) {
	options.Engine = p.Engine

	if p.Depth > 0 {
		options.Depth = p.Depth
	}

	if p.Iterations > 0 {
		options.Iterations = p.Iterations
	}

	if p.Exploration > 0 {
		options.Exploration = p.Exploration
	}

	if options.WeightsPath == "" {
		options.WeightsPath = ResolveWeights(options.BaseDir, p.Weights)
	}
}

// ResolveWeights returns the path of the named weights file in baseDir.
// When that file is missing it falls back to the last nnue_iter*.bin
// checkpoint in lexical order, and to "" when there is none.
func ResolveWeights(baseDir, name string) string {
	if name == "" {
		return ""
	}

	path := filepath.Join(baseDir, name)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}

	dir := baseDir
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	fallback := ""

	// ReadDir returns entries sorted by name.
	for _, entry := range entries {
		n := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(n, fallbackPrefix) && strings.HasSuffix(n, fallbackSuffix) {
			fallback = filepath.Join(baseDir, n)
		}
	}

	return fallback
}
