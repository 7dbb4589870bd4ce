package config

import "strings"

// EngineKind selects the engine's search strategy.
type EngineKind string

const (
	// EngineAlphaBeta is the fixed-depth alpha-beta searcher.
	EngineAlphaBeta EngineKind = "alphabeta"
	// EngineMCTS is the Monte-Carlo tree searcher.
	EngineMCTS EngineKind = "mcts"
)

// InfoMode selects how much hidden information the engine may see.
type InfoMode string

const (
	// InfoPartial restricts the engine to what its seat can observe.
	InfoPartial InfoMode = "partial"
	// InfoPerfect lets the engine see both hands.
	InfoPerfect InfoMode = "perfect"
)

// Backend selects the transport used to reach the engine.
type Backend string

const (
	// BackendProcess spawns the engine executable and talks over pipes.
	BackendProcess Backend = "process"
	// BackendNative loads the engine's shared library in process.
	BackendNative Backend = "native"
)

// NormalizeEngineKind maps accepted spellings to an EngineKind.
//
// Aliases:
//   - "ab", "alpha-beta", "alphabeta" -> "alphabeta"
//   - "mcts", "montecarlo" -> "mcts"
//
// Anything else is returned lower-cased and left for Validate to reject.
func NormalizeEngineKind(kind string) EngineKind {
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case "ab", "alpha-beta", "alphabeta":
		return EngineAlphaBeta
	case "mcts", "montecarlo":
		return EngineMCTS
	default:
		return EngineKind(k)
	}
}

// NormalizeInfoMode maps accepted spellings to an InfoMode.
// "full" is accepted for "perfect".
func NormalizeInfoMode(mode string) InfoMode {
	switch m := strings.ToLower(strings.TrimSpace(mode)); m {
	case "perfect", "full":
		return InfoPerfect
	case "partial":
		return InfoPartial
	default:
		return InfoMode(m)
	}
}

// NormalizeBackend maps accepted spellings to a Backend.
// "subprocess" is accepted for "process" and "ffi" for "native".
func NormalizeBackend(backend string) Backend {
	switch b := strings.ToLower(strings.TrimSpace(backend)); b {
	case "process", "subprocess":
		return BackendProcess
	case "native", "ffi":
		return BackendNative
	default:
		return Backend(b)
	}
}
