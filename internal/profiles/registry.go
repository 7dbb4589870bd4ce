package profiles

import "github.com/wagiedev/bisca-engine-go/internal/config"

// registry is the internal list of difficulty profiles, easiest first.
var registry = []Profile{
	{
		ID:      "easy",
		Name:    "Fácil",
		Aliases: []string{"facil"},
		Engine:  config.EngineAlphaBeta,
		Depth:   4,
		Weights: "nnue_ab.bin",
	},
	{
		ID:          "medium",
		Name:        "Médio",
		Aliases:     []string{"medio"},
		Engine:      config.EngineMCTS,
		Iterations:  2200,
		Exploration: 1.35,
		Weights:     "nnue_mid.bin",
	},
	{
		ID:          "hard",
		Name:        "Difícil",
		Aliases:     []string{"dificil"},
		Engine:      config.EngineMCTS,
		Iterations:  4200,
		Exploration: 1.40,
		Weights:     "nnue_hard.bin",
	},
}
