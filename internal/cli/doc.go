// Package cli provides engine discovery and command building for the bisca
// engine executable and its native module.
//
// # Engine Discovery
//
// The Discoverer interface locates the engine executable:
//
//	discoverer := cli.NewDiscoverer(&cli.Config{
//	    EnginePath: "",            // Optional explicit path
//	    BaseDir:    "/opt/bisca",  // Optional directory holding the engines
//	    Engine:     config.EngineMCTS,
//	    Logger:     slog.Default(),
//	})
//	enginePath, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Explicit path in Config.EnginePath (if provided)
//  2. Config.BaseDir
//  3. System PATH
//  4. Common installation directories (/usr/local/bin, /usr/bin, ~/.local/bin)
//
// The executable name depends on the strategy: bisca4 for alpha-beta and
// bisca4_mcts for MCTS.
//
// # Command Building
//
//	args := cli.BuildArgs(options)
package cli
