package bisca

import "github.com/wagiedev/bisca-engine-go/internal/config"

// Transport defines the interface for exchanging commands with the engine.
// Implement this to provide custom transports for testing, mocking,
// or alternative engine hosts.
//
// The default implementation spawns the engine executable. Setting
// WithBackend(BackendNative) loads the engine's shared library instead.
// Custom transports can be injected via WithTransport.
type Transport = config.Transport
