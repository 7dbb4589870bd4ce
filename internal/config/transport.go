// Package config provides configuration types for bisca engine sessions.
package config

import (
	"context"

	"github.com/wagiedev/bisca-engine-go/internal/protocol"
)

// Transport defines the interface for exchanging commands with the engine.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// The built-in implementations are the process transport, which spawns the
// engine executable, and the native transport, which calls the engine's
// shared library. Custom transports can be injected via Options.Transport.
type Transport interface {
	// Start brings the engine up and returns its status or banner text.
	Start(ctx context.Context) (string, error)

	// Send issues one command and blocks until the response is complete or
	// the command's timeout elapses. A timeout is not an error: the partial
	// response is returned with TimedOut set.
	Send(ctx context.Context, cmd protocol.Command) (*protocol.Response, error)

	// Stop tears the engine down and releases resources.
	// It's safe to call Stop multiple times.
	Stop() error

	// Name identifies the backend in logs and traces.
	Name() string
}
