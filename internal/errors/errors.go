package errors

import (
	"errors"
	"fmt"
)

// BiscaError is the base interface for all library errors.
type BiscaError interface {
	error
	IsBiscaError() bool
}

// Compile-time verification that all error types implement BiscaError.
var (
	_ BiscaError = (*ConfigurationError)(nil)
	_ BiscaError = (*TransportUnavailableError)(nil)
	_ BiscaError = (*EngineNotFoundError)(nil)
	_ BiscaError = (*ProcessExitedError)(nil)
	_ BiscaError = (*InvalidMoveError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrSessionNotStarted indicates a command was issued before Start.
	ErrSessionNotStarted = errors.New("session not started")

	// ErrSessionStopped indicates the session has been stopped and cannot be reused.
	ErrSessionStopped = errors.New("session stopped: sessions are single-use, create a new one with NewSession()")

	// ErrSessionAlreadyStarted indicates Start was called twice.
	ErrSessionAlreadyStarted = errors.New("session already started")

	// ErrTransportNotStarted indicates the transport has not been started.
	ErrTransportNotStarted = errors.New("transport not started")

	// ErrTransportStopped indicates a command was sent after Stop.
	ErrTransportStopped = errors.New("transport stopped")

	// ErrCommandInFlight indicates another command is outstanding on the session.
	// Sessions enforce a single writer and do not queue callers.
	ErrCommandInFlight = errors.New("command already in flight")

	// ErrHandFinished indicates a play was attempted on a finished hand.
	ErrHandFinished = errors.New("hand finished: start a new game before playing")

	// ErrInvalidMoveIndex is matched by every *InvalidMoveError.
	ErrInvalidMoveIndex = errors.New("invalid move index")

	// ErrUnknownCommand indicates the command kind is not part of the engine protocol.
	ErrUnknownCommand = errors.New("unknown engine command")
)

// ConfigurationError indicates the session configuration is unusable.
// It is fatal at start time and never retried.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid configuration %s=%q: %s", e.Field, e.Value, e.Reason)
	}

	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsBiscaError implements BiscaError.
func (e *ConfigurationError) IsBiscaError() bool { return true }

// TransportUnavailableError indicates the engine process failed to spawn or
// the native module failed to load. Callers may retry with the other backend.
type TransportUnavailableError struct {
	Backend string
	Err     error
}

func (e *TransportUnavailableError) Error() string {
	return fmt.Sprintf("%s transport unavailable: %v", e.Backend, e.Err)
}

func (e *TransportUnavailableError) Unwrap() error {
	return e.Err
}

// IsBiscaError implements BiscaError.
func (e *TransportUnavailableError) IsBiscaError() bool { return true }

// EngineNotFoundError indicates the engine binary or native module was not found.
type EngineNotFoundError struct {
	SearchedPaths []string
}

func (e *EngineNotFoundError) Error() string {
	return fmt.Sprintf("bisca engine not found in: %v", e.SearchedPaths)
}

// IsBiscaError implements BiscaError.
func (e *EngineNotFoundError) IsBiscaError() bool { return true }

// ProcessExitedError indicates the engine process is gone. It is detected
// lazily, when the next command write or read fails.
type ProcessExitedError struct {
	ExitCode int
	Output   string
	Err      error
}

func (e *ProcessExitedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine process exited (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("engine process exited (exit %d): %s", e.ExitCode, e.Output)
}

func (e *ProcessExitedError) Unwrap() error {
	return e.Err
}

// IsBiscaError implements BiscaError.
func (e *ProcessExitedError) IsBiscaError() bool { return true }

// InvalidMoveError indicates a play index outside the current player's hand.
type InvalidMoveError struct {
	Index   int
	Player  int
	Allowed []int
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move index %d for player %d (allowed %v)", e.Index, e.Player, e.Allowed)
}

// Is reports whether target is ErrInvalidMoveIndex.
func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMoveIndex
}

// IsBiscaError implements BiscaError.
func (e *InvalidMoveError) IsBiscaError() bool { return true }
