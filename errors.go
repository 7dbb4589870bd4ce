package bisca

import "github.com/wagiedev/bisca-engine-go/internal/errors"

// Re-export error types from internal package

// BiscaError is the base interface for all library errors.
type BiscaError = errors.BiscaError

// ConfigurationError indicates the session options are unusable.
type ConfigurationError = errors.ConfigurationError

// TransportUnavailableError indicates the engine could not be started.
type TransportUnavailableError = errors.TransportUnavailableError

// EngineNotFoundError indicates the engine executable or module was not found.
type EngineNotFoundError = errors.EngineNotFoundError

// ProcessExitedError indicates the engine process died.
type ProcessExitedError = errors.ProcessExitedError

// InvalidMoveError indicates a play index outside the current player's hand.
type InvalidMoveError = errors.InvalidMoveError

// Re-export sentinel errors from internal package.
var (
	// ErrSessionNotStarted indicates a command was issued before Start.
	ErrSessionNotStarted = errors.ErrSessionNotStarted

	// ErrSessionStopped indicates the session has been stopped and cannot be reused.
	ErrSessionStopped = errors.ErrSessionStopped

	// ErrSessionAlreadyStarted indicates Start was called twice.
	ErrSessionAlreadyStarted = errors.ErrSessionAlreadyStarted

	// ErrCommandInFlight indicates another command is still running.
	ErrCommandInFlight = errors.ErrCommandInFlight

	// ErrHandFinished indicates a play was attempted after the hand ended.
	ErrHandFinished = errors.ErrHandFinished

	// ErrInvalidMoveIndex matches every InvalidMoveError.
	ErrInvalidMoveIndex = errors.ErrInvalidMoveIndex

	// ErrTransportStopped indicates the transport has been stopped.
	ErrTransportStopped = errors.ErrTransportStopped
)
