// Package errors defines error types for the bisca engine session library.
//
// This package provides structured error types that wrap the failure
// scenarios of driving an external engine: bad configuration, a transport
// that cannot be brought up, an engine process that died mid-session, and
// precondition violations by the caller. All error types support error
// unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
