// Package subprocess provides the process-based transport for the bisca
// engine.
//
// This package implements the Transport interface by spawning the engine
// executable in interactive engine mode and exchanging one text command per
// line over its stdin. Standard error is merged into standard output and a
// single background goroutine drains both into a bounded buffer. Each Send
// polls that buffer until the command's completion predicate holds or its
// timeout elapses.
package subprocess
