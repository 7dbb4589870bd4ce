// Package session implements the engine session: the single owner of an
// engine transport and of the snapshot history of the hand being played.
//
// A Session moves through three states. It is Created by New, becomes
// Ready once Start has brought the engine up and recorded the first
// snapshot, and is Stopped by Stop or by a failed Start. Sessions are
// single-use.
//
// Only one engine command may be outstanding per session. A caller that
// issues a command while another is running gets ErrCommandInFlight rather
// than waiting in a queue. History navigation (Rewind, Forward, Current)
// never talks to the engine and is always available.
package session
