package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/wagiedev/bisca-engine-go/internal/cli"
	"github.com/wagiedev/bisca-engine-go/internal/config"
	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/protocol"
)

const (
	// backendName identifies this transport in errors, logs and traces.
	backendName = "process"
	// bannerToken marks the engine's ready banner.
	bannerToken = "pronto"
	// quitGrace is how long Stop waits for a clean exit before killing.
	quitGrace = 500 * time.Millisecond
	// reapTimeout bounds the wait for the reader after a kill.
	reapTimeout = 2 * time.Second
)

// ProcessTransport implements Transport by spawning the engine executable.
type ProcessTransport struct {
	log        *slog.Logger
	options    *config.Options
	enginePath string
	args       []string
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	buf        *outputBuffer
	done       chan struct{} // closed once the process has been reaped

	sendMu sync.Mutex // serializes commands
	mu     sync.Mutex // protects the fields below
	// started is set once the process is running.
	started bool
	// stopped is set by Stop; the transport cannot be restarted.
	stopped  bool
	exitCode int
	exitErr  error
}

// Compile-time verification that ProcessTransport implements the Transport interface.
var _ config.Transport = (*ProcessTransport)(nil)

// NewProcessTransport creates a process transport for the given options.
//
// Engine discovery is deferred to Start(), which searches for the
// executable matching options.Engine (see cli.Discoverer).
func NewProcessTransport(log *slog.Logger, options *config.Options) *ProcessTransport {
	return &ProcessTransport{
		log:     log.With("component", "process_transport"),
		options: options,
		buf:     newOutputBuffer(maxBufferSize),
		done:    make(chan struct{}),
	}
}

// Name implements Transport.
func (t *ProcessTransport) Name() string { return backendName }

// Start spawns the engine and waits for its ready banner.
//
// The banner text is returned as the status. An engine that prints no
// banner within the command timeout still starts, with an empty status.
// Every start failure is a *errors.TransportUnavailableError; a missing
// executable additionally unwraps to *errors.EngineNotFoundError.
func (t *ProcessTransport) Start(ctx context.Context) (string, error) {
	t.mu.Lock()

	if t.stopped {
		t.mu.Unlock()

		return "", errors.ErrTransportStopped
	}

	if t.started {
		t.mu.Unlock()

		return "", errors.ErrSessionAlreadyStarted
	}

	t.mu.Unlock()

	t.log.Info("Starting bisca engine subprocess", "engine", t.options.Engine)

	discoverer := cli.NewDiscoverer(&cli.Config{
		EnginePath: t.options.EnginePath,
		BaseDir:    t.options.BaseDir,
		Engine:     t.options.Engine,
		Logger:     t.log,
	})

	enginePath, err := discoverer.Discover(ctx)
	if err != nil {
		return "", t.unavailable(fmt.Errorf("discover engine: %w", err))
	}

	t.enginePath = enginePath
	t.args = cli.BuildArgs(t.options)
	t.log.Debug("Built command arguments", "path", enginePath, "args", t.args)

	// The process outlives Start's context; Stop ends it.
	//nolint:gosec // G204: the engine path and flags come from configuration
	cmd := exec.Command(t.enginePath, t.args...)
	cmd.Dir = t.options.BaseDir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", t.unavailable(fmt.Errorf("stdin pipe: %w", err))
	}

	// stdout and stderr share one pipe so diagnostics interleave with output.
	pr, pw, err := os.Pipe()
	if err != nil {
		_ = stdin.Close()

		return "", t.unavailable(fmt.Errorf("output pipe: %w", err))
	}

	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		_ = pr.Close()
		_ = pw.Close()

		return "", t.unavailable(fmt.Errorf("start process: %w", err))
	}

	// The child holds its own copy of the write end.
	_ = pw.Close()

	t.mu.Lock()
	t.cmd = cmd
	t.stdin = stdin
	t.started = true
	t.mu.Unlock()

	go t.read(pr)

	t.log.Info("Bisca engine subprocess started", "pid", cmd.Process.Pid)

	banner, timedOut, err := t.await(ctx, t.options.CommandTimeout, func(text string) bool {
		return strings.Contains(strings.ToLower(text), bannerToken)
	})
	if err != nil {
		_ = t.Stop()

		return "", &errors.TransportUnavailableError{Backend: backendName, Err: err}
	}

	if timedOut {
		t.log.Warn("Engine printed no ready banner", "timeout", t.options.CommandTimeout)
	}

	return strings.TrimSpace(banner), nil
}

// read drains the engine output until the process closes it, then reaps
// the process.
func (t *ProcessTransport) read(r *os.File) {
	defer close(t.done)
	defer r.Close()

	if err := pump(r, t.buf); err != nil {
		t.log.Debug("Engine output scanner error", "error", err)
	}

	err := t.cmd.Wait()

	exitCode := 0
	if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok {
		exitCode = exitErr.ExitCode()
	}

	t.mu.Lock()
	t.exitCode = exitCode
	t.exitErr = err
	stopped := t.stopped
	t.mu.Unlock()

	switch {
	case stopped:
		t.log.Debug("Engine process terminated during shutdown")
	case err != nil:
		t.log.Error("Engine process exited with error", "exit_code", exitCode, "error", err)
	default:
		t.log.Info("Engine process exited")
	}
}

// Send writes one command and collects the engine's response.
//
// Output left over from earlier commands is discarded first, so the
// response only holds text printed after the command was written. A
// response that does not complete within the command's timeout is returned
// with TimedOut set. A dead engine yields *errors.ProcessExitedError.
func (t *ProcessTransport) Send(ctx context.Context, cmd protocol.Command) (*protocol.Response, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	t.mu.Lock()
	started, stopped, stdin := t.started, t.stopped, t.stdin
	t.mu.Unlock()

	switch {
	case stopped:
		return nil, errors.ErrTransportStopped
	case !started:
		return nil, errors.ErrTransportNotStarted
	}

	if t.exited() {
		return nil, t.exitError(nil)
	}

	if stale := t.buf.drain(); stale != "" {
		t.log.Debug("Discarded stale engine output", "bytes", len(stale))
	}

	t.log.Debug("Sending command to engine", "command", cmd.Line())

	if _, err := io.WriteString(stdin, cmd.Line()+"\n"); err != nil {
		t.log.Error("Failed to write command to engine", "command", cmd.Line(), "error", err)

		return nil, t.exitError(fmt.Errorf("write %q: %w", cmd.Line(), err))
	}

	if cmd.Kind == protocol.KindQuit {
		return &protocol.Response{Command: cmd}, nil
	}

	timeout := t.options.Timeout(cmd.Kind)

	text, timedOut, err := t.await(ctx, timeout, func(text string) bool {
		return protocol.Complete(cmd.Kind, text)
	})
	if err != nil {
		return nil, err
	}

	if timedOut {
		t.log.Warn("Engine response timed out", "command", cmd.Line(), "timeout", timeout, "bytes", len(text))
	}

	return &protocol.Response{Command: cmd, Text: text, TimedOut: timedOut}, nil
}

// await polls the output buffer until done holds, the timeout elapses, the
// process exits or ctx is cancelled. The accumulated text is consumed and
// returned in the first two cases.
func (t *ProcessTransport) await(
	ctx context.Context,
	timeout time.Duration,
	done func(string) bool,
) (string, bool, error) {
	ticker := time.NewTicker(t.options.PollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if done(t.buf.text()) {
			return t.buf.drain(), false, nil
		}

		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case <-t.done:
			// The reader has flushed everything the engine printed.
			text := t.buf.drain()
			if done(text) {
				return text, false, nil
			}

			return "", false, t.exitError(nil, text)
		case <-deadline.C:
			return t.buf.drain(), true, nil
		case <-ticker.C:
		}
	}
}

// Stop asks the engine to quit and kills it if it does not exit promptly.
//
// It's safe to call Stop multiple times or on a transport that never
// started.
func (t *ProcessTransport) Stop() error {
	t.mu.Lock()

	if t.stopped {
		t.mu.Unlock()

		return nil
	}

	t.stopped = true
	cmd, stdin := t.cmd, t.stdin
	t.mu.Unlock()

	if cmd == nil {
		return nil
	}

	t.log.Debug("Stopping engine process", "pid", cmd.Process.Pid)

	if !t.exited() {
		_, _ = io.WriteString(stdin, protocol.Quit().Line()+"\n")
	}

	_ = stdin.Close()

	select {
	case <-t.done:
		return nil
	case <-time.After(quitGrace):
	}

	t.log.Debug("Killing engine process", "pid", cmd.Process.Pid)

	if err := cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill engine process (pid %d): %w", cmd.Process.Pid, err)
	}

	select {
	case <-t.done:
	case <-time.After(reapTimeout):
		t.log.Warn("Engine process was not reaped after kill", "pid", cmd.Process.Pid)
	}

	return nil
}

func (t *ProcessTransport) exited() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// exitError describes the dead process. When the reader has already reaped
// it the exit code and status are filled in.
func (t *ProcessTransport) exitError(cause error, output ...string) error {
	perr := &errors.ProcessExitedError{
		ExitCode: -1,
		Output:   strings.TrimSpace(strings.Join(output, "")),
		Err:      cause,
	}

	if t.exited() {
		t.mu.Lock()
		perr.ExitCode = t.exitCode

		if perr.Err == nil {
			perr.Err = t.exitErr
		}

		t.mu.Unlock()
	}

	return perr
}

func (t *ProcessTransport) unavailable(err error) error {
	t.log.Error("Failed to start engine process", "error", err)

	return &errors.TransportUnavailableError{Backend: backendName, Err: err}
}
