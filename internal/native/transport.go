package native

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/wagiedev/bisca-engine-go/internal/cli"
	"github.com/wagiedev/bisca-engine-go/internal/config"
	"github.com/wagiedev/bisca-engine-go/internal/errors"
	"github.com/wagiedev/bisca-engine-go/internal/protocol"
)

const backendName = "native"

var errNullHandle = stderrors.New("bisca_engine_create returned a null handle")

// ModuleTransport implements Transport by calling the engine's shared
// library in-process.
//
// Calls are synchronous and cannot be interrupted: a cancelled context is
// only observed before a call starts, and responses never time out.
type ModuleTransport struct {
	log     *slog.Logger
	options *config.Options
	load    loader

	mu      sync.Mutex // owns lib and handle
	lib     *library
	handle  uintptr
	started bool
	stopped bool
}

// Compile-time verification that ModuleTransport implements the Transport interface.
var _ config.Transport = (*ModuleTransport)(nil)

// NewModuleTransport creates a native transport. The module is resolved and
// loaded by Start.
func NewModuleTransport(log *slog.Logger, options *config.Options) *ModuleTransport {
	return newModuleTransport(log, options, loadLibrary)
}

func newModuleTransport(log *slog.Logger, options *config.Options, load loader) *ModuleTransport {
	return &ModuleTransport{
		log:     log.With("component", "native_transport"),
		options: options,
		load:    load,
	}
}

// Name implements Transport.
func (t *ModuleTransport) Name() string { return backendName }

// Start loads the module, creates an engine handle and returns the engine
// status text.
func (t *ModuleTransport) Start(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return "", errors.ErrTransportStopped
	}

	if t.started {
		return "", errors.ErrSessionAlreadyStarted
	}

	path, err := cli.ResolveModule(t.options)
	if err != nil {
		return "", t.unavailable(err)
	}

	t.log.Info("Loading bisca engine module", "path", path, "engine", t.options.Engine)

	lib, err := t.load(path)
	if err != nil {
		return "", t.unavailable(err)
	}

	cfg, nnuePath := newEngineConfig(t.options)
	handle := lib.api.create(cfg)
	runtime.KeepAlive(nnuePath)

	if handle == 0 {
		_ = lib.close()

		return "", t.unavailable(errNullHandle)
	}

	t.lib = lib
	t.handle = handle
	t.started = true

	status, _ := goString(lib.api.status(handle))
	t.log.Info("Bisca engine module ready", "status", status)

	return status, nil
}

// Send calls the entry point matching cmd.
//
// A null return from the module yields an empty response; for bestmove it
// also leaves the index unset.
func (t *ModuleTransport) Send(ctx context.Context, cmd protocol.Command) (*protocol.Response, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.stopped:
		return nil, errors.ErrTransportStopped
	case !t.started:
		return nil, errors.ErrTransportNotStarted
	}

	t.log.Debug("Calling engine module", "command", cmd.Line())

	resp := &protocol.Response{Command: cmd}
	api := t.lib.api

	var (
		text string
		ok   bool
	)

	switch cmd.Kind {
	case protocol.KindNewGame:
		text, ok = goString(api.newGame(t.handle))
	case protocol.KindShow:
		text, ok = goString(api.show(t.handle))
	case protocol.KindPlay:
		text, ok = goString(api.play(t.handle, int32(cmd.Index)))
	case protocol.KindBestMove:
		index := int32(-1)
		eval := 0.0

		text, ok = goString(api.bestMove(t.handle, &index, &eval))
		if ok {
			i := int(index)
			resp.Index = &i
			resp.Eval = &eval
		}
	case protocol.KindQuit:
		return resp, nil
	}

	if !ok {
		t.log.Warn("Engine module returned no text", "command", cmd.Line())
	}

	resp.Text = text

	return resp, nil
}

// Stop destroys the engine handle and unloads the module.
//
// It's safe to call Stop multiple times or on a transport that never
// started.
func (t *ModuleTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return nil
	}

	t.stopped = true

	if t.lib == nil {
		return nil
	}

	t.log.Debug("Destroying engine handle")

	t.lib.api.destroy(t.handle)
	t.handle = 0

	lib := t.lib
	t.lib = nil

	if err := lib.close(); err != nil {
		return fmt.Errorf("unload engine module: %w", err)
	}

	return nil
}

func (t *ModuleTransport) unavailable(err error) error {
	t.log.Error("Failed to start engine module", "error", err)

	return &errors.TransportUnavailableError{Backend: backendName, Err: err}
}
