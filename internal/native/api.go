package native

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/wagiedev/bisca-engine-go/internal/config"
)

// Engine type values of BiscaEngineType.
const (
	engineTypeAlphaBeta int32 = 0
	engineTypeMCTS      int32 = 1
)

// engineConfig mirrors BiscaEngineConfig. Go inserts the same padding a C
// compiler does for these field types.
type engineConfig struct {
	Type        int32
	NNUEPath    *byte
	Depth       int32
	Iterations  int32
	CPUCT       float64
	PerfectInfo int32
	RootMT      int32
}

// engineAPI is the library's function table.
type engineAPI struct {
	create   func(cfg *engineConfig) uintptr
	destroy  func(handle uintptr)
	status   func(handle uintptr) *byte
	newGame  func(handle uintptr) *byte
	show     func(handle uintptr) *byte
	play     func(handle uintptr, index int32) *byte
	bestMove func(handle uintptr, index *int32, eval *float64) *byte
}

// library is a loaded engine module.
type library struct {
	api   engineAPI
	close func() error
}

// loader opens the module at path.
type loader func(path string) (*library, error)

// loadLibrary opens the shared library and resolves every entry point.
func loadLibrary(path string) (*library, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	lib := &library{close: func() error { return closeLibrary(handle) }}

	symbols := []struct {
		name string
		fptr any
	}{
		{"bisca_engine_create", &lib.api.create},
		{"bisca_engine_destroy", &lib.api.destroy},
		{"bisca_engine_status", &lib.api.status},
		{"bisca_engine_new_game", &lib.api.newGame},
		{"bisca_engine_show", &lib.api.show},
		{"bisca_engine_play", &lib.api.play},
		{"bisca_engine_bestmove", &lib.api.bestMove},
	}

	for _, sym := range symbols {
		addr, err := lookupSymbol(handle, sym.name)
		if err != nil {
			_ = lib.close()

			return nil, fmt.Errorf("resolve %s: %w", sym.name, err)
		}

		purego.RegisterFunc(sym.fptr, addr)
	}

	return lib, nil
}

// newEngineConfig builds the create record. The returned path buffer must
// stay reachable until create returns.
func newEngineConfig(options *config.Options) (*engineConfig, []byte) {
	cfg := &engineConfig{
		Type:       engineTypeAlphaBeta,
		Depth:      int32(options.Depth),
		Iterations: int32(options.Iterations),
		CPUCT:      options.Exploration,
	}

	if options.Engine == config.EngineMCTS {
		cfg.Type = engineTypeMCTS
	}

	if options.Info == config.InfoPerfect {
		cfg.PerfectInfo = 1
	}

	if options.RootMT {
		cfg.RootMT = 1
	}

	var path []byte
	if options.WeightsPath != "" {
		path = cString(options.WeightsPath)
		cfg.NNUEPath = &path[0]
	}

	return cfg, path
}

// cString returns s as a NUL-terminated byte slice.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)

	return b
}

// goString copies a NUL-terminated C string. A nil pointer yields ok=false.
func goString(p *byte) (string, bool) {
	if p == nil {
		return "", false
	}

	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}

	return string(unsafe.Slice(p, n)), true
}
