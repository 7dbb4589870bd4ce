// Package native provides the in-process transport for the bisca engine.
//
// The engine ships a shared library exporting a small C API:
//
//	bisca_engine_create(const BiscaEngineConfig*) -> handle
//	bisca_engine_destroy(handle)
//	bisca_engine_status(handle)                    -> const char*
//	bisca_engine_new_game(handle)                  -> const char*
//	bisca_engine_show(handle)                      -> const char*
//	bisca_engine_play(handle, int)                 -> const char*
//	bisca_engine_bestmove(handle, int*, double*)   -> const char*
//
// The library is loaded without cgo through purego. Returned strings belong
// to the library and are overwritten by the next call, so they are copied
// into Go memory immediately.
package native
