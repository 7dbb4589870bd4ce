// Package snapshot parses the engine's textual "show" dump into a structured
// Snapshot.
//
// The engine emits no structured state; everything the session layer knows
// about the table comes from this grammar:
//
//	Trunfo: <rank> de <suit>[ (...)]
//	Deck restante: <int>
//	TrunfoDado: <0|1>
//	CurrentPlayer: <0|1>
//	Pontuacao: P0=<int> ... P1=<int>
//	Mao P0                     begin hand-0 card section
//	Mao P1                     begin hand-1 card section
//	Trick atual                begin trick card section
//	[<idx>] <rank> de <suit>   card line (hand sections)
//	(<idx>) <rank> de <suit>   card line (trick section)
//	Jogo terminado: <SIM|NAO>
//	---------------------------------
//
// Parse is total: unrecognized lines are ignored and absent fields fall back
// to documented defaults.
package snapshot
