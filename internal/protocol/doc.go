// Package protocol describes the engine's line-oriented command protocol.
//
// Each command is one UTF-8 line:
//
//	newgame       resets the table, answered by a banner and a show dump
//	show          answered by a show dump ending in the dash terminator
//	bestmove      answered by "bestmove index=<N> eval=<X> ..."
//	play <index>  answered by "Jogada efetuada ..." and a show dump,
//	              or "Jogada inválida ..." alone
//	quit          the engine exits
//
// The engine has no framing, so a transport decides a response is complete
// by evaluating the command's completion predicate over the text received
// so far.
package protocol
