// Package mcp exposes an engine session as Model Context Protocol tools.
//
// ToolServer registers every tool twice: with the official MCP SDK server,
// which serves them over a transport such as stdio, and in its own registry
// for direct programmatic invocation through CallTool.
package mcp
