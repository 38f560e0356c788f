// Package domain translates MCP tool calls and resource reads into genome
// service requests and shapes the responses for MCP clients.
package domain
