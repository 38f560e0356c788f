// Package service runs the genome MCP server over stdio or streamable HTTP.
// It owns the gRPC connection to the genome service and hands each tool and
// resource to the domain package.
package service
