// Package timeouts holds the durations shared by the genome clients and the
// HTTP listeners.
package timeouts

import "time"

const (
	// GRPCDial bounds dialing the genome service and waiting for it to
	// report SERVING.
	GRPCDial = 2 * time.Second
	// GenomeCall bounds one unary genome call made for an MCP tool, an MCP
	// resource read or a seed step.
	GenomeCall = 5 * time.Second

	// ReadHeader bounds request header reads on HTTP listeners.
	ReadHeader = 5 * time.Second
	// Shutdown bounds draining in-flight HTTP requests.
	Shutdown = 5 * time.Second
)
