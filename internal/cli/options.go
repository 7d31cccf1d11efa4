// Package cli wires the engine, the frame loop and the adapters together for
// the tendril command.
package cli

import (
	"io"

	"github.com/aretw0/tendril/internal/config"
)

// MCP transports.
const (
	MCPStdio = "stdio"
	MCPSSE   = "sse"
)

// RunOptions contains all the configuration for a live session.
type RunOptions struct {
	Config config.Config

	// Watch reloads the script whenever the file changes.
	Watch bool
	// Headless skips the terminal canvas; diagnostics go to Stdout.
	Headless bool
	// Serve exposes the HTTP control API on Config.HTTP.Addr.
	Serve bool
	// MCP serves the Model Context Protocol over MCPStdio or MCPSSE.
	MCP     string
	MCPPort int

	Debug bool
	// Frames stops the loop after this many frames. Zero runs until cancelled.
	Frames uint64

	Stdout io.Writer
	Stderr io.Writer
}

// live reports whether a failed initial build should keep the session running,
// waiting for a better script.
func (o RunOptions) live() bool {
	return o.Watch || o.Serve || o.MCP != ""
}
