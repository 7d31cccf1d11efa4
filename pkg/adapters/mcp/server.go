// Package mcp exposes a running Tendril engine as a Model Context Protocol
// server, so agents can inspect and live-code the graph.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/presentation/graph"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Engine defines what the MCP server needs from the engine host.
type Engine interface {
	Inspect(ctx context.Context) (domain.Snapshot, error)
	RebuildScript(ctx context.Context, data []byte) error
	LastError() error
}

// RebuildArgs are the arguments of the rebuild_script tool.
type RebuildArgs struct {
	Script string `json:"script" jsonschema_description:"YAML or JSON script replacing the running graph"`
}

// RebuildResponse reports the outcome of rebuild_script.
type RebuildResponse struct {
	OK         bool   `json:"ok" jsonschema_description:"True if the new graph is running"`
	Error      string `json:"error,omitempty" jsonschema_description:"Build error; the previous graph keeps running"`
	Statement  int    `json:"statement,omitempty" jsonschema_description:"1-based index of the failing statement"`
	Generators int    `json:"generators" jsonschema_description:"Number of generators in the running graph"`
}

// ErrorResponse reports the last build error.
type ErrorResponse struct {
	Error string `json:"error,omitempty" jsonschema_description:"Last build error, empty if the last build succeeded"`
}

// KindInfo documents one generator kind.
type KindInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Ports       []string `json:"ports"`
	Description string   `json:"description"`
}

// KindsResponse lists the generator kinds.
type KindsResponse struct {
	Kinds []KindInfo `json:"kinds"`
}

type noArgs struct{}

// Server wraps the engine host and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("tendril-mcp", strings.TrimSpace(tendril.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("rebuild_script",
		mcp.WithDescription("Replace the running graph with a new script. On error the previous graph keeps running."),
		mcp.WithString("script", mcp.Required(), mcp.Description("YAML or JSON list of declare/connect statements")),
		mcp.WithOutputSchema[RebuildResponse](),
	), mcp.NewStructuredToolHandler(s.handleRebuild))

	s.mcpServer.AddTool(mcp.NewTool("inspect_graph",
		mcp.WithDescription("Get the running generators, their port values and the wiring."),
	), mcp.NewStructuredToolHandler(s.handleInspect))

	s.mcpServer.AddTool(mcp.NewTool("last_error",
		mcp.WithDescription("Get the error of the last rebuild, if any."),
		mcp.WithOutputSchema[ErrorResponse](),
	), mcp.NewStructuredToolHandler(s.handleLastError))

	s.mcpServer.AddTool(mcp.NewTool("list_kinds",
		mcp.WithDescription("List the generator kinds with their ports and defaults."),
		mcp.WithOutputSchema[KindsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListKinds))
}

func (s *Server) handleRebuild(ctx context.Context, _ mcp.CallToolRequest, args RebuildArgs) (RebuildResponse, error) {
	err := s.engine.RebuildScript(ctx, []byte(args.Script))
	if err != nil && !domain.IsBuildError(err) {
		return RebuildResponse{}, fmt.Errorf("rebuild failed: %w", err)
	}

	resp := RebuildResponse{OK: err == nil}
	if err != nil {
		resp.Error = err.Error()
		var be *domain.BuildError
		if errors.As(err, &be) && be.Index >= 0 {
			resp.Statement = be.Index + 1
		}
	}

	snap, ierr := s.engine.Inspect(ctx)
	if ierr == nil {
		resp.Generators = len(snap.Generators)
	}
	return resp, nil
}

func (s *Server) handleInspect(ctx context.Context, _ mcp.CallToolRequest, _ noArgs) (domain.Snapshot, error) {
	snap, err := s.engine.Inspect(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("inspect failed: %w", err)
	}
	return snap, nil
}

func (s *Server) handleLastError(_ context.Context, _ mcp.CallToolRequest, _ noArgs) (ErrorResponse, error) {
	if err := s.engine.LastError(); err != nil {
		return ErrorResponse{Error: err.Error()}, nil
	}
	return ErrorResponse{}, nil
}

func (s *Server) handleListKinds(_ context.Context, _ mcp.CallToolRequest, _ noArgs) (KindsResponse, error) {
	return KindsResponse{Kinds: Kinds()}, nil
}

// Kinds describes every generator kind.
func Kinds() []KindInfo {
	var out []KindInfo
	for _, k := range generator.Kinds() {
		g, err := generator.New(k, generator.Env{})
		if err != nil {
			continue
		}
		info := KindInfo{Name: k.String(), Aliases: k.Aliases(), Description: k.Description()}
		for _, p := range g.Ports() {
			info.Ports = append(info.Ports, p.Name())
		}
		out = append(out, info)
	}
	return out
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("tendril://graph", "Running graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.engine.Inspect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect graph: %w", err)
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tendril://graph",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource("tendril://graph.mmd", "Running graph (Mermaid)",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.engine.Inspect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tendril://graph.mmd",
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(snap, nil),
			},
		}, nil
	})
}
