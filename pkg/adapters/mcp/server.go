// Package mcp exposes expansions as Model Context Protocol tools.
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

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/observability"
	"github.com/aretw0/exinc/pkg/ports"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

const expansionsURI = "exinc://expansions"

// ExpandArgs are the arguments of the expand_includes tool.
type ExpandArgs struct {
	Text   string   `mapstructure:"text"`
	Parent string   `mapstructure:"parent"`
	Paths  []string `mapstructure:"paths"`
}

// Config configures the MCP server.
type Config struct {
	// Store keeps the reports so get_expansion can return them (default: in memory).
	Store ports.ResultStore
	// Options are applied to every engine before the per-call ones.
	Options []exinc.Option
	// Roots are the directories tool calls may search. Every run is confined to
	// them and to the configured default paths.
	Roots  []string
	Logger *slog.Logger
}

// Server exposes the inliner as an MCP Server.
type Server struct {
	store     ports.ResultStore
	options   []exinc.Option
	roots     []string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(cfg Config) *Server {
	s := &Server{
		store:     cfg.Store,
		options:   cfg.Options,
		roots:     cfg.Roots,
		logger:    cfg.Logger,
		mcpServer: server.NewMCPServer("exinc-mcp", strings.TrimSpace(exinc.Version)),
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given loopback port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: expand_includes
	expandTool := mcp.NewTool("expand_includes",
		mcp.WithDescription("Inline every #include \"file\" directive of a C/C++ source, recursively. "+
			"Each file is inlined once; missing files and cyclic includes are reported as diagnostics."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The root source text")),
		mcp.WithString("parent", mcp.Description("Name of the root document, used in diagnostics (default root_file)")),
		mcp.WithArray("paths", mcp.Description("Directories searched for include files, in order"), mcp.WithStringItems()),
		mcp.WithOutputSchema[domain.Report](),
	)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))

	// TOOL: get_expansion
	s.mcpServer.AddTool(mcp.NewTool("get_expansion",
		mcp.WithDescription("Get the report of a previous expansion by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Expansion ID returned by expand_includes")),
	), s.handleGetExpansion)
}

// DecodeArgs converts raw tool arguments into ExpandArgs, rejecting unknown keys.
func DecodeArgs(raw map[string]interface{}) (ExpandArgs, error) {
	var args ExpandArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &args,
	})
	if err != nil {
		return args, err
	}
	if err := decoder.Decode(raw); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (domain.Report, error) {
	args, err := DecodeArgs(raw)
	if err != nil {
		return domain.Report{}, err
	}

	id := uuid.NewString()
	opts := append([]exinc.Option(nil), s.options...)
	opts = append(opts,
		exinc.WithRoots(s.roots...),
		exinc.WithPaths(args.Paths...),
		exinc.WithLogger(s.logger),
		exinc.WithHooks(observability.LogHooks(s.logger.With("id", id))),
	)
	if args.Parent != "" {
		opts = append(opts, exinc.WithFilename(args.Parent))
	}

	eng, err := exinc.New(args.Text, opts...)
	if err != nil {
		return domain.Report{}, fmt.Errorf("expand failed: %w", err)
	}

	record := &domain.Record{
		ID:           id,
		Parent:       eng.Parent(),
		Preprocessor: eng.Preprocessor().Name(),
		CreatedAt:    time.Now().UTC(),
		Result:       eng.Run(ctx),
	}
	if err := s.store.Save(ctx, record); err != nil {
		s.logger.Error("MCP Expand: store failed", "err", err)
		return domain.Report{}, fmt.Errorf("failed to store result: %w", err)
	}
	return domain.NewReport(record), nil
}

func (s *Server) handleGetExpansion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	record, err := s.store.Load(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResultNotFound):
			return mcp.NewToolResultError(fmt.Sprintf("expansion %s not found", id)), nil
		case errors.Is(err, domain.ErrInvalidID):
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	data, err := json.Marshal(domain.NewReport(record))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: exinc://expansions
	s.mcpServer.AddResource(mcp.NewResource(expansionsURI, "Stored expansions",
		mcp.WithMIMEType("application/json"),
	), s.readExpansions)
}

func (s *Server) readExpansions(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expansions: %w", err)
	}
	jsonBytes, _ := json.Marshal(ids)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      expansionsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
