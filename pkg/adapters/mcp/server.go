package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// BindResponse is the structured result of the submit_form tool. It mirrors
// the HTTP adapter's report payload so agents see one shape everywhere.
type BindResponse struct {
	Form         string              `json:"form" jsonschema_description:"Name of the bound form"`
	Valid        bool                `json:"valid" jsonschema_description:"Whether the submission passed validation"`
	Synchronized bool                `json:"synchronized" jsonschema_description:"Whether the submission could be converted to storage format"`
	Empty        bool                `json:"empty" jsonschema_description:"Whether the submission was empty"`
	Errors       map[string][]string `json:"errors,omitempty" jsonschema_description:"Validation messages keyed by field path"`
	Extra        []string            `json:"extra,omitempty" jsonschema_description:"Submitted keys that matched no field"`
	Data         any                 `json:"data" jsonschema_description:"Reconciled data in storage format"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Definitions(ctx context.Context) ([]string, error)
	Definition(ctx context.Context, name string) (schema.Form, error)
	Bind(ctx context.Context, name string, initial, submission domain.Value) (*espalier.Report, error)
}

// Server exposes the form engine as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("espalier-mcp", strings.TrimSpace(espalier.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
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

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_forms
	s.mcpServer.AddTool(mcp.NewTool("list_forms",
		mcp.WithDescription("List the names of all available form definitions."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.engine.Definitions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_form
	describeTool := mcp.NewTool("describe_form",
		mcp.WithDescription("Get a form definition: its fields, types, labels and validation rules."),
		mcp.WithString("form", mcp.Required(), mcp.Description("Form name")),
		mcp.WithOutputSchema[schema.Form](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: submit_form
	submitTool := mcp.NewTool("submit_form",
		mcp.WithDescription("Bind a submission to a form and return the validation report. Values are strings as a user would type them; nested groups are JSON objects."),
		mcp.WithString("form", mcp.Required(), mcp.Description("Form name")),
		mcp.WithString("submission", mcp.Required(), mcp.Description("JSON object of field values in presentation format")),
		mcp.WithOutputSchema[BindResponse](),
	)
	s.mcpServer.AddTool(submitTool, mcp.NewStructuredToolHandler(s.handleSubmit))
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (schema.Form, error) {
	name, _ := args["form"].(string)

	def, err := s.engine.Definition(ctx, name)
	if err != nil {
		return schema.Form{}, fmt.Errorf("definition failed: %w", err)
	}
	return def, nil
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BindResponse, error) {
	name, _ := args["form"].(string)

	var raw map[string]any
	if subStr, ok := args["submission"].(string); ok && subStr != "" {
		if err := json.Unmarshal([]byte(subStr), &raw); err != nil {
			return BindResponse{}, fmt.Errorf("submission is not a JSON object: %w", err)
		}
	}

	report, err := s.engine.Bind(ctx, name, domain.Null(), domain.ValueOf(raw))
	if err != nil {
		return BindResponse{}, fmt.Errorf("bind failed: %w", err)
	}

	return BindResponse{
		Form:         report.Form,
		Valid:        report.Valid,
		Synchronized: report.Synchronized,
		Empty:        report.Empty,
		Errors:       report.Errors,
		Extra:        report.Extra,
		Data:         report.Data.Interface(),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: espalier://forms
	s.mcpServer.AddResource(mcp.NewResource("espalier://forms", "Available Form Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Definitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list forms: %w", err)
		}

		defs := make([]schema.Form, 0, len(names))
		for _, name := range names {
			def, err := s.engine.Definition(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve form %q: %w", name, err)
			}
			defs = append(defs, def)
		}
		jsonBytes, _ := json.Marshal(defs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "espalier://forms",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
