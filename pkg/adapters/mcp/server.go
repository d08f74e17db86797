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

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/session"
)

// MachinesURI is the resource listing the catalog.
const MachinesURI = "turing://machines"

// MachineInfo describes a catalog machine.
type MachineInfo struct {
	Name        string `json:"name" jsonschema_description:"Machine name used by run_machine"`
	Description string `json:"description"`
	Start       string `json:"start" jsonschema_description:"Initial state"`
	Example     string `json:"example,omitempty" jsonschema_description:"Sample input tape"`
	HeadAtEnd   bool   `json:"head_at_end" jsonschema_description:"Whether the head starts on the last cell by default"`
}

// MachineDescription is the result of describe_machine.
type MachineDescription struct {
	MachineInfo
	Rules   []string `json:"rules" jsonschema_description:"One line per rule in lookup order: state read -> write move next"`
	Mermaid string   `json:"mermaid" jsonschema_description:"Mermaid flowchart of the transition table"`
}

// RunResponse is the result of run_machine, step_run and get_run.
type RunResponse struct {
	Run *domain.RunRecord `json:"run" jsonschema_description:"The stored run record"`
	// Error is set when the machine has no rule for its current configuration.
	Error string `json:"error,omitempty"`
}

type runArgs struct {
	Machine  string `mapstructure:"machine"`
	Tape     string `mapstructure:"tape"`
	Head     *int   `mapstructure:"head"`
	MaxSteps int    `mapstructure:"max_steps"`
}

type stepArgs struct {
	RunID string `mapstructure:"run_id"`
	Steps int    `mapstructure:"steps"`
}

// Server exposes catalog machines and persisted runs as MCP tools.
type Server struct {
	runs      *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(runs *session.Manager, opts ...Option) *Server {
	s := &Server{
		runs:      runs,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on port until ctx is done.
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
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the Turing machines that can be run."),
	), s.handleListMachines)

	// TOOL: describe_machine
	describeTool := mcp.NewTool("describe_machine",
		mcp.WithDescription("Show the transition table of a machine and a Mermaid diagram of it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name from list_machines")),
		mcp.WithOutputSchema[MachineDescription](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribeMachine))

	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Start a run of a machine on a tape and execute it until it halts or the step budget is spent. The run is stored and can be resumed with step_run."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("tape", mcp.Required(), mcp.Description("Initial tape using 0, 1 and _ for blank")),
		mcp.WithNumber("head", mcp.Description("Initial head index (defaults to the machine's preference)")),
		mcp.WithNumber("max_steps", mcp.Description("Step budget for this call")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunMachine))

	// TOOL: step_run
	stepTool := mcp.NewTool("step_run",
		mcp.WithDescription("Advance a stored run by a number of steps."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run ID returned by run_machine")),
		mcp.WithNumber("steps", mcp.Description("Steps to apply (default 1)")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStepRun))

	// TOOL: get_run
	getTool := mcp.NewTool("get_run",
		mcp.WithDescription("Fetch a stored run."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run ID")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetRun))
}

func (s *Server) machines() []MachineInfo {
	programs := s.runs.Programs().List()
	out := make([]MachineInfo, len(programs))
	for i, p := range programs {
		out[i] = info(p)
	}
	return out
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.machines())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDescribeMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MachineDescription, error) {
	name, _ := args["name"].(string)
	p, err := s.runs.Programs().Get(name)
	if err != nil {
		return MachineDescription{}, err
	}

	rules := p.Table.Rules()
	lines := make([]string, len(rules))
	for i, r := range rules {
		next := r.Then.Next
		if r.Then.Accept {
			next += " (halt)"
		}
		lines[i] = fmt.Sprintf("%s %s -> %s %s %s",
			r.When.State,
			r.When.Read.Render(catalog.BlankGlyph),
			r.Then.Write.Render(catalog.BlankGlyph),
			r.Then.Move,
			next,
		)
	}

	return MachineDescription{
		MachineInfo: info(p),
		Rules:       lines,
		Mermaid:     graph.GenerateMermaid(rules, p.Start, nil),
	}, nil
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	var in runArgs
	if err := decodeArgs(args, &in); err != nil {
		return RunResponse{}, err
	}

	rec, err := s.runs.Start(ctx, session.StartRequest{
		Machine:  in.Machine,
		Tape:     in.Tape,
		Head:     in.Head,
		MaxSteps: in.MaxSteps,
	})
	return s.respond("run_machine", rec, err)
}

func (s *Server) handleStepRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	in := stepArgs{Steps: 1}
	if err := decodeArgs(args, &in); err != nil {
		return RunResponse{}, err
	}
	if in.Steps < 1 {
		return RunResponse{}, fmt.Errorf("steps must be positive, got %d", in.Steps)
	}

	rec, err := s.runs.Advance(ctx, in.RunID, in.Steps)
	return s.respond("step_run", rec, err)
}

func (s *Server) handleGetRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	id, _ := args["run_id"].(string)
	rec, err := s.runs.Load(ctx, id)
	if err != nil {
		return RunResponse{}, err
	}
	return RunResponse{Run: rec, Error: rec.Error}, nil
}

// respond reports undefined transitions as part of the result, not as a tool failure.
func (s *Server) respond(tool string, rec *domain.RunRecord, err error) (RunResponse, error) {
	if err != nil && (rec == nil || !errors.Is(err, domain.ErrUndefinedTransition)) {
		s.logger.Warn("MCP tool failed", "tool", tool, "err", err)
		return RunResponse{}, err
	}
	return RunResponse{Run: rec, Error: rec.Error}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://machines
	s.mcpServer.AddResource(mcp.NewResource(MachinesURI, "Machine Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.machines())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MachinesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// decodeArgs maps tool arguments onto out. JSON numbers arrive as float64.
func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func info(p *catalog.Program) MachineInfo {
	return MachineInfo{
		Name:        p.Name,
		Description: p.Description,
		Start:       p.Start,
		Example:     p.Example,
		HeadAtEnd:   p.HeadAtEnd,
	}
}
