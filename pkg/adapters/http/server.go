package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/session"
)

// Server exposes catalog machines and persisted runs over HTTP.
type Server struct {
	Runs    *session.Manager
	Streams *StreamManager
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetricsHandler mounts h (usually promhttp.Handler) at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// StartRunRequest is the body of POST /runs.
type StartRunRequest struct {
	Machine  string `json:"machine"`
	Tape     string `json:"tape"`
	Head     *int   `json:"head,omitempty"`
	MaxSteps int    `json:"max_steps,omitempty"`
}

// MachineSummary describes a catalog machine in listings.
type MachineSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Start       string `json:"start"`
	Example     string `json:"example,omitempty"`
	HeadAtEnd   bool   `json:"head_at_end"`
	Rules       int    `json:"rules"`
}

// RuleView is one rule rendered with "_" for blank cells.
type RuleView struct {
	State  string `json:"state"`
	Read   string `json:"read"`
	Write  string `json:"write"`
	Move   string `json:"move"`
	Next   string `json:"next"`
	Accept bool   `json:"accept,omitempty"`
}

// MachineDetail is the body of GET /machines/{name}.
type MachineDetail struct {
	MachineSummary
	States []string   `json:"states"`
	Table  []RuleView `json:"table"`
}

// NewHandler creates a new HTTP handler for the run manager.
func NewHandler(runs *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Runs:    runs,
		Streams: NewStreamManager(),
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Get("/{name}", s.GetMachine)
		r.Get("/{name}/graph", s.GetMachineGraph)
	})

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Post("/", s.StartRun)
		r.Get("/{id}", s.GetRun)
		r.Delete("/{id}", s.DeleteRun)
		r.Post("/{id}/step", s.StepRun)
		r.Get("/{id}/events", s.SubscribeEvents)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	programs := s.Runs.Programs().List()
	resp := make([]MachineSummary, len(programs))
	for i, p := range programs {
		resp[i] = summarize(p)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	p, err := s.Runs.Programs().Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DescribeProgram(p))
}

// GetMachineGraph handles the GET /machines/{name}/graph request.
func (s *Server) GetMachineGraph(w http.ResponseWriter, r *http.Request) {
	p, err := s.Runs.Programs().Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(p.Table.Rules(), p.Start, nil))
}

// StartRun handles the POST /runs request.
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	var body StartRunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("StartRun: Invalid request body", "err", err)
		s.writeStatus(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Machine == "" {
		s.writeStatus(w, http.StatusBadRequest, errors.New("machine is required"))
		return
	}
	if body.MaxSteps < 0 {
		s.writeStatus(w, http.StatusBadRequest, errors.New("max_steps must not be negative"))
		return
	}

	rec, err := s.Runs.Start(r.Context(), session.StartRequest{
		Machine:  body.Machine,
		Tape:     body.Tape,
		Head:     body.Head,
		MaxSteps: body.MaxSteps,
	})
	s.respondRun(w, http.StatusCreated, rec, err)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Runs.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Runs.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// StepRun handles the POST /runs/{id}/step?n= request. n defaults to 1.
func (s *Server) StepRun(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.writeStatus(w, http.StatusBadRequest, fmt.Errorf("invalid step count %q", raw))
			return
		}
		n = v
	}

	rec, err := s.Runs.Advance(r.Context(), chi.URLParam(r, "id"), n)
	s.respondRun(w, http.StatusOK, rec, err)
}

// DeleteRun handles the DELETE /runs/{id} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Runs.Load(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Runs.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondRun writes a run record and broadcasts it to the run's subscribers.
// A record that hit an undefined transition is still returned, with 422.
func (s *Server) respondRun(w http.ResponseWriter, status int, rec *domain.RunRecord, err error) {
	if rec != nil {
		if payload, mErr := json.Marshal(rec); mErr == nil {
			s.Streams.Broadcast(rec.ID, string(payload))
		}
	}

	switch {
	case err == nil:
		s.writeJSON(w, status, rec)
	case rec != nil && errors.Is(err, domain.ErrUndefinedTransition):
		s.writeJSON(w, http.StatusUnprocessableEntity, rec)
	default:
		s.writeError(w, err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrInvalidRun), errors.Is(err, domain.ErrInvalidRunID):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUndefinedTransition):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	s.writeStatus(w, status, err)
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func summarize(p *catalog.Program) MachineSummary {
	return MachineSummary{
		Name:        p.Name,
		Description: p.Description,
		Start:       p.Start,
		Example:     p.Example,
		HeadAtEnd:   p.HeadAtEnd,
		Rules:       p.Table.Len(),
	}
}

// DescribeProgram renders a catalog program with its full rule table.
func DescribeProgram(p *catalog.Program) MachineDetail {
	rules := p.Table.Rules()
	views := make([]RuleView, len(rules))
	for i, rule := range rules {
		views[i] = RuleView{
			State:  rule.When.State,
			Read:   rule.When.Read.Render(catalog.BlankGlyph),
			Write:  rule.Then.Write.Render(catalog.BlankGlyph),
			Move:   rule.Then.Move.String(),
			Next:   rule.Then.Next,
			Accept: rule.Then.Accept,
		}
	}
	return MachineDetail{
		MachineSummary: summarize(p),
		States:         p.Table.States(),
		Table:          views,
	}
}
