package http

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/aretw0/ham/internal/logging"
	"github.com/aretw0/ham/internal/presentation/graph"
	"github.com/aretw0/ham/internal/validator"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/topology"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a read-only view of a finalized topology.
// The topology is never mutated, so handlers may run concurrently.
type Server struct {
	Topology *topology.Topology
	Version  string
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// WithGatherer sets the metrics source served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the logger used for encoding failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewHandler creates the HTTP handler for topo.
func NewHandler(topo *topology.Topology, opts ...Option) http.Handler {
	s := &Server{
		Topology: topo,
		Version:  "dev",
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/states", s.ListStates)
	r.Get("/states/{name}", s.GetState)
	r.Get("/graph", s.GetGraph)
	r.Get("/issues", s.ListIssues)
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// TransitionView is the JSON form of a transition. LogProb is null for
// impossible transitions since JSON has no -Inf.
type TransitionView struct {
	To      string   `json:"to"`
	Prob    float64  `json:"prob"`
	LogProb *float64 `json:"log_prob"`
}

// StateView is the JSON form of a state.
type StateView struct {
	Name          string           `json:"name"`
	Label         string           `json:"label"`
	Iterator      *int             `json:"iterator,omitempty"`
	Transitions   []TransitionView `json:"transitions"`
	End           *TransitionView  `json:"end,omitempty"`
	Emissions     string           `json:"emissions,omitempty"`
	PairEmissions string           `json:"pair_emissions,omitempty"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":      "ham-http",
		"version":  s.Version,
		"topology": s.Topology.Name(),
		"states":   s.Topology.Len(),
	})
}

// ListStates handles GET /states: init first, then iterator order.
func (s *Server) ListStates(w http.ResponseWriter, r *http.Request) {
	views := make([]StateView, 0, s.Topology.Len())
	if st := s.Topology.Init(); st != nil {
		views = append(views, viewOf(st))
	}
	for _, st := range s.Topology.States() {
		views = append(views, viewOf(st))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// GetState handles GET /states/{name}.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, ok := s.Topology.Lookup(name)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown state " + name})
		return
	}
	s.writeJSON(w, http.StatusOK, viewOf(st))
}

// GetGraph handles GET /graph. The optional "current" query parameter
// highlights one state.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if current := r.URL.Query().Get("current"); current != "" {
		overlay = &graph.GraphOverlay{Current: current}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(graph.GenerateMermaid(s.Topology, overlay))); err != nil {
		s.Logger.Warn("graph write failed", "err", err)
	}
}

// ListIssues handles GET /issues: modelling warnings that did not prevent
// loading.
func (s *Server) ListIssues(w http.ResponseWriter, r *http.Request) {
	issues := validator.Inspect(s.Topology)
	if issues == nil {
		issues = []validator.Issue{}
	}
	s.writeJSON(w, http.StatusOK, issues)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("response encode failed", "err", err)
	}
}

func viewOf(st *domain.State) StateView {
	v := StateView{
		Name:        st.Name,
		Label:       st.Label,
		Transitions: []TransitionView{},
	}
	if k := st.Iterator(); k != domain.Unassigned {
		v.Iterator = &k
	}
	for _, t := range st.Transitions() {
		if t != nil {
			v.Transitions = append(v.Transitions, transitionView(t))
		}
	}
	if end := st.EndTransition(); end != nil {
		tv := transitionView(end)
		v.End = &tv
	}
	if e, ok := st.SingleEmission(); ok {
		v.Emissions = e.Summary()
	}
	if e, ok := st.PairEmission(); ok {
		v.PairEmissions = e.Summary()
	}
	return v
}

func transitionView(t *domain.Transition) TransitionView {
	tv := TransitionView{To: t.To(), Prob: t.Prob()}
	if lp := t.LogProb(); !math.IsInf(lp, -1) {
		tv.LogProb = &lp
	}
	return tv
}
