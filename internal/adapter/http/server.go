package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BinkeXu/covid-world-map/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotSource yields the current dataset snapshot, nil before the first load.
type SnapshotSource interface {
	Snapshot() *domain.Snapshot
}

// Selector resolves country selections against the loaded dataset.
type Selector interface {
	Select(country string) (domain.CountrySummary, bool)
	Current() (domain.CountrySummary, bool)
}

// Hoverer is the debounced hover intake.
type Hoverer interface {
	Hover(country string)
	Clear()
}

// Server exposes the dataset API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	selector   Selector
	hoverer    Hoverer
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires every route. wsHandler serves
// the websocket upgrade endpoint; the hub behind it lives elsewhere.
func NewServer(addr string, ready ReadinessChecker, source SnapshotSource, selector Selector, hoverer Hoverer, wsHandler http.Handler, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source:   source,
		selector: selector,
		hoverer:  hoverer,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/summaries", s.handleSummaries)
	mux.HandleFunc("GET /api/summaries/{country}", s.handleCountry)
	mux.HandleFunc("GET /api/choropleth", s.handleChoropleth)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /api/selection", s.handleCurrentSelection)
	mux.HandleFunc("POST /api/selection", s.handleSelect)
	mux.HandleFunc("POST /api/hover", s.handleHover)
	mux.HandleFunc("DELETE /api/hover", s.handleHoverClear)

	// The websocket endpoint hijacks the connection, so the server's
	// write timeout stops applying once the upgrade completes.
	mux.Handle("GET /ws", wsHandler)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// summariesResponse carries the full per-country mapping plus the identity
// of the load it came from.
type summariesResponse struct {
	LoadID    string                           `json:"load_id"`
	LoadedAt  time.Time                        `json:"loaded_at"`
	Source    string                           `json:"source"`
	Summaries map[string]domain.CountrySummary `json:"summaries"`
}

type choroplethResponse struct {
	LoadID   string               `json:"load_id"`
	LoadedAt time.Time            `json:"loaded_at"`
	Source   string               `json:"source"`
	Regions  []domain.RegionColor `json:"regions"`
}

type selectionResponse struct {
	Selected bool                   `json:"selected"`
	Summary  *domain.CountrySummary `json:"summary,omitempty"`
}

type countryRequest struct {
	Country string `json:"country"`
}

func (s *Server) handleSummaries(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Snapshot()
	if snap == nil {
		writeNotLoaded(w)
		return
	}
	writeJSON(w, http.StatusOK, summariesResponse{
		LoadID:    snap.LoadID,
		LoadedAt:  snap.LoadedAt,
		Source:    snap.Source,
		Summaries: snap.Summaries,
	})
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()
	if snap == nil {
		writeNotLoaded(w)
		return
	}

	country := r.PathValue("country")
	summary, ok := snap.Summary(country)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown country: " + country})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleChoropleth(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Snapshot()
	if snap == nil {
		writeNotLoaded(w)
		return
	}
	writeJSON(w, http.StatusOK, choroplethResponse{
		LoadID:   snap.LoadID,
		LoadedAt: snap.LoadedAt,
		Source:   snap.Source,
		Regions:  snap.Choropleth,
	})
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Legend())
}

func (s *Server) handleCurrentSelection(w http.ResponseWriter, _ *http.Request) {
	summary, ok := s.selector.Current()
	if !ok {
		writeJSON(w, http.StatusOK, selectionResponse{Selected: false})
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Selected: true, Summary: &summary})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	country, ok := readCountry(w, r)
	if !ok {
		return
	}

	summary, ok := s.selector.Select(country)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown country: " + country})
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Selected: true, Summary: &summary})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	country, ok := readCountry(w, r)
	if !ok {
		return
	}

	s.hoverer.Hover(country)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleHoverClear(w http.ResponseWriter, _ *http.Request) {
	s.hoverer.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// readCountry decodes the {"country": "..."} request body shared by the
// selection and hover endpoints. On a bad body it writes the 400 itself.
func readCountry(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Country == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": `body must be {"country": "..."}`})
		return "", false
	}
	return req.Country, true
}

func writeNotLoaded(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset not loaded yet"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
