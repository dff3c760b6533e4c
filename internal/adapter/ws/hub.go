// Package ws fans dataset and interaction events out to map clients over
// websockets.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BinkeXu/covid-world-map/internal/domain"
	"github.com/BinkeXu/covid-world-map/internal/observability"
)

// Envelope frame types.
const (
	TypeSnapshot  = "snapshot"
	TypeSelection = "selection"
	TypeHover     = "hover"
)

// writeWait bounds how long a slow client may block a broadcast.
const writeWait = 2 * time.Second

// Envelope is one outbound frame. Type picks which of the remaining fields
// are populated.
type Envelope struct {
	Type string `json:"type"`

	// Snapshot frames.
	LoadID     string               `json:"load_id,omitempty"`
	Source     string               `json:"source,omitempty"`
	Countries  int                  `json:"countries,omitempty"`
	Choropleth []domain.RegionColor `json:"choropleth,omitempty"`

	// Selection and hover frames.
	Summary *domain.CountrySummary `json:"summary,omitempty"`
}

// SnapshotSource yields the current dataset snapshot, nil before the first load.
type SnapshotSource interface {
	Snapshot() *domain.Snapshot
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the map frontend is served from anywhere; no origin pinning
	},
}

// Hub tracks connected websocket clients and broadcasts envelopes to all of
// them. It implements http.Handler for the upgrade endpoint and the Notifier
// interfaces of the pipeline and selection packages.
type Hub struct {
	source  SnapshotSource
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(source SnapshotSource, logger *slog.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		source:  source,
		logger:  logger,
		metrics: metrics,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and parks it in the client set until the
// peer goes away. A client connecting after the first load immediately
// receives the current snapshot so it can paint without waiting for the
// next broadcast.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.add(conn)
	h.logger.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	if snap := h.source.Snapshot(); snap != nil {
		h.writeTo(conn, snapshotEnvelope(snap))
	}

	// Inbound frames carry nothing; reading just detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
	h.logger.Debug("websocket client disconnected", "remote", conn.RemoteAddr().String())
}

// NotifySnapshot broadcasts a freshly loaded snapshot.
func (h *Hub) NotifySnapshot(snap *domain.Snapshot) {
	h.broadcast(snapshotEnvelope(snap))
}

// NotifySelection broadcasts a selection change with the selected summary.
func (h *Hub) NotifySelection(summary domain.CountrySummary) {
	h.broadcast(Envelope{Type: TypeSelection, Summary: &summary})
}

// NotifyHover broadcasts a hover highlight with the hovered summary.
func (h *Hub) NotifyHover(summary domain.CountrySummary) {
	h.broadcast(Envelope{Type: TypeHover, Summary: &summary})
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.metrics.WSClients.Set(float64(len(h.clients)))
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.metrics.WSClients.Set(float64(len(h.clients)))
	h.mu.Unlock()
	_ = conn.Close()
}

// broadcast marshals once and writes to every client, dropping the ones
// whose writes fail. All websocket writes happen under h.mu.
func (h *Hub) broadcast(env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("marshal broadcast frame", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
	h.metrics.WSClients.Set(float64(len(h.clients)))
}

// writeTo sends one envelope to one client under the same lock broadcasts
// use, so no two writes ever interleave on a connection.
func (h *Hub) writeTo(conn *websocket.Conn, env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func snapshotEnvelope(snap *domain.Snapshot) Envelope {
	return Envelope{
		Type:       TypeSnapshot,
		LoadID:     snap.LoadID,
		Source:     snap.Source,
		Countries:  snap.Stats.Countries,
		Choropleth: snap.Choropleth,
	}
}
