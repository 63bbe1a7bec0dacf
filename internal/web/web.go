package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/config"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/render"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/state"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for simplicity
	},
}

// Server serves the dashboard UI and API endpoints.
type Server struct {
	dashState       *state.DashState
	client          *icu.Client
	cfg             *config.Config
	triggerFull     chan<- struct{}
	triggerPatients chan<- struct{}
	version         string
	clients         map[*websocket.Conn]bool
	clientsMu       sync.RWMutex
	broadcast       chan []byte
	sessions        sync.Map // token -> login time
	now             func() time.Time
}

// New creates a new web server. triggerFull and triggerPatients feed the sync
// scheduler; both sends are non-blocking.
func New(dashState *state.DashState, client *icu.Client, cfg *config.Config, triggerFull, triggerPatients chan<- struct{}, version string) *Server {
	s := &Server{
		dashState:       dashState,
		client:          client,
		cfg:             cfg,
		triggerFull:     triggerFull,
		triggerPatients: triggerPatients,
		version:         version,
		clients:         make(map[*websocket.Conn]bool),
		broadcast:       make(chan []byte, 256),
		now:             time.Now,
	}

	// Start broadcast handler
	go s.handleBroadcasts()

	// Start state change monitor
	go s.monitorStateChanges()

	return s
}

// authEnabled reports whether dashboard login is configured.
func (s *Server) authEnabled() bool {
	return s.cfg.DashUsername != "" && s.cfg.DashPassword != ""
}

// Start starts the web server in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if s.authEnabled() {
		protect = s.requireAuth
		mux.HandleFunc("/login", s.handleLogin)
		mux.HandleFunc("/logout", s.handleLogout)
	}

	// WebSocket endpoint
	mux.HandleFunc("/ws", protect(s.handleWebSocket))

	// API endpoints
	mux.HandleFunc("/api/state", protect(s.handleState))
	mux.HandleFunc("/api/payload", protect(s.handlePayload))
	mux.HandleFunc("/api/refresh", protect(s.handleRefresh))
	mux.HandleFunc("/api/patients", protect(s.handleAddPatient))
	mux.HandleFunc("/api/patient/", protect(s.handlePatientDetail))

	// Serve the UI
	mux.HandleFunc("/", protect(s.handleUI))

	addr := fmt.Sprintf(":%s", s.cfg.WebPort)
	slog.Info("Web UI listening", "address", addr, "component", "Web")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("Web server failed", "error", err, "component", "Web")
		}
	}()
}

// pushPayload is what the websocket sends to browsers: the region fragments
// rendered server-side plus the raw metadata the page chrome needs.
type pushPayload struct {
	Status       string             `json:"status"`
	Patients     string             `json:"patients"`
	Alerts       string             `json:"alerts"`
	PatientCount int                `json:"patientCount"`
	AlertCount   int                `json:"alertCount"`
	Health       state.ServerHealth `json:"health"`
	LastSync     state.SyncInfo     `json:"lastSync"`
	APIEndpoint  string             `json:"apiEndpoint"`
	Logs         []state.LogEntry   `json:"logs"`
}

// buildPayload applies the renderers to a snapshot. A branch whose last fetch
// failed gets its error placeholder instead of a stale-looking list.
func buildPayload(snap state.Snapshot) pushPayload {
	patients := render.PatientList(snap.Patients)
	if snap.PatientsError != "" {
		patients = render.PatientsError()
	}
	alerts := render.AlertList(snap.Alerts)
	if snap.AlertsError != "" {
		alerts = render.AlertsError()
	}
	return pushPayload{
		Status:       render.Status(snap.Health.Online),
		Patients:     patients,
		Alerts:       alerts,
		PatientCount: len(snap.Patients),
		AlertCount:   len(snap.Alerts),
		Health:       snap.Health,
		LastSync:     snap.LastSync,
		APIEndpoint:  snap.APIEndpoint,
		Logs:         snap.Logs,
	}
}

// handleWebSocket upgrades HTTP connection to WebSocket and manages client lifecycle.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err, "component", "Web")
		return
	}
	defer conn.Close()

	// Register client
	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	slog.Debug("WebSocket client connected", "component", "Web")

	// Send initial payload
	if data, err := json.Marshal(buildPayload(s.dashState.TakeSnapshot())); err == nil {
		conn.WriteMessage(websocket.TextMessage, data)
	}

	// Wait for client disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Unregister client
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()

	slog.Debug("WebSocket client disconnected", "component", "Web")
}

// handleBroadcasts sends payloads to all connected WebSocket clients.
func (s *Server) handleBroadcasts() {
	for message := range s.broadcast {
		s.clientsMu.RLock()
		for client := range s.clients {
			err := client.WriteMessage(websocket.TextMessage, message)
			if err != nil {
				client.Close()
				s.clientsMu.RUnlock()
				s.clientsMu.Lock()
				delete(s.clients, client)
				s.clientsMu.Unlock()
				s.clientsMu.RLock()
			}
		}
		s.clientsMu.RUnlock()
	}
}

// monitorStateChanges broadcasts a fresh payload on every state mutation, with
// a 1-second ticker as a fallback to catch any updates that may be missed.
func (s *Server) monitorStateChanges() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	changeCh := s.dashState.ChangeCh()

	var lastHash uint64
	maybeBroadcast := func() {
		snap := s.dashState.TakeSnapshot()
		currentHash := hashSnapshot(snap)
		if currentHash != lastHash {
			lastHash = currentHash
			if data, err := json.Marshal(buildPayload(snap)); err == nil {
				select {
				case s.broadcast <- data:
				default:
				}
			}
		}
	}

	for {
		select {
		case <-changeCh:
			maybeBroadcast()
		case <-ticker.C:
			maybeBroadcast()
		}
	}
}

// hashSnapshot creates a cheap hash of the snapshot for change detection.
func hashSnapshot(snap state.Snapshot) uint64 {
	var hash uint64
	hash = uint64(len(snap.Patients))
	hash = hash*31 + uint64(len(snap.Alerts))
	hash = hash*31 + uint64(len(snap.Logs))
	if snap.Health.Online {
		hash = hash * 37
	}
	if len(snap.LastSync.Status) > 0 {
		hash = hash*31 + uint64(snap.LastSync.Status[0])
	}
	for _, b := range []byte(snap.PatientsError) {
		hash = hash*31 + uint64(b)
	}
	for _, b := range []byte(snap.AlertsError) {
		hash = hash*31 + uint64(b)
	}
	// Include per-patient and per-alert identity so a content-only change in
	// either list is detected.
	for _, p := range snap.Patients {
		hash = hash*31 + uint64(p.PatientID)
		for _, b := range []byte(p.Condition) {
			hash = hash*31 + uint64(b)
		}
	}
	for _, a := range snap.Alerts {
		hash = hash*31 + uint64(a.PatientID)
		hash = hash*31 + uint64(a.Priority)
		hash = hash*31 + uint64(a.Timestamp)
	}
	return hash
}
