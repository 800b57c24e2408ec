package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// SpectatorFrame is one rendered board sent to watchers.
type SpectatorFrame struct {
	Type     string `json:"type"` // "frame" or "end"
	Session  string `json:"session"`
	Game     string `json:"game,omitempty"`
	Tick     uint64 `json:"tick,omitempty"`
	Length   int    `json:"length,omitempty"`
	TickRate int    `json:"tick_rate,omitempty"`
	Screen   string `json:"screen,omitempty"`
}

// spectatorBuffer is how many frames a slow watcher may lag before frames
// are dropped for it.
const spectatorBuffer = 16

type spectator struct {
	id      string
	session string // empty watches every session
	ws      *websocket.Conn
	send    chan []byte
}

// SpectatorHub fans rendered boards of live sessions out to websocket
// watchers. It is read-only: watchers cannot influence any simulation.
type SpectatorHub struct {
	mu         sync.RWMutex
	spectators map[string]*spectator
	sessions   map[string]SpectatorFrame // last frame per live session
	logger     *log.Logger
	upgrader   websocket.Upgrader
}

// NewSpectatorHub creates an empty hub.
func NewSpectatorHub(logger *log.Logger) *SpectatorHub {
	return &SpectatorHub{
		spectators: make(map[string]*spectator),
		sessions:   make(map[string]SpectatorFrame),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish records the latest frame of a session and forwards it.
// Never blocks; watchers that fall behind miss frames.
func (h *SpectatorHub) Publish(f SpectatorFrame) {
	f.Type = "frame"
	h.mu.Lock()
	h.sessions[f.Session] = f
	h.mu.Unlock()
	h.broadcast(f)
}

// End tells watchers a session is over.
func (h *SpectatorHub) End(session string) {
	h.mu.Lock()
	delete(h.sessions, session)
	h.mu.Unlock()
	h.broadcast(SpectatorFrame{Type: "end", Session: session})
}

// Sessions returns the IDs of live sessions.
func (h *SpectatorHub) Sessions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of connected watchers.
func (h *SpectatorHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.spectators)
}

func (h *SpectatorHub) broadcast(f SpectatorFrame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Error("cannot encode spectator frame", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.spectators {
		if s.session != "" && s.session != f.Session {
			continue
		}
		select {
		case s.send <- data:
		default:
		}
	}
}

// Handler returns the HTTP handler. GET /sessions lists live sessions;
// GET /ws upgrades to a websocket stream, optionally ?session=<id>.
func (h *SpectatorHub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(h.Sessions()); err != nil {
			h.logger.Warn("cannot write session list", "error", err)
		}
	})
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *SpectatorHub) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s := &spectator{
		id:      uuid.NewString(),
		session: r.URL.Query().Get("session"),
		ws:      ws,
		send:    make(chan []byte, spectatorBuffer),
	}
	h.mu.Lock()
	h.spectators[s.id] = s
	h.mu.Unlock()
	h.logger.Info("spectator connected", "id", s.id, "session", s.session, "remote", r.RemoteAddr)

	go h.writeLoop(s)
	h.readLoop(s)
}

// readLoop discards client messages and unregisters the watcher when the
// connection drops.
func (h *SpectatorHub) readLoop(s *spectator) {
	defer func() {
		h.mu.Lock()
		delete(h.spectators, s.id)
		h.mu.Unlock()
		close(s.send)
		h.logger.Info("spectator disconnected", "id", s.id)
	}()

	for {
		if _, _, err := s.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("spectator read error", "id", s.id, "error", err)
			}
			return
		}
	}
}

func (h *SpectatorHub) writeLoop(s *spectator) {
	defer s.ws.Close()
	for data := range s.send {
		s.ws.SetWriteDeadline(time.Now().Add(5 * time.Second)) //nolint:errcheck // write reports the failure
		if err := s.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("spectator write failed", "id", s.id, "error", err)
			return
		}
	}
	s.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck // best effort
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *SpectatorHub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("starting spectator feed", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
