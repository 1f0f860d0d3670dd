package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"boardquest/internal/engine"
	"boardquest/internal/lobby"
	qr "boardquest/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	opts     *Options

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(opts *Options) *Handlers {
	return &Handlers{
		LobbyMgr: lobby.NewManager(opts.Bots),
		opts:     opts,
		hubs:     make(map[string]*Hub),
	}
}

// CreateGame opens a lobby with its hub and returns the game ID.
func (h *Handlers) CreateGame() string {
	gameID := h.LobbyMgr.Create()
	hub := NewHub(gameID, h.LobbyMgr.Get(gameID), h.opts)

	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()

	go hub.Run()
	log.Printf("game %s created", gameID)
	return gameID
}

func (h *Handlers) hub(gameID string) (*Hub, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hub, ok := h.hubs[gameID]
	return hub, ok
}

// Close stops every hub.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, hub := range h.hubs {
		hub.Stop()
		h.LobbyMgr.Remove(id)
		delete(h.hubs, id)
	}
}

// HandleCreateGame creates a new game lobby and sends the browser to it.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.CreateGame()
	http.Redirect(w, r, fmt.Sprintf("/play.html?game=%s", gameID), http.StatusSeeOther)
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	if _, ok := h.hub(gameID); !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	png, err := qr.JoinPNG(r.Host, gameID)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "spectator" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.hub(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	ct := ClientPlayer
	if clientType == "spectator" || playerID == "" {
		ct = ClientSpectator
	}

	client := NewClient(hub, conn, playerID, ct)
	select {
	case hub.register <- client:
	case <-hub.quit:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(engine.NewPlayerID()))
}
