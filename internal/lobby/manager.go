package lobby

import (
	"sync"

	"github.com/google/uuid"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	bots    int
}

// NewManager creates lobbies that start with the given number of bots.
func NewManager(bots int) *Manager {
	return &Manager{lobbies: make(map[string]*Lobby), bots: bots}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	l := NewLobby(id)
	if m.bots >= 0 && m.bots <= l.MaxBots {
		l.Bots = m.bots
	}
	m.lobbies[id] = l
	return id
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Remove forgets a lobby.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}

// generateID returns a short game code taken from a random UUID.
func generateID() string {
	return uuid.NewString()[:8]
}
