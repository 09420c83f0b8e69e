package lobby

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu         sync.Mutex
	lobbies    map[string]*Lobby
	minPlayers int
	maxPlayers int
}

func NewManager(minPlayers, maxPlayers int) *Manager {
	return &Manager{
		lobbies:    make(map[string]*Lobby),
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
	}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	m.lobbies[id] = NewLobby(id, m.minPlayers, m.maxPlayers)
	return id
}

// Get returns a lobby by ID, or nil.
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

// IDs lists the open lobbies, sorted.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.lobbies))
	for id := range m.lobbies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// generateID returns a short room code, easy to type from a phone.
func generateID() string {
	return uuid.NewString()[:8]
}
