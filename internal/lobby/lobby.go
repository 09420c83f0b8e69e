package lobby

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrStarted = errors.New("game already started")
	ErrFull    = errors.New("lobby is full")
	ErrBotSeat = errors.New("seat belongs to a bot")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
	Bot   string // policy name, empty for humans
}

// IsBot reports whether the seat is played by the computer.
func (p PlayerInfo) IsBot() bool { return p.Bot != "" }

// Lobby represents a game lobby waiting for players.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// NewLobby creates a new lobby seating between min and max players.
func NewLobby(id string, minPlayers, maxPlayers int) *Lobby {
	return &Lobby{
		ID:         id,
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
	}
}

// Join adds a player to the lobby. Joining again with the same id renames the seat.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == "" {
		return fmt.Errorf("missing player id")
	}
	for _, p := range l.Players {
		if p.ID == id {
			if p.IsBot() {
				return ErrBotSeat
			}
			p.Name = name // allow reconnect with new name
			return nil
		}
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// AddBot seats a computer player, always ready, and returns its id.
func (l *Lobby) AddBot(policy string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return "", ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return "", ErrFull
	}
	bots := 0
	for _, p := range l.Players {
		if p.IsBot() {
			bots++
		}
	}
	id := "bot-" + uuid.NewString()[:8]
	l.Players = append(l.Players, &PlayerInfo{
		ID:    id,
		Name:  fmt.Sprintf("Bot %d", bots+1),
		Ready: true,
		Bot:   policy,
	})
	return id, nil
}

// Leave removes a player from the lobby. Seats are fixed once the game starts.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// CanStart returns true if enough players are seated and all are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started || len(l.Players) < l.MinPlayers {
		return false
	}
	for _, p := range l.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return fmt.Errorf("need at least %d players", l.MinPlayers)
	}
	l.Started = true
	return nil
}

// IsStarted reports whether the game has begun.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}
