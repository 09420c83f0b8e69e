package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"governor/internal/config"
	"governor/internal/lobby"
	"governor/internal/log"
	qr "governor/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager

	mu   sync.RWMutex
	hubs map[string]*Hub
	cfg  *config.Config
}

func NewHandlers(cfg *config.Config) *Handlers {
	rules := cfg.GameRules()
	return &Handlers{
		LobbyMgr: lobby.NewManager(rules.MinPlayers, rules.MaxPlayers),
		hubs:     make(map[string]*Hub),
		cfg:      cfg,
	}
}

func (h *Handlers) hub(gameID string) (*Hub, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	hub, ok := h.hubs[gameID]
	return hub, ok
}

func (h *Handlers) createGame() string {
	gameID := h.LobbyMgr.Create()
	delay := time.Duration(h.cfg.Server.BotDelayMs) * time.Millisecond
	hub := NewHub(gameID, h.LobbyMgr.Get(gameID), h.cfg.GameRules(), delay)
	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()
	log.Info("game %s: created", gameID)
	return gameID
}

// baseURL is where phones reach this server.
func (h *Handlers) baseURL(c *gin.Context) string {
	if h.cfg.Server.BaseURL != "" {
		return h.cfg.Server.BaseURL
	}
	return "http://" + c.Request.Host
}

// HandleCreateGame creates a lobby and sends the browser to the table screen.
func (h *Handlers) HandleCreateGame(c *gin.Context) {
	gameID := h.createGame()
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/tv.html?game=%s", gameID))
}

// HandleNewGame creates a lobby and returns its id and join link as JSON.
func (h *Handlers) HandleNewGame(c *gin.Context) {
	gameID := h.createGame()
	c.JSON(http.StatusCreated, gin.H{
		"game_id":  gameID,
		"join_url": qr.JoinURL(h.baseURL(c), gameID),
	})
}

// HandleListGames lists the rooms and whether they have started.
func (h *Handlers) HandleListGames(c *gin.Context) {
	type room struct {
		GameID  string `json:"game_id"`
		Players int    `json:"players"`
		Started bool   `json:"started"`
	}
	rooms := []room{}
	for _, id := range h.LobbyMgr.IDs() {
		l := h.LobbyMgr.Get(id)
		if l == nil {
			continue
		}
		rooms = append(rooms, room{GameID: id, Players: len(l.GetPlayers()), Started: l.IsStarted()})
	}
	c.JSON(http.StatusOK, rooms)
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(c *gin.Context) {
	gameID := c.Query("game")
	if gameID == "" {
		c.String(http.StatusBadRequest, "missing game parameter")
		return
	}
	png, err := qr.JoinPNG(h.baseURL(c), gameID)
	if err != nil {
		log.Error("qr for %s: %v", gameID, err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// HandleGameLog serves the action log of a started game as a JSON download.
func (h *Handlers) HandleGameLog(c *gin.Context) {
	hub, ok := h.hub(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	gl, ok := hub.GameLog()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not started"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="governor-%s.json"`, gl.GameID))
	c.JSON(http.StatusOK, gl)
}

// HandleGameState serves the public table view.
func (h *Handlers) HandleGameState(c *gin.Context) {
	hub, ok := h.hub(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	view, ok := hub.PublicView()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not started"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(c *gin.Context) {
	gameID := c.Query("game")
	playerID := c.Query("player")
	clientType := c.Query("type") // "tv" or "player"

	if gameID == "" {
		c.String(http.StatusBadRequest, "missing game parameter")
		return
	}
	hub, ok := h.hub(gameID)
	if !ok {
		c.String(http.StatusNotFound, "game not found")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("ws upgrade error: %v", err)
		return
	}

	ct := ClientPlayer
	if clientType == "tv" {
		ct = ClientTV
	}

	client := NewClient(hub, conn, playerID, ct)
	if !hub.attach(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandleCloseGame stops a room, disconnects its clients and forgets its lobby.
func (h *Handlers) HandleCloseGame(c *gin.Context) {
	gameID := c.Param("id")
	h.mu.Lock()
	hub, ok := h.hubs[gameID]
	delete(h.hubs, gameID)
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	hub.Stop()
	h.LobbyMgr.Remove(gameID)
	c.Status(http.StatusNoContent)
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(c *gin.Context) {
	c.String(http.StatusOK, GeneratePlayerID())
}

// Close stops every room.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, hub := range h.hubs {
		hub.Stop()
	}
}
