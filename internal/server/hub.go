package server

import (
	"encoding/json"
	"math/rand/v2"
	"sync"
	"time"

	"governor/internal/engine"
	"governor/internal/lobby"
	"governor/internal/log"
	"governor/internal/protocol"
)

// Hub manages WebSocket connections and game state for one game room.
// All game mutation happens on the Run goroutine.
type Hub struct {
	mu       sync.Mutex // guards clients
	gameMu   sync.RWMutex
	gameID   string
	lobby    *lobby.Lobby
	rules    engine.Rules
	botDelay time.Duration

	game       *match
	botPending bool

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	botTick    chan struct{}
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewHub(gameID string, lob *lobby.Lobby, rules engine.Rules, botDelay time.Duration) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		rules:      rules,
		botDelay:   botDelay,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		botTick:    make(chan struct{}),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Debug("game %s: %s connected", h.gameID, client.PlayerID())
			h.sendLobbyUpdate()
			h.sendStateToClient(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Debug("game %s: %s disconnected", h.gameID, client.PlayerID())

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.botTick:
			h.botPending = false
			h.stepBots()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				client.conn.Close()
			}
			h.clients = map[*Client]bool{}
			h.mu.Unlock()
			log.Info("game %s: closed", h.gameID)
			return
		}
	}
}

// Stop ends the Run loop and drops every connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// attach registers a client with the room. It reports false once the room
// is closed.
func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// enqueue hands a message to the Run loop, or reports false when the room
// is closed.
func (h *Hub) enqueue(msg IncomingMessage) bool {
	select {
	case <-h.quit:
		return false
	default:
	}
	select {
	case h.incoming <- msg:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgAddBot:
		h.handleAddBot(msg)
	case protocol.MsgRemoveBot:
		h.handleRemoveBot(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgUndo:
		h.handleUndo(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, "invalid join message", "")
		return
	}
	// The client bound its seat when it admitted the message.
	if err := h.lobby.Join(msg.Client.PlayerID(), join.Name); err != nil {
		h.sendError(msg.Client, err.Error(), "")
		return
	}
	h.sendLobbyUpdate()
	h.sendStateToClient(msg.Client)
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, "invalid ready message", "")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID(), ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleAddBot(msg IncomingMessage) {
	var add protocol.AddBotMsg
	if err := msg.Envelope.Decode(&add); err != nil {
		h.sendError(msg.Client, "invalid add_bot message", "")
		return
	}
	if add.Policy == "" {
		add.Policy = "greedy"
	}
	id, err := h.lobby.AddBot(add.Policy)
	if err != nil {
		h.sendError(msg.Client, err.Error(), "")
		return
	}
	log.Info("game %s: added %s bot %s", h.gameID, add.Policy, id)
	h.sendLobbyUpdate()
}

func (h *Hub) handleRemoveBot(msg IncomingMessage) {
	var rm protocol.RemoveBotMsg
	if err := msg.Envelope.Decode(&rm); err != nil {
		h.sendError(msg.Client, "invalid remove_bot message", "")
		return
	}
	for _, p := range h.lobby.GetPlayers() {
		if p.ID == rm.PlayerID && p.IsBot() {
			h.lobby.Leave(p.ID)
		}
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if !h.lobby.CanStart() {
		h.sendError(msg.Client, "not all players ready", "")
		return
	}
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error(), "")
		return
	}

	lobbyPlayers := h.lobby.GetPlayers()
	seats := make([]protocol.LogPlayer, len(lobbyPlayers))
	for i, lp := range lobbyPlayers {
		seats[i] = protocol.LogPlayer{ID: lp.ID, Name: lp.Name, Bot: lp.Bot}
	}
	game, err := newMatch(seats, h.rules, rand.Uint64())
	if err != nil {
		log.Error("game %s: start failed: %v", h.gameID, err)
		h.sendError(msg.Client, err.Error(), "")
		return
	}
	h.gameMu.Lock()
	h.game = game
	h.gameMu.Unlock()
	log.Info("game %s: started with %d players, seed %d", h.gameID, len(seats), game.seed)

	h.sendLobbyUpdate()
	h.broadcastState()
	h.scheduleBots()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if !protocol.IsAction(msg.Envelope.Type) {
		h.sendError(msg.Client, "unknown message type "+msg.Envelope.Type, "")
		return
	}
	if h.game == nil {
		h.sendError(msg.Client, "game not started", "")
		return
	}
	if h.game.isBot(msg.Client.PlayerID()) {
		h.sendError(msg.Client, "that seat is played by a bot", "")
		return
	}
	action, err := protocol.DecodeAction(engine.ActionKind(msg.Envelope.Type), msg.Client.PlayerID(), msg.Envelope.Payload)
	if err != nil {
		h.sendError(msg.Client, err.Error(), "")
		return
	}
	h.applyAction(action, msg.Client)
}

func (h *Hub) handleUndo(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started", "")
		return
	}
	h.gameMu.Lock()
	err := h.game.undo(msg.Client.PlayerID())
	h.gameMu.Unlock()
	if err != nil {
		h.sendError(msg.Client, err.Error(), "")
		return
	}
	log.Info("game %s: %s took back an action", h.gameID, msg.Client.PlayerID())
	h.broadcastState()
	h.scheduleBots()
}

// applyAction runs one action through the engine and fans the result out.
// from is nil for bot and table actions.
func (h *Hub) applyAction(a engine.Action, from *Client) {
	h.gameMu.Lock()
	events, err := h.game.apply(a)
	state := h.game.state
	h.gameMu.Unlock()
	if err != nil {
		log.Warn("game %s: rejected %s by %q: %v", h.gameID, a.Kind(), a.Actor(), err)
		if from != nil {
			h.sendError(from, err.Error(), engine.ReasonCode(err))
		}
		return
	}

	for _, ev := range events {
		switch ev.Type {
		case engine.EventRoundEnd:
			log.Info("game %s: round %v over", h.gameID, ev.Data["round"])
		case engine.EventGameOver:
			log.Info("game %s: game over, winners %v", h.gameID, state.Winners)
		}
	}
	h.broadcastEvents(events)
	h.broadcastState()
	if state.Phase == engine.PhaseGameOver {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, engine.Result{
			Scores: state.Scores, Winners: state.Winners,
		}))
	}
	h.scheduleBots()
}

// scheduleBots arranges for the next bot or table action after the bot delay.
func (h *Hub) scheduleBots() {
	if h.game == nil || h.botPending || h.game.nextBotAction() == nil {
		return
	}
	h.botPending = true
	time.AfterFunc(h.botDelay, func() {
		select {
		case h.botTick <- struct{}{}:
		case <-h.quit:
		}
	})
}

func (h *Hub) stepBots() {
	if h.game == nil {
		return
	}
	if a := h.game.nextBotAction(); a != nil {
		h.applyAction(a, nil)
	}
}

// GameLog returns the room's action log, or false before the game starts.
func (h *Hub) GameLog() (protocol.GameLog, bool) {
	h.gameMu.RLock()
	defer h.gameMu.RUnlock()
	if h.game == nil {
		return protocol.GameLog{}, false
	}
	return h.game.log(h.gameID), true
}

// PublicView returns the table view, or false before the game starts.
func (h *Hub) PublicView() (engine.PublicViewData, bool) {
	h.gameMu.RLock()
	defer h.gameMu.RUnlock()
	if h.game == nil {
		return engine.PublicViewData{}, false
	}
	return h.game.state.PublicView(), true
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
	}
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	h.gameMu.RLock()
	state := h.game.state
	h.gameMu.RUnlock()

	if client.Type == ClientTV {
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, state.PublicView()))
	} else {
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgPlayerState, state.ViewFor(client.PlayerID())))
	}
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready, Bot: p.Bot}
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:     h.gameID,
		Players:    lps,
		Started:    h.lobby.IsStarted(),
		MinPlayers: h.lobby.MinPlayers,
		MaxPlayers: h.lobby.MaxPlayers,
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Error("broadcast marshal %s: %v", env.Type, err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Warn("client %s buffer full", client.PlayerID())
		}
	}
}

func (h *Hub) sendError(client *Client, message, code string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message, Code: code}))
}
