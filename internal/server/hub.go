package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"boardquest/internal/engine"
	"boardquest/internal/engine/effects"
	"boardquest/internal/lobby"
	"boardquest/internal/protocol"
)

// Hub manages WebSocket connections and the game for one session. Run owns
// the session; the game itself plays on its own goroutine and reaches the
// hub only through the outbound channel.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	opts       *Options
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	outbound   chan outbound
	quit       chan struct{}
	stopOnce   sync.Once

	// owned by Run
	gateway  *RemoteGateway
	snapshot *protocol.Envelope
	cancel   context.CancelFunc
	done     chan struct{}
}

// outbound is a message from the game goroutine. An empty playerID
// broadcasts.
type outbound struct {
	playerID string
	env      protocol.Envelope
}

func NewHub(gameID string, lob *lobby.Lobby, opts *Options) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		opts:       opts,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		outbound:   make(chan outbound, 256),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer func() {
		if h.cancel != nil {
			h.cancel()
		}
	}()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			h.catchUp(client)

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			seated := ok && client.Type == ClientPlayer && !h.connectedLocked(client.PlayerID)
			h.mu.Unlock()
			// a closed tab frees the seat until the game starts
			if seated && h.lobby.Leave(client.PlayerID) {
				h.sendLobbyUpdate()
			}

		case msg := <-h.incoming:
			// the sender may have unregistered while this was queued
			h.mu.Lock()
			live := h.clients[msg.Client]
			h.mu.Unlock()
			if !live {
				continue
			}
			h.handleMessage(msg)

		case out := <-h.outbound:
			if out.env.Type == protocol.MsgGameState {
				env := out.env
				h.snapshot = &env
			}
			if out.playerID == "" {
				h.broadcastAll(out.env)
			} else {
				h.sendToPlayer(out.playerID, out.env)
			}

		case <-h.quit:
			return
		}
	}
}

// Stop ends the session and its game.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// connectedLocked reports whether any client still speaks for playerID.
// h.mu must be held.
func (h *Hub) connectedLocked(playerID string) bool {
	for c := range h.clients {
		if c.Type == ClientPlayer && c.PlayerID == playerID {
			return true
		}
	}
	return false
}

// catchUp brings a (re)connecting client to the current state and replays
// the prompt it still owes an answer to.
func (h *Hub) catchUp(client *Client) {
	if h.snapshot != nil {
		client.SendEnvelope(*h.snapshot)
	}
	if h.gateway == nil || client.Type != ClientPlayer || client.PlayerID != h.gateway.playerID {
		return
	}
	if env, ok := h.gateway.Pending(); ok {
		client.SendEnvelope(env)
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgConfigure:
		h.handleConfigure(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgAnswer:
		h.handleAnswer(msg)
	default:
		h.sendError(msg.Client, "unknown message type "+msg.Envelope.Type)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	if join.PlayerID == "" {
		join.PlayerID = msg.Client.PlayerID
	}
	if join.PlayerID == "" {
		h.sendError(msg.Client, "missing player id")
		return
	}
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	msg.Client.PlayerID = join.PlayerID
	msg.Client.Type = ClientPlayer
	h.sendLobbyUpdate()
	h.catchUp(msg.Client)
}

func (h *Hub) handleConfigure(msg IncomingMessage) {
	var cfg protocol.ConfigureMsg
	if err := msg.Envelope.Decode(&cfg); err != nil {
		h.sendError(msg.Client, "invalid configure message")
		return
	}
	if err := h.lobby.Configure(cfg.Bots, cfg.Difficulty); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	human, _, difficulty, _ := h.lobby.Snapshot()
	if human == nil || human.ID != msg.Client.PlayerID {
		h.sendError(msg.Client, "only the seated player can start the game")
		return
	}
	players, err := h.lobby.Seating()
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	cfg := h.opts.Game
	cfg.Board = h.opts.Content.Board
	cfg.Bots.Difficulty = difficulty
	rng := engine.NewRand(h.opts.Seed)

	gateway := NewRemoteGateway(human.ID, h.send)
	game, err := engine.NewGame(players, cfg, engine.Deps{
		Decks:   h.opts.Content.Decks(rng),
		Effects: effects.NewResolver(),
		Gateway: gateway,
		Rand:    rng,
		Logger:  log.Default(),
		Sink:    h.sink,
	})
	if err != nil {
		log.Printf("game %s: %v", h.gameID, err)
		h.sendError(msg.Client, err.Error())
		return
	}
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.gateway = gateway

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.sendLobbyUpdate()
	go func() {
		defer close(h.done)
		if err := game.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("game %s stopped: %v", h.gameID, err)
		}
	}()
}

func (h *Hub) handleAnswer(msg IncomingMessage) {
	if h.gateway == nil {
		h.sendError(msg.Client, "game not started")
		return
	}
	var ans protocol.AnswerMsg
	if err := msg.Envelope.Decode(&ans); err != nil {
		h.sendError(msg.Client, "invalid answer message")
		return
	}
	// Stale and repeated answers are dropped silently.
	h.gateway.Answer(msg.Client.PlayerID, ans)
}

// sink receives engine events on the game goroutine.
func (h *Hub) sink(ev engine.Event) {
	if ev.Type == engine.EventStateSync {
		h.send("", protocol.MustEnvelope(protocol.MsgGameState, ev.Data))
		return
	}
	h.send("", protocol.MustEnvelope(protocol.MsgEvent, ev))
}

// send queues env for the hub. It gives up once the hub has stopped.
func (h *Hub) send(playerID string, env protocol.Envelope) {
	select {
	case h.outbound <- outbound{playerID: playerID, env: env}:
	case <-h.quit:
	}
}

func (h *Hub) sendLobbyUpdate() {
	human, bots, difficulty, started := h.lobby.Snapshot()
	update := protocol.LobbyUpdate{
		GameID:     h.gameID,
		Players:    []protocol.LobbyPlayer{},
		Bots:       bots,
		MaxBots:    h.lobby.MaxBots,
		Difficulty: difficulty.String(),
		Started:    started,
		CanStart:   h.lobby.CanStart(),
	}
	if human != nil {
		update.Players = append(update.Players, protocol.LobbyPlayer{ID: human.ID, Name: human.Name})
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, update))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("client %s buffer full", client.PlayerID)
		}
	}
}

func (h *Hub) sendToPlayer(playerID string, env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.Type == ClientPlayer && client.PlayerID == playerID {
			client.SendEnvelope(env)
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}
