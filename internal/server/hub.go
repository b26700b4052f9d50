package server

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sabacc-game/internal/database"
	"sabacc-game/internal/game"
	"sabacc-game/internal/protocol"
)

// clientMessage pairs an incoming frame with the client that sent it.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

// Hub manages WebSocket connections and routes messages to tables. Each
// table gets a turn timer; when it fires the table applies its default
// action for whatever it was waiting on.
type Hub struct {
	clients       map[*Client]bool
	clientToTable map[*Client]string

	registry *game.Registry
	db       *database.Service

	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client

	clientMu sync.RWMutex
	timerMu  sync.Mutex
	timers   map[string]*time.Timer

	turnTimeout time.Duration
	log         logrus.FieldLogger
}

// NewHub creates a Hub backed by the given table registry. db may be nil to
// disable result persistence.
func NewHub(registry *game.Registry, db *database.Service, turnTimeout time.Duration, log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		clientToTable:  make(map[*Client]string),
		registry:       registry,
		db:             db,
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		timers:         make(map[string]*time.Timer),
		turnTimeout:    turnTimeout,
		log:            log,
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			h.log.WithField("client", client.ID).Info("client connected")
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.dropClient(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// dropClient removes a disconnected client, folds their hand if a game is
// running, and tears the table down once its last client is gone.
func (h *Hub) dropClient(client *Client) {
	h.clientMu.Lock()
	code, seated := h.clientToTable[client]
	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		delete(h.clientToTable, client)
		close(client.send)
		h.log.WithFields(logrus.Fields{"client": client.ID, "name": client.Name}).Info("client disconnected")
	}
	remaining := 0
	for _, c := range h.clientToTable {
		if c == code {
			remaining++
		}
	}
	h.clientMu.Unlock()

	if !seated {
		return
	}
	table, err := h.registry.Get(code)
	if err != nil {
		return
	}
	if err := table.Leave(client.ID); err == nil && table.Phase() == game.PhaseGameOver {
		h.stopTimer(code)
	}
	if remaining == 0 {
		h.stopTimer(code)
		h.registry.Remove(code)
		h.log.WithField("table", code).Info("table removed, no clients left")
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_table":
		h.handleCreateTable(client, msg)
	case "join_table":
		h.handleJoinTable(client, msg)
	case "start_game":
		h.handleStartGame(client)
	case "action":
		h.handleAction(client, msg)
	case "impostor_choice":
		h.handleImpostorChoice(client, msg)
	case "play_again":
		h.handlePlayAgain(client)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		h.log.WithFields(logrus.Fields{"type": msg.Type, "client": client.ID}).Warn("unknown message type")
		h.sendErrorToClient(client, "unknown_type", "Unknown message type.")
	}
}

func (h *Hub) handleCreateTable(client *Client, msg protocol.Message) {
	if h.clientTable(client) != "" {
		h.sendErrorToClient(client, "already_seated", "Already at a table.")
		return
	}

	var payload protocol.CreateTablePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "bad_payload", "Invalid create_table message format.")
		return
	}
	if payload.PlayerName == "" {
		h.sendErrorToClient(client, "bad_payload", "Name cannot be empty.")
		return
	}
	variant := game.Variant(payload.Variant)
	if !variant.Valid() {
		h.sendErrorToClient(client, "bad_payload", "Unknown variant.")
		return
	}

	cfg := game.DefaultConfig(variant)
	if len(payload.Config) > 0 {
		if err := json.Unmarshal(payload.Config, &cfg); err != nil {
			h.sendErrorToClient(client, "bad_payload", "Invalid table config.")
			return
		}
	}

	table, err := h.registry.CreateTable(variant, cfg, h.sendMessageToClient, h.persistResult)
	if err != nil {
		h.sendErrorToClient(client, "bad_config", err.Error())
		return
	}

	client.Name = payload.PlayerName
	if err := table.Join(client.ID, client.Name); err != nil {
		h.registry.Remove(table.Code())
		h.sendErrorToClient(client, "join_failed", err.Error())
		return
	}
	h.seatClient(client, table.Code())

	created, _ := protocol.NewMessage("table_created", protocol.TableCreatedPayload{
		TableCode: table.Code(),
		Variant:   string(table.Variant()),
	})
	h.sendMessageToClient(client.ID, created)
}

func (h *Hub) handleJoinTable(client *Client, msg protocol.Message) {
	if h.clientTable(client) != "" {
		h.sendErrorToClient(client, "already_seated", "Already at a table.")
		return
	}

	var payload protocol.JoinTablePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "bad_payload", "Invalid join_table message format.")
		return
	}
	if payload.PlayerName == "" {
		h.sendErrorToClient(client, "bad_payload", "Name cannot be empty.")
		return
	}

	code := strings.ToUpper(payload.TableCode)
	table, err := h.registry.Get(code)
	if err != nil {
		h.sendErrorToClient(client, "no_such_table", "Table code not found.")
		return
	}

	client.Name = payload.PlayerName
	if err := table.Join(client.ID, client.Name); err != nil {
		h.sendErrorToClient(client, "join_failed", err.Error())
		return
	}
	h.seatClient(client, code)
}

func (h *Hub) handleStartGame(client *Client) {
	table, ok := h.tableFor(client)
	if !ok {
		return
	}
	if err := table.Start(client.ID); err != nil {
		h.sendErrorToClient(client, "start_failed", err.Error())
		return
	}
	h.armTimer(table.Code())
}

func (h *Hub) handleAction(client *Client, msg protocol.Message) {
	table, ok := h.tableFor(client)
	if !ok {
		return
	}

	var payload protocol.ActionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "bad_payload", "Invalid action message format.")
		return
	}

	action := game.Action{
		Type:      game.ActionType(payload.Action),
		CardIndex: payload.CardIndex,
		Keep:      payload.Keep,
	}
	if err := table.SubmitAction(client.ID, action); err != nil {
		h.sendErrorToClient(client, "action_rejected", err.Error())
		return
	}
	h.rearmOrStop(table)
}

func (h *Hub) handleImpostorChoice(client *Client, msg protocol.Message) {
	table, ok := h.tableFor(client)
	if !ok {
		return
	}

	var payload protocol.ImpostorChoicePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "bad_payload", "Invalid impostor_choice message format.")
		return
	}
	if err := table.ResolveImpostorChoice(client.ID, payload.Value); err != nil {
		h.sendErrorToClient(client, "choice_rejected", err.Error())
		return
	}
	h.rearmOrStop(table)
}

func (h *Hub) handlePlayAgain(client *Client) {
	table, ok := h.tableFor(client)
	if !ok {
		return
	}
	if err := table.Reset(client.ID); err != nil {
		h.sendErrorToClient(client, "reset_rejected", err.Error())
		return
	}
	h.stopTimer(table.Code())
}

// --- turn timers ---

func (h *Hub) armTimer(code string) {
	h.timerMu.Lock()
	defer h.timerMu.Unlock()
	if t, ok := h.timers[code]; ok {
		t.Stop()
	}
	h.timers[code] = time.AfterFunc(h.turnTimeout, func() {
		h.onTurnTimeout(code)
	})
}

func (h *Hub) stopTimer(code string) {
	h.timerMu.Lock()
	defer h.timerMu.Unlock()
	if t, ok := h.timers[code]; ok {
		t.Stop()
		delete(h.timers, code)
	}
}

func (h *Hub) rearmOrStop(table *game.Table) {
	if table.Phase() == game.PhaseGameOver {
		h.stopTimer(table.Code())
		return
	}
	h.armTimer(table.Code())
}

func (h *Hub) onTurnTimeout(code string) {
	table, err := h.registry.Get(code)
	if err != nil {
		return
	}
	h.log.WithField("table", code).Info("turn timer fired")
	table.ForceTimeout()
	h.rearmOrStop(table)
}

// --- persistence ---

// persistResult stores a finished game off the game loop's goroutine.
func (h *Hub) persistResult(code string, variant game.Variant, results game.RankedResults) {
	if h.db == nil {
		return
	}

	var players, winners []string
	for _, s := range results.Standings {
		players = append(players, s.Player.Identity.Name)
	}
	for _, w := range results.Winners {
		winners = append(winners, w.Identity.Name)
	}
	standings, err := json.Marshal(standingLines(results))
	if err != nil {
		h.log.WithError(err).Error("could not encode standings")
		return
	}

	record := database.GameResult{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		TableCode: code,
		Variant:   string(variant),
		Players:   strings.Join(players, ","),
		Winners:   strings.Join(winners, ","),
		Standings: string(standings),
	}
	go func() {
		if err := h.db.Insert(record); err != nil {
			h.log.WithError(err).WithField("table", code).Error("could not store game result")
		}
	}()
}

type standingLine struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Total    *int   `json:"total,omitempty"`
	Junked   bool   `json:"junked,omitempty"`
}

func standingLines(results game.RankedResults) []standingLine {
	lines := make([]standingLine, len(results.Standings))
	for i, s := range results.Standings {
		lines[i] = standingLine{
			Name:     s.Player.Identity.Name,
			Category: s.Evaluation.Category,
			Total:    s.Evaluation.Total,
			Junked:   s.Junked,
		}
	}
	return lines
}

// --- client bookkeeping ---

func (h *Hub) seatClient(client *Client, code string) {
	h.clientMu.Lock()
	h.clientToTable[client] = code
	h.clientMu.Unlock()
}

func (h *Hub) clientTable(client *Client) string {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	return h.clientToTable[client]
}

func (h *Hub) tableFor(client *Client) (*game.Table, bool) {
	code := h.clientTable(client)
	if code == "" {
		h.sendErrorToClient(client, "not_seated", "You are not at a table.")
		return nil, false
	}
	table, err := h.registry.Get(code)
	if err != nil {
		h.sendErrorToClient(client, "no_such_table", "Table not found.")
		return nil, false
	}
	return table, true
}

// sendMessageToClient delivers a frame by client ID. The game layer uses
// this as its MessageSender callback.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	var target *Client
	for client := range h.clients {
		if client.ID == clientID {
			target = client
			break
		}
	}
	h.clientMu.RUnlock()

	if target == nil {
		return
	}
	select {
	case target.send <- message:
	default:
		// channel full or closed, assume the client is gone
		h.log.WithField("client", clientID).Warn("send channel blocked, dropping client")
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[target]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- target
			}
		}()
	}
}

func (h *Hub) sendErrorToClient(client *Client, code, message string) {
	msgBytes, err := protocol.NewMessage("error", protocol.ErrorPayload{Code: code, Message: message})
	if err != nil {
		h.log.WithError(err).Error("could not encode error message")
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}
