package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"secrethitler/internal/engine"
	"secrethitler/internal/models"
	"secrethitler/internal/view"
)

const maxChatLength = 500

// ServeWS upgrades GET /ws/{gameID}/{playerName} and runs the session
// until the connection drops.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := strings.ToUpper(r.PathValue("gameID"))
	playerName := r.PathValue("playerName")
	if playerName == "" {
		http.Error(w, "player name required", http.StatusBadRequest)
		return
	}

	g, ok := h.store.Get(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "game", gameID, "player", playerName, "error", err)
		return
	}

	c := newClient(h, conn, gameID, playerName)
	h.register(c)
	go c.writePump()

	h.log.Infow("player connected", "game", gameID, "player", playerName)
	h.sendInitialState(c, g)
	h.readLoop(c, g)
}

// sendInitialState delivers the connecting player's current view, plus
// any private reveal they would otherwise have missed: a sitting
// president reconnecting mid Executive phase gets their pending
// investigation result or policy peek again.
func (h *Hub) sendInitialState(c *client, g *models.Game) {
	type pending struct {
		typ     string
		payload any
	}
	var extras []pending

	g.Lock()
	state := view.Project(g, c.playerName)
	if g.CurrentPhase == models.PhaseExecutive {
		if president := g.CurrentPresident(); president != nil && president.Name == c.playerName {
			if g.ActionTarget != "" {
				if result, err := engine.InvestigationResult(g, g.ActionTarget); err == nil {
					extras = append(extras, pending{"investigation_result", map[string]string{
						"target": g.ActionTarget,
						"result": result,
					}})
				}
			}
			for _, kind := range g.AvailableActions {
				if kind == models.ActionPolicyPeek {
					if cards, err := engine.PolicyPeek(g); err == nil {
						extras = append(extras, pending{"policy_peek", map[string]any{
							"policies": cards,
						}})
					}
				}
			}
		}
	}
	g.Unlock()

	h.sendTo(c, "game_state", state)
	for _, p := range extras {
		h.sendTo(c, p.typ, p.payload)
	}
}

// readLoop pumps inbound messages until the connection fails, then
// tears the session down. A player dropping out of an unstarted lobby
// frees their roster slot.
func (h *Hub) readLoop(c *client, g *models.Game) {
	defer func() {
		current := h.unregister(c)
		c.conn.Close()
		// A session replaced by a reconnect is not a departure; only
		// the current session's loss frees a lobby seat.
		if current {
			h.handleDisconnect(c, g)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocketUnexpected(err) {
				h.log.Warnw("websocket read error", "game", c.gameID, "player", c.playerName, "error", err)
			}
			return
		}
		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.sendError(c, "malformed message")
			continue
		}
		h.dispatch(c, g, msg)
	}
}

func (h *Hub) handleDisconnect(c *client, g *models.Game) {
	h.log.Infow("player disconnected", "game", c.gameID, "player", c.playerName)

	g.Lock()
	removed := engine.RemovePlayer(g, c.playerName)
	if removed {
		if g.HostName == c.playerName && len(g.Players) > 0 {
			g.HostName = g.Players[0].Name
		}
		if len(g.Players) == 0 {
			g.Unlock()
			h.store.Delete(g.ID)
			h.log.Infow("empty lobby removed", "game", g.ID)
			return
		}
	}
	g.Unlock()

	if removed {
		h.Broadcast(g.ID, "player_disconnected", map[string]string{
			"player_name": c.playerName,
		})
		h.BroadcastState(g)
	}
}

func (h *Hub) dispatch(c *client, g *models.Game, msg inbound) {
	switch msg.Action {
	case "join_game":
		h.handleJoin(c, g)
	case "start_game":
		h.handleStart(c, g)
	case "nominate_chancellor":
		h.handleNominate(c, g, msg.Payload)
	case "cast_vote":
		h.handleVote(c, g, msg.Payload)
	case "president_discard":
		h.handleDiscard(c, g, msg.Payload)
	case "chancellor_enact":
		h.handleEnact(c, g, msg.Payload)
	case "executive_action":
		h.handleExecutiveAction(c, g, msg.Payload)
	case "get_game_state":
		h.handleGetState(c, g)
	case "ready":
		h.handleReady(c, g)
	case "chat_message":
		h.handleChat(c, g, msg.Payload)
	case "update_rules":
		h.handleUpdateRules(c, g, msg.Payload)
	default:
		h.sendError(c, "unknown action: "+msg.Action)
	}
}

func (h *Hub) handleJoin(c *client, g *models.Game) {
	g.Lock()
	err := engine.AddPlayer(g, c.playerName, false)
	total := len(g.Players)
	g.Unlock()

	if errors.Is(err, engine.ErrNameTaken) {
		// Reconnect of an existing roster entry; resend state only.
		h.sendInitialState(c, g)
		return
	}
	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.log.Infow("player joined", "game", g.ID, "player", c.playerName, "total", total)
	h.Broadcast(g.ID, "player_joined", map[string]any{
		"player_name":   c.playerName,
		"total_players": total,
	})
	h.BroadcastState(g)
}

func (h *Hub) handleStart(c *client, g *models.Game) {
	g.Lock()
	var err error
	if g.HostName != "" && c.playerName != g.HostName {
		err = engine.ErrInvalidActor
	} else {
		err = engine.Start(g)
	}
	playerCount := len(g.Players)
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.log.Infow("game started", "game", g.ID, "players", playerCount)
	h.Broadcast(g.ID, "game_started", map[string]any{
		"player_count": playerCount,
	})
	h.BroadcastState(g)
	h.kick(g)
}

func (h *Hub) handleNominate(c *client, g *models.Game, raw json.RawMessage) {
	var p struct {
		ChancellorName string `json:"chancellor_name"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "malformed payload")
		return
	}

	g.Lock()
	err := engine.Nominate(g, c.playerName, p.ChancellorName)
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.Broadcast(g.ID, "chancellor_nominated", map[string]string{
		"president":       c.playerName,
		"chancellor_name": p.ChancellorName,
	})
	h.BroadcastState(g)
	h.kick(g)
}

func (h *Hub) handleVote(c *client, g *models.Game, raw json.RawMessage) {
	var p struct {
		Vote bool `json:"vote"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "malformed payload")
		return
	}

	g.Lock()
	resolved, err := engine.CastVote(g, c.playerName, p.Vote)
	var resolution map[string]any
	if err == nil && resolved {
		votes := make(map[string]bool, len(g.Votes))
		ja := 0
		for name, v := range g.Votes {
			votes[name] = v
			if v {
				ja++
			}
		}
		resolution = map[string]any{
			"votes":            votes,
			"passed":           ja*2 > len(g.AlivePlayers()),
			"election_tracker": g.ElectionTracker,
			"phase":            g.CurrentPhase,
		}
	}
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.Broadcast(g.ID, "vote_cast", map[string]string{
		"player_name": c.playerName,
	})
	if resolution != nil {
		h.Broadcast(g.ID, "election_resolved", resolution)
	}
	h.BroadcastState(g)
	h.kick(g)
}

func (h *Hub) handleDiscard(c *client, g *models.Game, raw json.RawMessage) {
	var p struct {
		PolicyIndex int `json:"policy_index"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "malformed payload")
		return
	}

	g.Lock()
	err := engine.PresidentDiscard(g, c.playerName, p.PolicyIndex)
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.BroadcastState(g)
	h.kick(g)
}

func (h *Hub) handleEnact(c *client, g *models.Game, raw json.RawMessage) {
	var p struct {
		PolicyIndex int `json:"policy_index"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "malformed payload")
		return
	}

	g.Lock()
	enacted, err := engine.ChancellorEnact(g, c.playerName, p.PolicyIndex)
	var (
		enactedEvent  map[string]any
		chatEntry     *models.ChatMessage
		presidentName string
		offered       []models.ActionKind
		peek          []models.PolicyType
	)
	if err == nil {
		label := "Liberal"
		if enacted == models.PolicyFascist {
			label = "Fascist"
		}
		entry := models.NewChatMessage("System", "A "+label+" policy has been enacted.", models.SystemMessage)
		g.AppendChat(entry)
		chatEntry = &entry

		enactedEvent = map[string]any{
			"policy_type":      enacted,
			"liberal_policies": g.LiberalPolicies,
			"fascist_policies": g.FascistPolicies,
			"phase":            g.CurrentPhase,
			"winner":           g.Winner,
		}

		if g.CurrentPhase == models.PhaseExecutive {
			if president := g.CurrentPresident(); president != nil {
				presidentName = president.Name
				offered = append([]models.ActionKind(nil), g.AvailableActions...)
				for _, kind := range offered {
					if kind == models.ActionPolicyPeek {
						if cards, peekErr := engine.PolicyPeek(g); peekErr == nil {
							peek = cards
						}
					}
				}
			}
		}
	}
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.Broadcast(g.ID, "policy_enacted", enactedEvent)
	if chatEntry != nil {
		h.Broadcast(g.ID, "chat_message", chatEntry)
	}
	if presidentName != "" {
		h.SendToPlayer(g.ID, presidentName, "executive_action_available", map[string]any{
			"available_actions": offered,
		})
		if peek != nil {
			h.SendToPlayer(g.ID, presidentName, "policy_peek", map[string]any{
				"policies": peek,
			})
		}
	}
	h.BroadcastState(g)
	h.kick(g)
}

func (h *Hub) handleExecutiveAction(c *client, g *models.Game, raw json.RawMessage) {
	var p struct {
		ActionKind string `json:"action_kind"`
		Target     string `json:"target"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "malformed payload")
		return
	}
	kind := models.ActionKind(p.ActionKind)

	g.Lock()
	err := engine.ExecuteAction(g, c.playerName, kind, p.Target)
	var (
		result string
		phase  models.Phase
	)
	if err == nil {
		phase = g.CurrentPhase
		if kind == models.ActionInvestigate {
			result, _ = engine.InvestigationResult(g, p.Target)
		}
	}
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.log.Infow("executive action", "game", g.ID, "president", c.playerName, "kind", kind, "target", p.Target)
	if kind == models.ActionInvestigate {
		h.sendTo(c, "investigation_result", map[string]string{
			"target": p.Target,
			"result": result,
		})
	}
	h.Broadcast(g.ID, "executive_action_executed", map[string]any{
		"action_kind": kind,
		"target":      p.Target,
		"phase":       phase,
	})
	h.BroadcastState(g)
	h.kick(g)
}

func (h *Hub) handleGetState(c *client, g *models.Game) {
	g.RLock()
	state := view.Project(g, c.playerName)
	g.RUnlock()
	h.sendTo(c, "game_state", state)
}

func (h *Hub) handleReady(c *client, g *models.Game) {
	g.Lock()
	open, err := engine.AcknowledgeReady(g, c.playerName)
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.Broadcast(g.ID, "player_ready", map[string]any{
		"player_name": c.playerName,
		"all_ready":   open,
	})
	if open {
		h.Broadcast(g.ID, "all_players_ready", struct{}{})
		h.BroadcastState(g)
	}
}

func (h *Hub) handleChat(c *client, g *models.Game, raw json.RawMessage) {
	var p struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "malformed payload")
		return
	}
	text := strings.TrimSpace(p.Message)
	if text == "" {
		return
	}
	if len(text) > maxChatLength {
		text = text[:maxChatLength]
	}

	entry := models.NewChatMessage(c.playerName, text, models.PlayerMessage)
	g.Lock()
	g.AppendChat(entry)
	g.Unlock()

	h.Broadcast(g.ID, "chat_message", entry)
}

func (h *Hub) handleUpdateRules(c *client, g *models.Game, raw json.RawMessage) {
	var rules models.Rules
	if err := json.Unmarshal(raw, &rules); err != nil {
		h.sendError(c, "malformed payload")
		return
	}

	g.Lock()
	var err error
	switch {
	case g.HostName != "" && c.playerName != g.HostName:
		err = engine.ErrInvalidActor
	case g.CurrentPhase != models.PhaseLobby:
		err = engine.ErrInvalidPhase
	default:
		g.Rules = rules
	}
	g.Unlock()

	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.Broadcast(g.ID, "rules_updated", map[string]any{
		"rules": rules,
	})
	h.BroadcastState(g)
}

func (h *Hub) sendError(c *client, message string) {
	h.sendTo(c, "error", map[string]string{"message": message})
}

// websocketUnexpected reports whether a read error is anything other
// than a normal close.
func websocketUnexpected(err error) bool {
	return websocket.IsUnexpectedCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}

// errorMessage maps engine sentinels to client-facing text.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidPhase):
		return "that action is not allowed in the current phase"
	case errors.Is(err, engine.ErrInvalidActor):
		return "you are not allowed to perform that action"
	case errors.Is(err, engine.ErrInvalidTarget):
		return "invalid target"
	case errors.Is(err, engine.ErrInvalidIndex):
		return "invalid policy index"
	case errors.Is(err, engine.ErrInvalidAction):
		return "that executive action is not available"
	case errors.Is(err, engine.ErrGameFull):
		return "the game is full"
	case errors.Is(err, engine.ErrNameTaken):
		return "that name is already taken"
	case errors.Is(err, engine.ErrRosterSize):
		return "the game needs between 5 and 10 players"
	default:
		return err.Error()
	}
}
