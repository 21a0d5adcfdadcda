// Package view builds per-viewer redacted snapshots of a game. A
// projection is always computed fresh from canonical state, never
// cached or mutated in place, so no information can leak between
// viewers through a shared object. Callers must hold at least the
// game's read lock.
package view

import (
	"time"

	"secrethitler/internal/models"
)

// PlayerView is a player as a particular viewer is allowed to see them.
// Role is empty whenever the viewer may not know it.
type PlayerView struct {
	Name              string      `json:"name"`
	Username          string      `json:"username"`
	ProfilePictureURL string      `json:"profile_picture_url,omitempty"`
	SelectedEmotes    []string    `json:"selected_emotes,omitempty"`
	Role              models.Role `json:"role,omitempty"`
	IsAlive           bool        `json:"is_alive"`
	IsPresident       bool        `json:"is_president"`
	IsChancellor      bool        `json:"is_chancellor"`
	Vote              *bool       `json:"vote"`
	IsExecuted        bool        `json:"is_executed"`
	IsBot             bool        `json:"is_bot"`
}

// ChatView is a chat log entry on the wire.
type ChatView struct {
	Sender    string             `json:"sender"`
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Type      models.MessageType `json:"type"`
}

// GameView is the redacted snapshot delivered to one viewer. Hands are
// nil unless the viewer is the current president or chancellor nominee.
type GameView struct {
	GameID              string              `json:"game_id"`
	Players             []PlayerView        `json:"players"`
	LiberalPolicies     int                 `json:"liberal_policies"`
	FascistPolicies     int                 `json:"fascist_policies"`
	ElectionTracker     int                 `json:"election_tracker"`
	CurrentPhase        models.Phase        `json:"current_phase"`
	CurrentPresident    string              `json:"current_president,omitempty"`
	NominatedChancellor string              `json:"nominated_chancellor,omitempty"`
	LastPresidentName   string              `json:"last_president_name,omitempty"`
	LastChancellorName  string              `json:"last_chancellor_name,omitempty"`
	Votes               map[string]bool     `json:"votes"`
	PresidentHand       []models.PolicyType `json:"president_hand,omitempty"`
	ChancellorHand      []models.PolicyType `json:"chancellor_hand,omitempty"`
	AvailableActions    []models.ActionKind `json:"available_actions,omitempty"`
	ActionTarget        string              `json:"action_target,omitempty"`
	Winner              string              `json:"winner,omitempty"`
	Started             bool                `json:"game_started"`
	Rules               models.Rules        `json:"rules"`
	ReadyStatus         map[string]bool     `json:"ready_status"`
	ChatHistory         []ChatView          `json:"chat_history"`
	HostName            string              `json:"host_name,omitempty"`
	CustomCardImageURL  string              `json:"custom_card_image_url,omitempty"`
	CustomBoardImageURL string              `json:"custom_board_image_url,omitempty"`
}

// Project renders the game as seen by viewer. An empty viewer name
// produces the anonymous spectator view: no roles, no hands.
func Project(g *models.Game, viewer string) GameView {
	viewingPlayer := g.PlayerByName(viewer)
	fascistEyes := viewingPlayer != nil && viewingPlayer.Role == models.RoleFascist

	players := make([]PlayerView, 0, len(g.Players))
	for _, p := range g.Players {
		pv := PlayerView{
			Name:              p.Name,
			Username:          p.Username,
			ProfilePictureURL: p.ProfilePictureURL,
			SelectedEmotes:    p.SelectedEmotes,
			IsAlive:           p.Alive,
			IsPresident:       p.IsPresident,
			IsChancellor:      p.IsChancellor,
			Vote:              p.Vote,
			IsExecuted:        p.Executed,
			IsBot:             p.IsBot,
		}
		switch {
		case p.Name == viewer:
			// A viewer always sees their own role.
			pv.Role = p.Role
		case fascistEyes && (p.Role == models.RoleFascist || p.Role == models.RoleHitler):
			// Ordinary Fascists know each other and Hitler.
			// Hitler and Liberals see no one else's role.
			pv.Role = p.Role
		case g.Rules.ShowRoleOnDeath && p.Executed:
			pv.Role = p.Role
		}
		players = append(players, pv)
	}

	v := GameView{
		GameID:              g.ID,
		Players:             players,
		LiberalPolicies:     g.LiberalPolicies,
		FascistPolicies:     g.FascistPolicies,
		ElectionTracker:     g.ElectionTracker,
		CurrentPhase:        g.CurrentPhase,
		NominatedChancellor: g.NominatedChancellor,
		LastPresidentName:   g.LastPresidentName,
		LastChancellorName:  g.LastChancellorName,
		Votes:               copyVotes(g.Votes),
		AvailableActions:    append([]models.ActionKind(nil), g.AvailableActions...),
		ActionTarget:        g.ActionTarget,
		Winner:              g.Winner,
		Started:             g.Started,
		Rules:               g.Rules,
		ReadyStatus:         copyVotes(g.ReadyStatus),
		ChatHistory:         chatViews(g.ChatHistory),
		HostName:            g.HostName,
		CustomCardImageURL:  g.CustomCardImageURL,
		CustomBoardImageURL: g.CustomBoardImageURL,
	}

	president := g.CurrentPresident()
	if president != nil {
		v.CurrentPresident = president.Name
	}
	if president != nil && viewer == president.Name {
		v.PresidentHand = policyTypes(g.PresidentHand)
	}
	if g.NominatedChancellor != "" && viewer == g.NominatedChancellor {
		v.ChancellorHand = policyTypes(g.ChancellorHand)
	}
	return v
}

func policyTypes(hand []models.Policy) []models.PolicyType {
	if len(hand) == 0 {
		return nil
	}
	types := make([]models.PolicyType, len(hand))
	for i, p := range hand {
		types[i] = p.Type
	}
	return types
}

func copyVotes(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func chatViews(history []models.ChatMessage) []ChatView {
	out := make([]ChatView, len(history))
	for i, msg := range history {
		out[i] = ChatView{
			Sender:    msg.Sender,
			Message:   msg.Message,
			Timestamp: msg.Timestamp,
			Type:      msg.Type,
		}
	}
	return out
}
