package models

import "sync"

// Game holds all truth for one room. Roster order is fixed at creation
// and drives presidential rotation. All state-changing access must go
// through the game's lock; the engine itself never locks.
type Game struct {
	ID                    string
	HostName              string
	Players               []*Player
	PolicyDeck            []Policy // index 0 = top of the deck
	DiscardPile           []Policy
	LiberalPolicies       int
	FascistPolicies       int
	ElectionTracker       int
	CurrentPhase          Phase
	CurrentPresidentIndex int // interpreted modulo the current alive-player count
	LastPresidentName     string
	LastChancellorName    string
	NominatedChancellor   string
	Votes                 map[string]bool // player name -> vote
	PresidentHand         []Policy
	ChancellorHand        []Policy
	AvailableActions      []ActionKind // executive powers offered this round
	ActionTarget          string
	Winner                string // "Liberal" or "Fascist", set at most once
	Started               bool
	Rules                 Rules
	ReadyStatus           map[string]bool
	ChatHistory           []ChatMessage
	CustomCardImageURL    string
	CustomBoardImageURL   string

	mu sync.RWMutex
}

// NewGame creates an empty game in the Lobby phase.
func NewGame(id string) *Game {
	return &Game{
		ID:           id,
		CurrentPhase: PhaseLobby,
		Votes:        make(map[string]bool),
		ReadyStatus:  make(map[string]bool),
	}
}

// Lock acquires the game's write lock.
func (g *Game) Lock() {
	g.mu.Lock()
}

// Unlock releases the game's write lock.
func (g *Game) Unlock() {
	g.mu.Unlock()
}

// RLock acquires the game's read lock.
func (g *Game) RLock() {
	g.mu.RLock()
}

// RUnlock releases the game's read lock.
func (g *Game) RUnlock() {
	g.mu.RUnlock()
}

// PlayerByName returns the roster entry for name, or nil.
func (g *Game) PlayerByName(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AlivePlayers returns the living players in roster order.
func (g *Game) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// CurrentPresident resolves the stored rotation index against the
// current alive-player view. The same index can point to a different
// player after an execution shrinks that view; this mirrors the
// original rotation behavior and is relied on by the engine.
func (g *Game) CurrentPresident() *Player {
	alive := g.AlivePlayers()
	if len(alive) == 0 {
		return nil
	}
	return alive[g.CurrentPresidentIndex%len(alive)]
}

// AppendChat adds a message to the bounded chat log, evicting the
// oldest entry once ChatLimit is reached.
func (g *Game) AppendChat(msg ChatMessage) {
	g.ChatHistory = append(g.ChatHistory, msg)
	if len(g.ChatHistory) > ChatLimit {
		g.ChatHistory = g.ChatHistory[1:]
	}
}
