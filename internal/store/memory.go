// Package store keeps the process-wide game registry. Games are held
// in memory only; the process is the source of truth for a room's
// lifetime.
package store

import (
	"sync"

	"secrethitler/internal/models"
)

// GameStore manages game storage keyed by game ID.
type GameStore struct {
	games map[string]*models.Game
	mu    sync.RWMutex
}

// NewGameStore creates an empty game store.
func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[string]*models.Game),
	}
}

// Get retrieves a game by ID.
func (s *GameStore) Get(id string) (*models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, exists := s.games[id]
	return game, exists
}

// Set stores a game.
func (s *GameStore) Set(id string, game *models.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = game
}

// Delete removes a game.
func (s *GameStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Exists checks if a game ID is taken.
func (s *GameStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.games[id]
	return exists
}

// All returns a snapshot of every stored game. The slice is fresh; the
// games themselves still require their own locks.
func (s *GameStore) All() []*models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out
}
