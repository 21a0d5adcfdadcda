package engine

import "secrethitler/internal/models"

// AcknowledgeReady records a player's acknowledgement of the current
// transition. When every living player has acknowledged, the set is
// cleared and the gate reports open exactly once. The gate paces
// round-end UI only; it never performs phase transitions itself.
func AcknowledgeReady(g *models.Game, playerName string) (open bool, err error) {
	if g.PlayerByName(playerName) == nil {
		return false, ErrInvalidTarget
	}
	g.ReadyStatus[playerName] = true
	if !allReady(g) {
		return false, nil
	}
	g.ReadyStatus = make(map[string]bool)
	return true, nil
}

func allReady(g *models.Game) bool {
	for _, p := range g.AlivePlayers() {
		if !g.ReadyStatus[p.Name] {
			return false
		}
	}
	return true
}
