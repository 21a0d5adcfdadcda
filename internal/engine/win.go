package engine

import "secrethitler/internal/models"

// evaluateWin checks the win conditions in a fixed order and, on the
// first hit, sets the winner and moves the game to Game Over. The
// winner is monotonic: once set it is never re-evaluated.
func evaluateWin(g *models.Game) {
	if g.Winner != "" {
		return
	}

	if g.LiberalPolicies >= 5 {
		declareWinner(g, "Liberal")
		return
	}

	if g.FascistPolicies >= 6 {
		declareWinner(g, "Fascist")
		return
	}

	// Hitler confirmed as chancellor with three or more Fascist
	// policies on the board. Only the currently flagged chancellor
	// counts, i.e. the most recent successful election.
	if g.FascistPolicies >= 3 {
		chancellor := g.PlayerByName(g.NominatedChancellor)
		if chancellor != nil && chancellor.Role == models.RoleHitler && chancellor.IsChancellor {
			declareWinner(g, "Fascist")
			return
		}
	}

	for _, p := range g.Players {
		if p.Role == models.RoleHitler && p.Executed {
			declareWinner(g, "Liberal")
			return
		}
	}
}

func declareWinner(g *models.Game, winner string) {
	g.Winner = winner
	g.CurrentPhase = models.PhaseGameOver
}
