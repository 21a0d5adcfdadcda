// Package bot drives automated players. A Strategy produces candidate
// moves from game state; the Runner schedules them and applies them
// through the same engine operations a human-driven caller would use.
// The engine never special-cases bot identity.
package bot

import (
	"math/rand"

	"secrethitler/internal/models"
)

// Strategy decides moves for a bot player. Implementations are
// interchangeable; they may inspect game state freely but can only act
// through the public engine operations.
type Strategy interface {
	// Vote returns the bot's Ja/Nein ballot for the pending election.
	Vote(g *models.Game, self *models.Player) bool
	// Nominee returns a chancellor candidate name, or "" if none is legal.
	Nominee(g *models.Game, self *models.Player) string
	// DiscardIndex picks which of the president's three policies to discard.
	DiscardIndex(g *models.Game, self *models.Player) int
	// EnactIndex picks which of the chancellor's two policies to enact.
	EnactIndex(g *models.Game, self *models.Player) int
	// Action picks the executive action kind and target to perform.
	Action(g *models.Game, self *models.Player) (models.ActionKind, string)
}

// RoleAware plays toward its team: fascists push Fascist policies and
// vote cooperatively, liberals do the opposite.
type RoleAware struct{}

func (RoleAware) Vote(g *models.Game, self *models.Player) bool {
	if self.Role == models.RoleFascist || self.Role == models.RoleHitler {
		// Fascists mostly support proposed governments.
		return rand.Float64() > 0.2
	}
	return rand.Intn(2) == 0
}

func (RoleAware) Nominee(g *models.Game, self *models.Player) string {
	candidates := nomineeCandidates(g, self)
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rand.Intn(len(candidates))].Name
}

func (RoleAware) DiscardIndex(g *models.Game, self *models.Player) int {
	if self.Role == models.RoleFascist || self.Role == models.RoleHitler {
		if i := indexOfType(g.PresidentHand, models.PolicyLiberal); i >= 0 {
			return i
		}
	} else {
		if i := indexOfType(g.PresidentHand, models.PolicyFascist); i >= 0 {
			return i
		}
	}
	return rand.Intn(len(g.PresidentHand))
}

func (RoleAware) EnactIndex(g *models.Game, self *models.Player) int {
	want := models.PolicyLiberal
	if self.Role == models.RoleFascist || self.Role == models.RoleHitler {
		want = models.PolicyFascist
	}
	if i := indexOfType(g.ChancellorHand, want); i >= 0 {
		return i
	}
	return rand.Intn(len(g.ChancellorHand))
}

func (RoleAware) Action(g *models.Game, self *models.Player) (models.ActionKind, string) {
	kind := preferKind(g.AvailableActions, models.ActionExecution, models.ActionInvestigate)
	if kind == models.ActionPolicyPeek {
		return kind, ""
	}

	targets := otherLiving(g, self)
	if len(targets) == 0 {
		return kind, ""
	}
	if kind == models.ActionExecution && (self.Role == models.RoleFascist || self.Role == models.RoleHitler) {
		for _, t := range targets {
			if t.Role == models.RoleLiberal {
				return kind, t.Name
			}
		}
	}
	return kind, targets[rand.Intn(len(targets))].Name
}

// Random plays uniformly at random among legal moves; useful for tests
// and as a baseline opponent.
type Random struct{}

func (Random) Vote(g *models.Game, self *models.Player) bool {
	return rand.Intn(2) == 0
}

func (Random) Nominee(g *models.Game, self *models.Player) string {
	candidates := nomineeCandidates(g, self)
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rand.Intn(len(candidates))].Name
}

func (Random) DiscardIndex(g *models.Game, self *models.Player) int {
	return rand.Intn(len(g.PresidentHand))
}

func (Random) EnactIndex(g *models.Game, self *models.Player) int {
	return rand.Intn(len(g.ChancellorHand))
}

func (Random) Action(g *models.Game, self *models.Player) (models.ActionKind, string) {
	kind := g.AvailableActions[rand.Intn(len(g.AvailableActions))]
	if kind == models.ActionPolicyPeek {
		return kind, ""
	}
	targets := otherLiving(g, self)
	if len(targets) == 0 {
		return kind, ""
	}
	return kind, targets[rand.Intn(len(targets))].Name
}

func nomineeCandidates(g *models.Game, self *models.Player) []*models.Player {
	alive := g.AlivePlayers()
	var out []*models.Player
	for _, p := range alive {
		if p.Name == self.Name {
			continue
		}
		if p.Name == g.LastChancellorName && len(alive) > 5 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func otherLiving(g *models.Game, self *models.Player) []*models.Player {
	var out []*models.Player
	for _, p := range g.AlivePlayers() {
		if p.Name != self.Name {
			out = append(out, p)
		}
	}
	return out
}

func indexOfType(hand []models.Policy, want models.PolicyType) int {
	for i, p := range hand {
		if p.Type == want {
			return i
		}
	}
	return -1
}

// preferKind returns the first preferred kind that is offered, falling
// back to the first offered kind.
func preferKind(offered []models.ActionKind, prefs ...models.ActionKind) models.ActionKind {
	for _, pref := range prefs {
		for _, k := range offered {
			if k == pref {
				return k
			}
		}
	}
	return offered[0]
}
