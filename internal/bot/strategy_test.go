package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrethitler/internal/models"
)

func strategyGame(roles ...models.Role) *models.Game {
	g := models.NewGame("BOT001")
	for i, r := range roles {
		p := models.NewPlayer(fmt.Sprintf("player%d", i+1))
		p.Role = r
		p.IsBot = true
		g.Players = append(g.Players, p)
	}
	g.CurrentPhase = models.PhaseElection
	g.Started = true
	return g
}

func TestRoleAwareDiscardPrefersOpposingPolicy(t *testing.T) {
	g := strategyGame(models.RoleFascist, models.RoleLiberal, models.RoleLiberal,
		models.RoleLiberal, models.RoleHitler)
	g.PresidentHand = []models.Policy{
		{Type: models.PolicyFascist},
		{Type: models.PolicyLiberal},
		{Type: models.PolicyFascist},
	}

	var s RoleAware
	assert.Equal(t, 1, s.DiscardIndex(g, g.PlayerByName("player1")),
		"a fascist discards the Liberal policy")
	assert.Equal(t, 0, s.DiscardIndex(g, g.PlayerByName("player2")),
		"a liberal discards the first Fascist policy")
}

func TestRoleAwareEnactPrefersOwnPolicy(t *testing.T) {
	g := strategyGame(models.RoleFascist, models.RoleLiberal, models.RoleLiberal,
		models.RoleLiberal, models.RoleHitler)
	g.ChancellorHand = []models.Policy{
		{Type: models.PolicyLiberal},
		{Type: models.PolicyFascist},
	}

	var s RoleAware
	assert.Equal(t, 1, s.EnactIndex(g, g.PlayerByName("player1")))
	assert.Equal(t, 1, s.EnactIndex(g, g.PlayerByName("player5")), "Hitler plays as a fascist")
	assert.Equal(t, 0, s.EnactIndex(g, g.PlayerByName("player3")))
}

func TestNomineeCandidatesRespectTermLimit(t *testing.T) {
	g := strategyGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleLiberal, models.RoleFascist, models.RoleHitler)
	g.LastChancellorName = "player2"
	self := g.PlayerByName("player1")

	for range 20 {
		var s RoleAware
		nominee := s.Nominee(g, self)
		require.NotEmpty(t, nominee)
		assert.NotEqual(t, "player1", nominee, "never self")
		assert.NotEqual(t, "player2", nominee, "never the term-limited chancellor with six alive")
	}

	// The limit lifts at five or fewer alive.
	g.PlayerByName("player6").Alive = false
	seen := map[string]bool{}
	for range 100 {
		var s RoleAware
		seen[s.Nominee(g, self)] = true
	}
	assert.True(t, seen["player2"], "the previous chancellor is eligible again at five alive")
}

func TestRoleAwareActionPrefersExecution(t *testing.T) {
	g := strategyGame(models.RoleFascist, models.RoleLiberal, models.RoleLiberal,
		models.RoleLiberal, models.RoleHitler)
	g.CurrentPhase = models.PhaseExecutive
	g.AvailableActions = []models.ActionKind{
		models.ActionInvestigate, models.ActionSpecialElection, models.ActionExecution,
	}
	self := g.PlayerByName("player1")

	var s RoleAware
	kind, target := s.Action(g, self)
	assert.Equal(t, models.ActionExecution, kind)
	require.NotEmpty(t, target)
	assert.Equal(t, models.RoleLiberal, g.PlayerByName(target).Role,
		"a fascist president executes a liberal")
}

func TestRoleAwareActionPeekHasNoTarget(t *testing.T) {
	g := strategyGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	g.CurrentPhase = models.PhaseExecutive
	g.AvailableActions = []models.ActionKind{models.ActionPolicyPeek}

	var s RoleAware
	kind, target := s.Action(g, g.PlayerByName("player1"))
	assert.Equal(t, models.ActionPolicyPeek, kind)
	assert.Empty(t, target)
}

func TestRandomMovesAreLegal(t *testing.T) {
	g := strategyGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	g.PresidentHand = []models.Policy{
		{Type: models.PolicyFascist},
		{Type: models.PolicyLiberal},
		{Type: models.PolicyFascist},
	}
	g.ChancellorHand = []models.Policy{
		{Type: models.PolicyFascist},
		{Type: models.PolicyLiberal},
	}
	self := g.PlayerByName("player1")

	var s Random
	for range 50 {
		assert.Contains(t, []int{0, 1, 2}, s.DiscardIndex(g, self))
		assert.Contains(t, []int{0, 1}, s.EnactIndex(g, self))
		nominee := s.Nominee(g, self)
		require.NotEmpty(t, nominee)
		assert.NotEqual(t, self.Name, nominee)
	}
}
