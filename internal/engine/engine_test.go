package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrethitler/internal/models"
)

func lobbyGame(t *testing.T, n int) *models.Game {
	t.Helper()
	g := models.NewGame("TEST01")
	for i := range n {
		require.NoError(t, AddPlayer(g, fmt.Sprintf("player%d", i+1), false))
	}
	return g
}

// fixedGame builds a started game with explicit roles so tests do not
// depend on shuffle outcomes. player1 gets roles[0] and the first
// presidency.
func fixedGame(roles ...models.Role) *models.Game {
	g := models.NewGame("TEST01")
	for i, r := range roles {
		p := models.NewPlayer(fmt.Sprintf("player%d", i+1))
		p.Role = r
		g.Players = append(g.Players, p)
	}
	g.PolicyDeck = newPolicyDeck()
	g.CurrentPresidentIndex = 0
	g.CurrentPhase = models.PhaseElection
	g.Started = true
	return g
}

func voteAll(t *testing.T, g *models.Game, ballots map[string]bool) {
	t.Helper()
	var lastResolved bool
	for _, p := range g.AlivePlayers() {
		ballot, ok := ballots[p.Name]
		require.True(t, ok, "missing ballot for %s", p.Name)
		resolved, err := CastVote(g, p.Name, ballot)
		require.NoError(t, err)
		lastResolved = resolved
	}
	require.True(t, lastResolved, "final ballot should resolve the election")
}

func unanimous(g *models.Game, vote bool) map[string]bool {
	ballots := make(map[string]bool)
	for _, p := range g.AlivePlayers() {
		ballots[p.Name] = vote
	}
	return ballots
}

func TestAddPlayer(t *testing.T) {
	g := models.NewGame("TEST01")

	require.NoError(t, AddPlayer(g, "alice", false))
	assert.ErrorIs(t, AddPlayer(g, "alice", false), ErrNameTaken)

	for i := range 9 {
		require.NoError(t, AddPlayer(g, fmt.Sprintf("filler%d", i), false))
	}
	assert.ErrorIs(t, AddPlayer(g, "bob", false), ErrGameFull)
}

func TestAddPlayerAfterStart(t *testing.T) {
	g := lobbyGame(t, 5)
	require.NoError(t, Start(g))
	assert.ErrorIs(t, AddPlayer(g, "latecomer", false), ErrInvalidPhase)
}

func TestAddPlayerBot(t *testing.T) {
	g := models.NewGame("TEST01")
	require.NoError(t, AddPlayer(g, "beep", true))
	p := g.PlayerByName("beep")
	require.NotNil(t, p)
	assert.True(t, p.IsBot)
	assert.Equal(t, "medium", p.BotDifficulty)
}

func TestRemovePlayer(t *testing.T) {
	g := lobbyGame(t, 5)
	assert.True(t, RemovePlayer(g, "player3"))
	assert.Nil(t, g.PlayerByName("player3"))
	assert.False(t, RemovePlayer(g, "player3"))

	require.NoError(t, AddPlayer(g, "player3", false))
	require.NoError(t, Start(g))
	assert.False(t, RemovePlayer(g, "player3"), "started games never drop roster entries")
}

func TestStartValidation(t *testing.T) {
	g := lobbyGame(t, 4)
	assert.ErrorIs(t, Start(g), ErrRosterSize)

	require.NoError(t, AddPlayer(g, "player5", false))
	require.NoError(t, Start(g))
	assert.Equal(t, models.PhaseElection, g.CurrentPhase)
	assert.True(t, g.Started)
	assert.Len(t, g.PolicyDeck, 17)
	assert.NotNil(t, g.CurrentPresident())

	assert.ErrorIs(t, Start(g), ErrInvalidPhase)
}

func TestNominateValidation(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler, models.RoleLiberal)

	assert.ErrorIs(t, Nominate(g, "player2", "player3"), ErrInvalidActor)
	assert.ErrorIs(t, Nominate(g, "player1", "player1"), ErrInvalidTarget)
	assert.ErrorIs(t, Nominate(g, "player1", "nobody"), ErrInvalidTarget)

	g.PlayerByName("player3").Alive = false
	assert.ErrorIs(t, Nominate(g, "player1", "player3"), ErrInvalidTarget)
	g.PlayerByName("player3").Alive = true

	require.NoError(t, Nominate(g, "player1", "player2"))
	assert.Equal(t, models.PhaseVoting, g.CurrentPhase)
	assert.Equal(t, "player2", g.NominatedChancellor)

	assert.ErrorIs(t, Nominate(g, "player1", "player3"), ErrInvalidPhase)
}

func TestNominateTermLimit(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler, models.RoleLiberal)
	g.LastChancellorName = "player2"

	// Six alive: the previous chancellor is off limits.
	assert.ErrorIs(t, Nominate(g, "player1", "player2"), ErrInvalidTarget)

	// At five or fewer alive the term limit lifts.
	g.PlayerByName("player6").Alive = false
	require.NoError(t, Nominate(g, "player1", "player2"))
}

func TestCastVoteValidation(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)

	_, err := CastVote(g, "player2", true)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	require.NoError(t, Nominate(g, "player1", "player2"))

	_, err = CastVote(g, "nobody", true)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	g.PlayerByName("player5").Alive = false
	_, err = CastVote(g, "player5", true)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	g.PlayerByName("player5").Alive = true
}

func TestCastVoteOverwrite(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))

	resolved, err := CastVote(g, "player3", true)
	require.NoError(t, err)
	assert.False(t, resolved)

	resolved, err = CastVote(g, "player3", false)
	require.NoError(t, err)
	assert.False(t, resolved)
	assert.False(t, g.Votes["player3"])
}

func TestElectionPasses(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))

	ballots := unanimous(g, true)
	ballots["player5"] = false
	voteAll(t, g, ballots)

	assert.Equal(t, models.PhaseLegislative, g.CurrentPhase)
	assert.Len(t, g.PresidentHand, 3)
	assert.Zero(t, g.ElectionTracker)
	assert.True(t, g.PlayerByName("player1").IsPresident)
	assert.True(t, g.PlayerByName("player2").IsChancellor)
	assert.Equal(t, "player1", g.LastPresidentName)
	assert.Equal(t, "player2", g.LastChancellorName)
}

func TestElectionFailsAdvancesTracker(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))

	ballots := unanimous(g, false)
	ballots["player1"] = true
	ballots["player2"] = true
	voteAll(t, g, ballots)

	assert.Equal(t, models.PhaseElection, g.CurrentPhase)
	assert.Equal(t, 1, g.ElectionTracker)
	assert.Empty(t, g.NominatedChancellor)
	assert.Equal(t, 1, g.CurrentPresidentIndex)
	assert.Empty(t, g.PresidentHand)
}

func TestThreeFailedElectionsForceChaosPolicy(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)

	for range 3 {
		president := g.CurrentPresident()
		nominee := "player1"
		if nominee == president.Name {
			nominee = "player2"
		}
		require.NoError(t, Nominate(g, president.Name, nominee))
		voteAll(t, g, unanimous(g, false))
	}

	assert.Equal(t, 1, g.LiberalPolicies+g.FascistPolicies,
		"third consecutive failure forces the top deck policy through")
	assert.Zero(t, g.ElectionTracker)
	assert.Equal(t, models.PhaseElection, g.CurrentPhase)
	assert.Empty(t, g.AvailableActions, "a chaos policy grants no executive action")
	assert.Len(t, g.PolicyDeck, 16)
}

func TestElectionPassRejectedOnShortDeckLeavesStateUntouched(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))

	// Deck and discard together cannot seat a legislative session.
	g.PolicyDeck = []models.Policy{{Type: models.PolicyLiberal}}
	g.DiscardPile = nil

	alive := g.AlivePlayers()
	for _, p := range alive[:len(alive)-1] {
		_, err := CastVote(g, p.Name, true)
		require.NoError(t, err)
	}
	_, err := CastVote(g, alive[len(alive)-1].Name, true)
	assert.ErrorIs(t, err, ErrInsufficientCards)

	assert.Equal(t, models.PhaseVoting, g.CurrentPhase, "a rejected resolution commits nothing")
	assert.False(t, g.PlayerByName("player1").IsPresident)
	assert.False(t, g.PlayerByName("player2").IsChancellor)
	assert.Empty(t, g.LastPresidentName)
	assert.Empty(t, g.LastChancellorName)
	assert.Empty(t, g.PresidentHand)
	assert.Zero(t, g.ElectionTracker)
}

func TestPresidentDiscard(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))
	voteAll(t, g, unanimous(g, true))

	hand := append([]models.Policy(nil), g.PresidentHand...)

	assert.ErrorIs(t, PresidentDiscard(g, "player2", 0), ErrInvalidActor)
	assert.ErrorIs(t, PresidentDiscard(g, "player1", 3), ErrInvalidIndex)
	assert.ErrorIs(t, PresidentDiscard(g, "player1", -1), ErrInvalidIndex)

	require.NoError(t, PresidentDiscard(g, "player1", 1))
	assert.Empty(t, g.PresidentHand)
	assert.Equal(t, []models.Policy{hand[0], hand[2]}, g.ChancellorHand)
	assert.Contains(t, g.DiscardPile, hand[1])
}

func TestChancellorEnactLiberal(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))
	voteAll(t, g, unanimous(g, true))
	require.NoError(t, PresidentDiscard(g, "player1", 0))

	g.ChancellorHand = []models.Policy{
		{Type: models.PolicyLiberal},
		{Type: models.PolicyFascist},
	}

	enacted, err := ChancellorEnact(g, "player2", 0)
	require.NoError(t, err)
	assert.Equal(t, models.PolicyLiberal, enacted)
	assert.Equal(t, 1, g.LiberalPolicies)
	assert.Equal(t, models.PhaseElection, g.CurrentPhase)
	assert.Equal(t, 1, g.CurrentPresidentIndex)
	assert.Empty(t, g.NominatedChancellor)
	assert.False(t, g.PlayerByName("player1").IsPresident)
}

func TestChancellorEnactFascistUnlocksExecutive(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))
	voteAll(t, g, unanimous(g, true))
	require.NoError(t, PresidentDiscard(g, "player1", 0))

	g.ChancellorHand = []models.Policy{
		{Type: models.PolicyFascist},
		{Type: models.PolicyLiberal},
	}

	enacted, err := ChancellorEnact(g, "player2", 0)
	require.NoError(t, err)
	assert.Equal(t, models.PolicyFascist, enacted)
	assert.Equal(t, 1, g.FascistPolicies)
	assert.Equal(t, models.PhaseExecutive, g.CurrentPhase)
	assert.Equal(t, []models.ActionKind{models.ActionInvestigate}, g.AvailableActions)
	assert.True(t, g.PlayerByName("player1").IsPresident,
		"the sitting government stays flagged while the action is pending")
}

func TestChancellorEnactValidation(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))
	voteAll(t, g, unanimous(g, true))
	require.NoError(t, PresidentDiscard(g, "player1", 0))

	_, err := ChancellorEnact(g, "player1", 0)
	assert.ErrorIs(t, err, ErrInvalidActor)
	_, err = ChancellorEnact(g, "player2", 2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestDeckConservationThroughRound(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)
	require.NoError(t, Nominate(g, "player1", "player2"))
	voteAll(t, g, unanimous(g, true))
	require.NoError(t, PresidentDiscard(g, "player1", 0))
	_, err := ChancellorEnact(g, "player2", 0)
	require.NoError(t, err)

	total := len(g.PolicyDeck) + len(g.DiscardPile) + g.LiberalPolicies + g.FascistPolicies
	assert.Equal(t, 17, total)
}

func TestReadyGate(t *testing.T) {
	g := fixedGame(models.RoleLiberal, models.RoleLiberal, models.RoleLiberal,
		models.RoleFascist, models.RoleHitler)

	_, err := AcknowledgeReady(g, "nobody")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	for i, p := range g.AlivePlayers() {
		open, err := AcknowledgeReady(g, p.Name)
		require.NoError(t, err)
		if i < 4 {
			assert.False(t, open)
		} else {
			assert.True(t, open, "gate opens on the final acknowledgement")
		}
	}
	assert.Empty(t, g.ReadyStatus, "the gate resets after opening")
}
