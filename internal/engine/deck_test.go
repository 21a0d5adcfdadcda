package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrethitler/internal/models"
)

func countTypes(policies []models.Policy) (liberal, fascist int) {
	for _, p := range policies {
		if p.Type == models.PolicyLiberal {
			liberal++
		} else {
			fascist++
		}
	}
	return liberal, fascist
}

func TestNewPolicyDeckComposition(t *testing.T) {
	deck := newPolicyDeck()
	require.Len(t, deck, 17)
	liberal, fascist := countTypes(deck)
	assert.Equal(t, 6, liberal)
	assert.Equal(t, 11, fascist)
}

func TestDrawPolicies(t *testing.T) {
	g := models.NewGame("TEST01")
	g.PolicyDeck = newPolicyDeck()

	drawn, err := drawPolicies(g, 3)
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
	assert.Len(t, g.PolicyDeck, 14)
}

func TestDrawPoliciesReshufflesDiscard(t *testing.T) {
	g := models.NewGame("TEST01")
	g.PolicyDeck = []models.Policy{{Type: models.PolicyLiberal}}
	g.DiscardPile = []models.Policy{
		{Type: models.PolicyFascist},
		{Type: models.PolicyFascist},
		{Type: models.PolicyLiberal},
	}

	drawn, err := drawPolicies(g, 3)
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
	assert.Len(t, g.PolicyDeck, 1)
	assert.Empty(t, g.DiscardPile)

	liberal, fascist := countTypes(append(drawn, g.PolicyDeck...))
	assert.Equal(t, 2, liberal)
	assert.Equal(t, 2, fascist)
}

func TestDrawPoliciesInsufficient(t *testing.T) {
	g := models.NewGame("TEST01")
	g.PolicyDeck = []models.Policy{{Type: models.PolicyLiberal}}

	_, err := drawPolicies(g, 3)
	assert.ErrorIs(t, err, ErrInsufficientCards)
	assert.Len(t, g.PolicyDeck, 1, "a failed draw leaves the deck untouched")
}
