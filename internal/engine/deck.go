package engine

import (
	"math/rand"

	"secrethitler/internal/models"
)

// The policy deck is a fixed multiset: 6 Liberal + 11 Fascist cards.
// Deck + discard pile + held hands always add up to exactly that.
const (
	liberalPolicyCount = 6
	fascistPolicyCount = 11
)

func newPolicyDeck() []models.Policy {
	deck := make([]models.Policy, 0, liberalPolicyCount+fascistPolicyCount)
	for range liberalPolicyCount {
		deck = append(deck, models.Policy{Type: models.PolicyLiberal})
	}
	for range fascistPolicyCount {
		deck = append(deck, models.Policy{Type: models.PolicyFascist})
	}
	shufflePolicies(deck)
	return deck
}

func shufflePolicies(deck []models.Policy) {
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// reshuffleIfShort folds the discard pile back into the deck and
// shuffles when fewer than n cards remain on the draw stack.
func reshuffleIfShort(g *models.Game, n int) {
	if len(g.PolicyDeck) >= n {
		return
	}
	g.PolicyDeck = append(g.PolicyDeck, g.DiscardPile...)
	g.DiscardPile = nil
	shufflePolicies(g.PolicyDeck)
}

// drawPolicies removes and returns the top n cards, reshuffling the
// discard pile in first if needed. With the fixed 17-card multiset this
// cannot fail for n <= 3, but the discard pile may transiently hold
// everything, so the shortfall is checked rather than assumed.
func drawPolicies(g *models.Game, n int) ([]models.Policy, error) {
	reshuffleIfShort(g, n)
	if len(g.PolicyDeck) < n {
		return nil, ErrInsufficientCards
	}
	drawn := make([]models.Policy, n)
	copy(drawn, g.PolicyDeck[:n])
	g.PolicyDeck = g.PolicyDeck[n:]
	return drawn, nil
}

func discardPolicy(g *models.Game, p models.Policy) {
	g.DiscardPile = append(g.DiscardPile, p)
}
