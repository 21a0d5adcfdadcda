// Package engine implements the rules of the game: the phase state
// machine, the policy deck, role assignment, executive actions and the
// win evaluator. Every operation is synchronous and total; on rejection
// the game is left exactly as it was. The engine holds no locks and
// performs no I/O; callers serialize access through the game's mutex.
package engine

import (
	"math/rand"

	"secrethitler/internal/models"
)

const (
	minPlayers = 5
	maxPlayers = 10

	// electionTrackerLimit is the number of consecutive failed
	// elections that forces the top deck policy through.
	electionTrackerLimit = 3
)

// AddPlayer appends a player to the roster. Only legal in the Lobby.
func AddPlayer(g *models.Game, name string, isBot bool) error {
	if g.CurrentPhase != models.PhaseLobby {
		return ErrInvalidPhase
	}
	if len(g.Players) >= maxPlayers {
		return ErrGameFull
	}
	if g.PlayerByName(name) != nil {
		return ErrNameTaken
	}
	p := models.NewPlayer(name)
	p.IsBot = isBot
	if isBot {
		p.BotDifficulty = "medium"
	}
	g.Players = append(g.Players, p)
	return nil
}

// RemovePlayer drops a roster entry. Only permitted while the game is
// still in the Lobby; after start, players are marked dead, never
// removed. Reports whether anything changed.
func RemovePlayer(g *models.Game, name string) bool {
	if g.CurrentPhase != models.PhaseLobby {
		return false
	}
	for i, p := range g.Players {
		if p.Name == name {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return true
		}
	}
	return false
}

// Start assigns roles, builds the policy deck and opens the first
// election with a uniformly random starting president.
func Start(g *models.Game) error {
	if g.CurrentPhase != models.PhaseLobby {
		return ErrInvalidPhase
	}
	if len(g.Players) < minPlayers || len(g.Players) > maxPlayers {
		return ErrRosterSize
	}
	if err := assignRoles(g); err != nil {
		return err
	}

	g.PolicyDeck = newPolicyDeck()
	g.DiscardPile = nil
	g.LiberalPolicies = 0
	g.FascistPolicies = 0
	g.ElectionTracker = 0
	g.CurrentPresidentIndex = rand.Intn(len(g.AlivePlayers()))
	g.CurrentPhase = models.PhaseElection
	g.Started = true
	return nil
}

// Nominate proposes a chancellor candidate and opens voting. The
// nominee must be a living player other than the president, and may not
// be the previous elected chancellor while more than five players are
// alive (the term limit lifts at five or fewer).
func Nominate(g *models.Game, presidentName, chancellorName string) error {
	if g.CurrentPhase != models.PhaseElection {
		return ErrInvalidPhase
	}
	president := g.CurrentPresident()
	if president == nil || president.Name != presidentName {
		return ErrInvalidActor
	}
	chancellor := g.PlayerByName(chancellorName)
	if chancellor == nil || !chancellor.Alive {
		return ErrInvalidTarget
	}
	if chancellorName == presidentName {
		return ErrInvalidTarget
	}
	if g.LastChancellorName != "" && chancellorName == g.LastChancellorName &&
		len(g.AlivePlayers()) > minPlayers {
		return ErrInvalidTarget
	}

	g.NominatedChancellor = chancellorName
	g.CurrentPhase = models.PhaseVoting
	g.Votes = make(map[string]bool)
	for _, p := range g.Players {
		p.Vote = nil
	}
	return nil
}

// CastVote records a Ja/Nein ballot; re-voting overwrites. Once every
// living player has a recorded vote the election resolves, reported via
// the returned flag.
func CastVote(g *models.Game, playerName string, vote bool) (resolved bool, err error) {
	if g.CurrentPhase != models.PhaseVoting {
		return false, ErrInvalidPhase
	}
	player := g.PlayerByName(playerName)
	if player == nil || !player.Alive {
		return false, ErrInvalidTarget
	}

	v := vote
	player.Vote = &v
	g.Votes[playerName] = vote

	if !allVotesCast(g) {
		return false, nil
	}
	if err := resolveElection(g); err != nil {
		return false, err
	}
	return true, nil
}

func allVotesCast(g *models.Game) bool {
	for _, p := range g.AlivePlayers() {
		if p.Vote == nil {
			return false
		}
	}
	return true
}

// resolveElection tallies the ballots of the living. A strict Ja
// majority elects the government; a tie or Nein majority advances the
// election tracker, forcing the top deck policy through on the third
// consecutive failure.
func resolveElection(g *models.Game) error {
	alive := g.AlivePlayers()
	ja := 0
	for _, v := range g.Votes {
		if v {
			ja++
		}
	}
	nein := len(alive) - ja

	if ja > nein {
		// Checked before any flag is committed, so a shortfall rejects
		// the resolution with the game untouched. Unreachable with the
		// fixed 17-card multiset, since hands are empty between rounds.
		if len(g.PolicyDeck)+len(g.DiscardPile) < 3 {
			return ErrInsufficientCards
		}

		president := g.CurrentPresident()
		chancellor := g.PlayerByName(g.NominatedChancellor)
		if president != nil {
			president.IsPresident = true
			g.LastPresidentName = president.Name
		}
		if chancellor != nil {
			chancellor.IsChancellor = true
			g.LastChancellorName = chancellor.Name
		}
		g.ElectionTracker = 0
		g.CurrentPhase = models.PhaseLegislative

		// A Hitler chancellor at three or more Fascist policies
		// ends the game the moment the election is confirmed.
		evaluateWin(g)
		if g.Winner != "" {
			return nil
		}

		hand, err := drawPolicies(g, 3)
		if err != nil {
			return err
		}
		g.PresidentHand = hand
		return nil
	}

	g.ElectionTracker++
	for _, p := range g.Players {
		p.IsPresident = false
		p.IsChancellor = false
	}
	if g.ElectionTracker >= electionTrackerLimit {
		if err := enactChaosPolicy(g); err != nil {
			return err
		}
		g.ElectionTracker = 0
		if g.Winner != "" {
			return nil
		}
	}
	g.CurrentPresidentIndex = (g.CurrentPresidentIndex + 1) % len(g.AlivePlayers())
	g.NominatedChancellor = ""
	g.CurrentPhase = models.PhaseElection
	return nil
}

// enactChaosPolicy forces the top deck card through without a
// legislative stage. A chaos policy grants no executive action.
func enactChaosPolicy(g *models.Game) error {
	drawn, err := drawPolicies(g, 1)
	if err != nil {
		return err
	}
	if drawn[0].Type == models.PolicyLiberal {
		g.LiberalPolicies++
	} else {
		g.FascistPolicies++
	}
	evaluateWin(g)
	return nil
}

// PresidentDiscard removes one of the president's three held policies
// to the discard pile; the remaining two become the chancellor's hand.
func PresidentDiscard(g *models.Game, presidentName string, index int) error {
	if g.CurrentPhase != models.PhaseLegislative {
		return ErrInvalidPhase
	}
	president := g.CurrentPresident()
	if president == nil || president.Name != presidentName {
		return ErrInvalidActor
	}
	if index < 0 || index >= len(g.PresidentHand) {
		return ErrInvalidIndex
	}

	discardPolicy(g, g.PresidentHand[index])
	remaining := make([]models.Policy, 0, len(g.PresidentHand)-1)
	remaining = append(remaining, g.PresidentHand[:index]...)
	remaining = append(remaining, g.PresidentHand[index+1:]...)
	g.ChancellorHand = remaining
	g.PresidentHand = nil
	return nil
}

// ChancellorEnact enacts one of the chancellor's two held policies and
// discards the other. The win evaluator runs on the new counts; if the
// game continues and the enacted policy was Fascist, any newly unlocked
// executive power moves play to the Executive phase, otherwise the
// round closes and the rotation advances.
func ChancellorEnact(g *models.Game, chancellorName string, index int) (models.PolicyType, error) {
	if g.CurrentPhase != models.PhaseLegislative {
		return "", ErrInvalidPhase
	}
	if g.NominatedChancellor == "" || chancellorName != g.NominatedChancellor {
		return "", ErrInvalidActor
	}
	if index < 0 || index >= len(g.ChancellorHand) {
		return "", ErrInvalidIndex
	}

	enacted := g.ChancellorHand[index]
	for i, p := range g.ChancellorHand {
		if i != index {
			discardPolicy(g, p)
		}
	}
	g.ChancellorHand = nil

	if enacted.Type == models.PolicyLiberal {
		g.LiberalPolicies++
	} else {
		g.FascistPolicies++
	}

	evaluateWin(g)
	if g.Winner != "" {
		g.AvailableActions = nil
		return enacted.Type, nil
	}

	if enacted.Type == models.PolicyFascist {
		if offered := OfferedActions(g.FascistPolicies); len(offered) > 0 {
			g.AvailableActions = offered
			g.ActionTarget = ""
			g.CurrentPhase = models.PhaseExecutive
			return enacted.Type, nil
		}
	}

	finishRound(g, true)
	return enacted.Type, nil
}

// finishRound clears round transients and returns to Election. When
// advance is set the rotation index moves one position forward modulo
// the current alive-player count.
func finishRound(g *models.Game, advance bool) {
	for _, p := range g.Players {
		p.IsPresident = false
		p.IsChancellor = false
		p.Vote = nil
	}
	g.Votes = make(map[string]bool)
	g.PresidentHand = nil
	g.ChancellorHand = nil
	g.NominatedChancellor = ""
	g.AvailableActions = nil
	g.ActionTarget = ""
	g.CurrentPhase = models.PhaseElection
	if advance {
		g.CurrentPresidentIndex = (g.CurrentPresidentIndex + 1) % len(g.AlivePlayers())
	}
}
