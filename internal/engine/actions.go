package engine

import "secrethitler/internal/models"

// OfferedActions is the executive-power unlock table, keyed by the
// cumulative Fascist policy count. Six or more is unreachable: the win
// evaluator ends the game first.
func OfferedActions(fascistPolicies int) []models.ActionKind {
	switch fascistPolicies {
	case 1:
		return []models.ActionKind{models.ActionInvestigate}
	case 2:
		return []models.ActionKind{models.ActionInvestigate, models.ActionSpecialElection}
	case 3:
		return []models.ActionKind{models.ActionInvestigate, models.ActionSpecialElection, models.ActionPolicyPeek}
	case 4, 5:
		return []models.ActionKind{models.ActionInvestigate, models.ActionSpecialElection, models.ActionExecution}
	default:
		return nil
	}
}

func actionOffered(g *models.Game, kind models.ActionKind) bool {
	for _, k := range g.AvailableActions {
		if k == kind {
			return true
		}
	}
	return false
}

// ExecuteAction performs the pending executive action on behalf of the
// sitting president. Afterwards the round closes and play returns to
// Election; the rotation advances unless the action was a special
// election, whose explicit index assignment stands.
func ExecuteAction(g *models.Game, presidentName string, kind models.ActionKind, target string) error {
	if g.CurrentPhase != models.PhaseExecutive {
		return ErrInvalidPhase
	}
	president := g.CurrentPresident()
	if president == nil || president.Name != presidentName {
		return ErrInvalidActor
	}
	if !actionOffered(g, kind) {
		return ErrInvalidAction
	}

	switch kind {
	case models.ActionInvestigate:
		targetPlayer, err := livingTarget(g, presidentName, target)
		if err != nil {
			return err
		}
		g.ActionTarget = target
		targetPlayer.InvestigatedBy = append(targetPlayer.InvestigatedBy, presidentName)
		// The coarse alignment is fetched separately via
		// InvestigationResult and delivered to the president only.

	case models.ActionSpecialElection:
		if _, err := livingTarget(g, presidentName, target); err != nil {
			return err
		}
		for i, p := range g.AlivePlayers() {
			if p.Name == target {
				g.CurrentPresidentIndex = i
				break
			}
		}

	case models.ActionPolicyPeek:
		// Nothing to mutate; the peek itself is read via PolicyPeek.

	case models.ActionExecution:
		targetPlayer, err := livingTarget(g, presidentName, target)
		if err != nil {
			return err
		}
		targetPlayer.Alive = false
		targetPlayer.Executed = true
		g.ActionTarget = target
		if targetPlayer.Role == models.RoleHitler {
			evaluateWin(g)
		}

	default:
		return ErrInvalidAction
	}

	if g.Winner != "" {
		g.AvailableActions = nil
		return nil
	}
	finishRound(g, kind != models.ActionSpecialElection)
	return nil
}

// livingTarget validates an executive-action target: it must name a
// living player other than the president.
func livingTarget(g *models.Game, presidentName, target string) (*models.Player, error) {
	if target == "" || target == presidentName {
		return nil, ErrInvalidTarget
	}
	p := g.PlayerByName(target)
	if p == nil || !p.Alive {
		return nil, ErrInvalidTarget
	}
	return p, nil
}

// InvestigationResult reports the coarse alignment of an investigated
// player. The transport delivers it to the president only.
func InvestigationResult(g *models.Game, targetName string) (string, error) {
	target := g.PlayerByName(targetName)
	if target == nil || target.Role == "" {
		return "", ErrInvalidTarget
	}
	return target.Role.Alignment(), nil
}

// PolicyPeek returns the top three deck cards without removing them,
// reshuffling the discard pile in first if fewer than three remain.
func PolicyPeek(g *models.Game) ([]models.PolicyType, error) {
	reshuffleIfShort(g, 3)
	if len(g.PolicyDeck) < 3 {
		return nil, ErrInsufficientCards
	}
	peek := make([]models.PolicyType, 3)
	for i := range peek {
		peek[i] = g.PolicyDeck[i].Type
	}
	return peek, nil
}
