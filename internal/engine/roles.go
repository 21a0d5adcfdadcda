package engine

import (
	"math/rand"

	"secrethitler/internal/models"
)

// fascistsByRosterSize gives the number of ordinary Fascists for each
// legal roster size. There is always exactly one Hitler; the rest of
// the roster is Liberal.
var fascistsByRosterSize = map[int]int{
	5:  1,
	6:  1,
	7:  2,
	8:  2,
	9:  3,
	10: 3,
}

// assignRoles shuffles the fixed role multiset for the roster size and
// zips it against the roster in its fixed order.
func assignRoles(g *models.Game) error {
	fascists, ok := fascistsByRosterSize[len(g.Players)]
	if !ok {
		return ErrRosterSize
	}

	roles := make([]models.Role, 0, len(g.Players))
	roles = append(roles, models.RoleHitler)
	for range fascists {
		roles = append(roles, models.RoleFascist)
	}
	for len(roles) < len(g.Players) {
		roles = append(roles, models.RoleLiberal)
	}

	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	for i, p := range g.Players {
		p.Role = roles[i]
	}
	return nil
}
