package models

// Role is a player's secret allegiance, fixed for the lifetime of a game.
type Role string

const (
	RoleHitler  Role = "Hitler"
	RoleFascist Role = "Fascist"
	RoleLiberal Role = "Liberal"
)

// Alignment is the coarse two-value investigation result. Hitler is
// reported as an ordinary Fascist.
func (r Role) Alignment() string {
	if r == RoleLiberal {
		return "Liberal"
	}
	return "Fascist"
}
