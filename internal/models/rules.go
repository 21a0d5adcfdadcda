package models

// Rules are host-configurable toggles. AllowVeto and
// SpecialElectionRules are carried on the wire but not yet enforced.
type Rules struct {
	ShowRoleOnDeath      bool `json:"showRoleOnDeath"`
	AllowVeto            bool `json:"allowVeto"`
	SpecialElectionRules bool `json:"specialElectionRules"`
}
