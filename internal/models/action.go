package models

// ActionKind is an executive power the sitting president may exercise
// after a Fascist policy is enacted.
type ActionKind string

const (
	ActionInvestigate     ActionKind = "investigate"
	ActionSpecialElection ActionKind = "special_election"
	ActionPolicyPeek      ActionKind = "policy_peek"
	ActionExecution       ActionKind = "execution"
)
