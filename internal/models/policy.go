package models

// PolicyType tags a policy card as Liberal or Fascist.
type PolicyType string

const (
	PolicyLiberal PolicyType = "Liberal"
	PolicyFascist PolicyType = "Fascist"
)

// Policy is a single card. It carries no state beyond its type.
type Policy struct {
	Type PolicyType
}
