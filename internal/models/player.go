package models

// Player is a roster entry. Name is the identity key; Username and the
// profile fields are display-only and never affect game logic.
type Player struct {
	Name              string
	Username          string
	ProfilePictureURL string
	SelectedEmotes    []string
	Role              Role // empty until the game starts
	Alive             bool
	IsPresident       bool
	IsChancellor      bool
	Vote              *bool // true = Ja, false = Nein, nil = not voted
	InvestigatedBy    []string
	Executed          bool
	IsBot             bool
	BotDifficulty     string
}

// NewPlayer creates an alive, unassigned player. Username defaults to
// the identity name until the player customizes it.
func NewPlayer(name string) *Player {
	return &Player{
		Name:     name,
		Username: name,
		Alive:    true,
	}
}
