package models

// Phase represents the current stage of the game cycle.
type Phase string

const (
	PhaseLobby       Phase = "Lobby"
	PhaseElection    Phase = "Election"
	PhaseVoting      Phase = "Voting"
	PhaseLegislative Phase = "Legislative"
	PhaseExecutive   Phase = "Executive"
	PhaseGameOver    Phase = "Game_Over"
)
