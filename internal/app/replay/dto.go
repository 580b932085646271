package replay

import (
	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

type Request struct {
	SessionID string
	Limit     int
	// Run restricts records to one run of the session; 0 keeps every run.
	Run int
}

type Response struct {
	Records        []ports.TurnRecord `json:"records"`
	LatestState    scenario.Fields    `json:"latest_state"`
	LatestTurn     int                `json:"latest_turn"`
	GameOver       bool               `json:"game_over"`
	GameOverReason string             `json:"game_over_reason,omitempty"`
}
