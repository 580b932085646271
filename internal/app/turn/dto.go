package turn

import (
	"decisionlab/internal/app/stateview"
	"decisionlab/internal/domain/scenario"
)

type Request struct {
	SessionID string
	// Decisions are merged into the session buffer before the turn resolves.
	Decisions map[string]string
}

type Response struct {
	Result  scenario.TurnResult `json:"result"`
	Session stateview.View      `json:"session"`
}
