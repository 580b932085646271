package status

import "decisionlab/internal/app/stateview"

type Request struct {
	SessionID string
}

type Response struct {
	Session stateview.View `json:"session"`
}
