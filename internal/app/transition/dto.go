package transition

import (
	"decisionlab/internal/app/stateview"
	"decisionlab/internal/domain/scenario"
)

type Command string

const (
	CommandStart  Command = "start"
	CommandDecide Command = "decide"
	CommandNext   Command = "next"
	CommandReset  Command = "reset"
)

type Request struct {
	SessionID   string
	Command     Command
	Key         string
	Value       string
	OptionIndex *int
}

type Response struct {
	Session  stateview.View   `json:"session"`
	Selected *scenario.Option `json:"selected,omitempty"`
}
