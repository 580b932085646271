package ports

import (
	"context"
	"time"

	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (session.Session, error)
	// SaveWithVersion creates the session when expectedVersion is 0 and otherwise
	// updates it only if the stored version still matches.
	SaveWithVersion(ctx context.Context, s session.Session, expectedVersion int64) error
}

type ScenarioCatalog interface {
	List(ctx context.Context) ([]scenario.Definition, error)
	Get(ctx context.Context, id string) (scenario.Definition, error)
}

// TurnRecord is the journal entry written for every resolved turn.
type TurnRecord struct {
	SessionID      string                `json:"session_id"`
	Run            int                   `json:"run"`
	Turn           int                   `json:"turn"`
	Family         scenario.Family       `json:"family"`
	Decisions      scenario.Decision     `json:"decisions"`
	Expectation    scenario.Expectation  `json:"linear_expectation"`
	Actual         scenario.ActualResult `json:"actual_result"`
	Feedback       string                `json:"feedback"`
	GameOver       bool                  `json:"game_over"`
	GameOverReason string                `json:"game_over_reason,omitempty"`
	StateAfter     scenario.Fields       `json:"state_after"`
	RecordedAt     time.Time             `json:"recorded_at"`
}

type TurnJournal interface {
	Append(ctx context.Context, rec TurnRecord) error
	// ListBySession returns records in append order; limit > 0 keeps the most recent.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error)
}
