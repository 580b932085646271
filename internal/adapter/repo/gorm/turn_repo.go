package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"decisionlab/internal/adapter/repo/gorm/model"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type turnPayload struct {
	Decisions   scenario.Decision     `json:"decisions"`
	Expectation scenario.Expectation  `json:"linear_expectation"`
	Actual      scenario.ActualResult `json:"actual_result"`
	Feedback    string                `json:"feedback"`
	StateAfter  scenario.Fields       `json:"state_after"`
}

// TurnRepo is the postgres turn journal.
type TurnRepo struct {
	db *gorm.DB
}

func NewTurnRepo(db *gorm.DB) TurnRepo {
	return TurnRepo{db: db}
}

func (r TurnRepo) Append(ctx context.Context, rec ports.TurnRecord) error {
	b, err := json.Marshal(turnPayload{
		Decisions:   rec.Decisions,
		Expectation: rec.Expectation,
		Actual:      rec.Actual,
		Feedback:    rec.Feedback,
		StateAfter:  rec.StateAfter,
	})
	if err != nil {
		return fmt.Errorf("encode turn payload: %w", err)
	}
	row := model.TurnRecord{
		SessionID:      rec.SessionID,
		Run:            int32(rec.Run),
		Turn:           int32(rec.Turn),
		Family:         string(rec.Family),
		GameOver:       rec.GameOver,
		GameOverReason: rec.GameOverReason,
		Payload:        b,
		RecordedAt:     rec.RecordedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r TurnRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]ports.TurnRecord, error) {
	rows := []model.TurnRecord{}
	query := getDBFromCtx(ctx, r.db).
		Where("session_id = ?", sessionID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.TurnRecord, len(rows))
	for i, row := range rows {
		var p turnPayload
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &p); err != nil {
				return nil, fmt.Errorf("decode turn %d payload: %w", row.ID, err)
			}
		}
		// rows are newest first; the port contract is append order
		out[len(rows)-1-i] = ports.TurnRecord{
			SessionID:      row.SessionID,
			Run:            int(row.Run),
			Turn:           int(row.Turn),
			Family:         scenario.Family(row.Family),
			Decisions:      p.Decisions,
			Expectation:    p.Expectation,
			Actual:         p.Actual,
			Feedback:       p.Feedback,
			GameOver:       row.GameOver,
			GameOverReason: row.GameOverReason,
			StateAfter:     p.StateAfter,
			RecordedAt:     row.RecordedAt,
		}
	}
	return out, nil
}
