package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"decisionlab/internal/adapter/repo/gorm/model"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"

	"gorm.io/gorm"
)

// sessionPayload holds the parts of a session that have no column of their own.
type sessionPayload struct {
	State           scenario.GameState      `json:"state"`
	Initial         scenario.Fields         `json:"initial"`
	Terminal        scenario.TerminalPolicy `json:"terminal"`
	TempDecisions   scenario.Decision       `json:"temp_decisions"`
	SelectedOptions []int                   `json:"selected_options"`
	LastResult      *scenario.TurnResult    `json:"last_result,omitempty"`
}

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) Get(ctx context.Context, id string) (session.Session, error) {
	var m model.GameSession
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Session{}, ports.ErrNotFound
		}
		return session.Session{}, err
	}
	var p sessionPayload
	if err := json.Unmarshal(m.Payload, &p); err != nil {
		return session.Session{}, fmt.Errorf("decode session %s payload: %w", id, err)
	}
	if p.State.Fields == nil {
		p.State.Fields = scenario.Fields{}
	}
	if p.TempDecisions == nil {
		p.TempDecisions = scenario.Decision{}
	}
	p.State.TurnNumber = int(m.TurnNumber)
	return session.Session{
		ID:              m.ID,
		ScenarioID:      m.ScenarioID,
		Family:          scenario.Family(m.Family),
		Phase:           session.Phase(m.Phase),
		State:           p.State,
		Initial:         p.Initial,
		MaxTurns:        int(m.MaxTurns),
		Terminal:        p.Terminal,
		TempDecisions:   p.TempDecisions,
		SelectedOptions: p.SelectedOptions,
		LastResult:      p.LastResult,
		GameOverReason:  m.GameOverReason,
		Run:             int(m.Run),
		Version:         m.Version,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, s session.Session, expectedVersion int64) error {
	payload, err := json.Marshal(sessionPayload{
		State:           s.State,
		Initial:         s.Initial,
		Terminal:        s.Terminal,
		TempDecisions:   s.TempDecisions,
		SelectedOptions: s.SelectedOptions,
		LastResult:      s.LastResult,
	})
	if err != nil {
		return fmt.Errorf("encode session %s payload: %w", s.ID, err)
	}

	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.GameSession{
			ID:             s.ID,
			ScenarioID:     s.ScenarioID,
			Family:         string(s.Family),
			Phase:          string(s.Phase),
			Run:            int32(s.Run),
			TurnNumber:     int32(s.State.TurnNumber),
			MaxTurns:       int32(s.MaxTurns),
			GameOverReason: s.GameOverReason,
			Payload:        payload,
			Version:        s.Version,
			UpdatedAt:      s.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"phase":            string(s.Phase),
		"run":              int32(s.Run),
		"turn_number":      int32(s.State.TurnNumber),
		"game_over_reason": s.GameOverReason,
		"payload":          payload,
		"version":          s.Version,
		"updated_at":       s.UpdatedAt,
	}
	res := db.Model(&model.GameSession{}).
		Where("id = ? AND version = ?", s.ID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
