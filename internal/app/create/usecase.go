package create

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/app/stateview"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid create request")

type Request struct {
	ScenarioID string `json:"scenario_id"`
}

type Response struct {
	Session stateview.View `json:"session"`
}

type UseCase struct {
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
	Catalog   ports.ScenarioCatalog
	Rulesets  scenario.Registry
	NewID     func() string
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	scenarioID := strings.TrimSpace(req.ScenarioID)
	if scenarioID == "" {
		return Response{}, ErrInvalidRequest
	}
	def, err := u.Catalog.Get(ctx, scenarioID)
	if err != nil {
		return Response{}, fmt.Errorf("load scenario %s: %w", scenarioID, err)
	}
	rs, err := u.Rulesets.Get(def.Family)
	if err != nil {
		return Response{}, err
	}

	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	sess := session.New(newID(), def.ID, def.Family, def.InitialState, def.MaxTurns, def.Policy(rs))
	sess.Version = 1
	sess.UpdatedAt = nowFn()

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return u.Sessions.SaveWithVersion(txCtx, sess, 0)
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Session: stateview.Build(sess, rs)}, nil
}
