package status

import (
	"context"
	"errors"
	"strings"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/app/stateview"
	"decisionlab/internal/domain/scenario"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Sessions ports.SessionRepository
	Rulesets scenario.Registry
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	sess, err := u.Sessions.Get(ctx, req.SessionID)
	if err != nil {
		return Response{}, err
	}
	rs, _ := u.Rulesets.Lookup(sess.Family)
	return Response{Session: stateview.Build(sess, rs)}, nil
}
