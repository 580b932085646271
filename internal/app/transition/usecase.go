package transition

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
)

var (
	ErrInvalidRequest = errors.New("invalid transition request")
	ErrUnknownCommand = errors.New("unknown command")
)

// UseCase applies the non-resolving session transitions: start, decide, next and reset.
type UseCase struct {
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
	Rulesets  scenario.Registry
	Metrics   ports.TurnMetrics
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		sess, err := u.Sessions.Get(txCtx, req.SessionID)
		if err != nil {
			return err
		}
		rs, err := u.Rulesets.Get(sess.Family)
		if err != nil {
			return err
		}
		selected, err := apply(&sess, rs, req)
		if err != nil {
			return err
		}

		expected := sess.Version
		sess.Version++
		sess.UpdatedAt = nowFn()
		if err := u.Sessions.SaveWithVersion(txCtx, sess, expected); err != nil {
			return err
		}
		out = Response{Session: stateview.Build(sess, rs), Selected: selected}
		return nil
	})
	if err != nil {
		if u.Metrics != nil && errors.Is(err, ports.ErrConflict) {
			u.Metrics.RecordConflict()
		}
		return Response{}, err
	}
	return out, nil
}

func apply(sess *session.Session, rs scenario.Ruleset, req Request) (*scenario.Option, error) {
	switch req.Command {
	case CommandStart:
		return nil, sess.StartGame()
	case CommandDecide:
		if req.OptionIndex != nil {
			opt, err := sess.SelectOption(rs, *req.OptionIndex)
			if err != nil {
				return nil, err
			}
			return &opt, nil
		}
		return nil, sess.MakeDecision(req.Key, req.Value)
	case CommandNext:
		return nil, sess.NextTurn()
	case CommandReset:
		sess.ResetGame()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
}
