package turn

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/app/stateview"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

var ErrInvalidRequest = errors.New("invalid turn request")

// UseCase resolves the buffered decisions of a session as one turn.
type UseCase struct {
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
	Rulesets  scenario.Registry
	Journal   ports.TurnJournal
	Metrics   ports.TurnMetrics
	Logger    *log.Logger
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

	var (
		out  Response
		sess session.Session
	)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		sess, err = u.Sessions.Get(txCtx, req.SessionID)
		if err != nil {
			return err
		}
		rs, err := u.Rulesets.Get(sess.Family)
		if err != nil {
			return err
		}
		for _, key := range sortedKeys(req.Decisions) {
			if err := sess.MakeDecision(key, req.Decisions[key]); err != nil {
				return err
			}
		}
		res, err := sess.SubmitTurn(rs)
		if err != nil {
			return err
		}

		expected := sess.Version
		sess.Version++
		sess.UpdatedAt = nowFn()
		if err := u.Sessions.SaveWithVersion(txCtx, sess, expected); err != nil {
			return err
		}
		out = Response{Result: res, Session: stateview.Build(sess, rs)}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}

	u.observe(sess, out.Result)
	u.record(ctx, sess, out.Result)
	return out, nil
}

func (u UseCase) observe(sess session.Session, res scenario.TurnResult) {
	logger := u.logger()
	for _, o := range res.Orphans {
		logger.Printf("session %s turn %d: delta for unknown field %q (%+g) dropped: %s",
			sess.ID, o.Turn, o.Field, o.Delta, o.Description)
	}
	if res.GameOver {
		logger.Printf("session %s game over on turn %d: %s", sess.ID, res.Turn, res.GameOverReason)
	}
	if u.Metrics == nil {
		return
	}
	u.Metrics.RecordTurn(sess.Family)
	if len(res.Orphans) > 0 {
		u.Metrics.RecordOrphans(len(res.Orphans))
	}
	if res.GameOver {
		u.Metrics.RecordGameOver(res.GameOverReason)
	}
}

// record appends to the journal. The session row is authoritative, so a journal
// failure is logged and counted without failing the turn.
func (u UseCase) record(ctx context.Context, sess session.Session, res scenario.TurnResult) {
	if u.Journal == nil {
		return
	}
	decisions := scenario.Decision{}
	if n := len(sess.State.DecisionHistory); n > 0 {
		decisions = sess.State.DecisionHistory[n-1].Decisions.Clone()
	}
	rec := ports.TurnRecord{
		SessionID:      sess.ID,
		Run:            sess.Run,
		Turn:           res.Turn,
		Family:         sess.Family,
		Decisions:      decisions,
		Expectation:    res.Expectation,
		Actual:         res.Actual,
		Feedback:       res.Feedback,
		GameOver:       res.GameOver,
		GameOverReason: res.GameOverReason,
		StateAfter:     res.NewState.Clone(),
		RecordedAt:     sess.UpdatedAt,
	}
	if err := u.Journal.Append(ctx, rec); err != nil {
		u.logger().Printf("session %s turn %d: journal append failed: %v", sess.ID, res.Turn, err)
		if u.Metrics != nil {
			u.Metrics.RecordJournalFailure()
		}
	}
}

func (u UseCase) logger() *log.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return log.Default()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
