package replay

import (
	"context"
	"errors"
	"strings"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Journal ports.TurnJournal
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || req.Limit < 0 || req.Run < 0 {
		return Response{}, ErrInvalidRequest
	}
	records, err := u.Journal.ListBySession(ctx, req.SessionID, 0)
	if err != nil {
		return Response{}, err
	}
	records = filterByRun(records, req.Run)
	if req.Limit > 0 && len(records) > req.Limit {
		records = records[len(records)-req.Limit:]
	}
	out := reconstruct(records)
	out.Records = records
	return out, nil
}

func filterByRun(records []ports.TurnRecord, run int) []ports.TurnRecord {
	out := make([]ports.TurnRecord, 0, len(records))
	for _, rec := range records {
		if run > 0 && rec.Run != run {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// reconstruct replays StateAfter snapshots in order; the last one wins.
func reconstruct(records []ports.TurnRecord) Response {
	out := Response{LatestState: scenario.Fields{}}
	for _, rec := range records {
		if rec.StateAfter == nil {
			continue
		}
		out.LatestState = rec.StateAfter.Clone()
		out.LatestTurn = rec.Turn
		out.GameOver = rec.GameOver
		out.GameOverReason = rec.GameOverReason
	}
	return out
}
