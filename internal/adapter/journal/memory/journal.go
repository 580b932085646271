package memory

import (
	"context"
	"sync"

	"decisionlab/internal/app/ports"
)

type Journal struct {
	mu      sync.RWMutex
	records map[string][]ports.TurnRecord
}

func NewJournal() *Journal {
	return &Journal{records: make(map[string][]ports.TurnRecord)}
}

func (j *Journal) Append(_ context.Context, rec ports.TurnRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records[rec.SessionID] = append(j.records[rec.SessionID], rec)
	return nil
}

func (j *Journal) ListBySession(_ context.Context, sessionID string, limit int) ([]ports.TurnRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	all := j.records[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]ports.TurnRecord, len(all))
	copy(out, all)
	return out, nil
}
