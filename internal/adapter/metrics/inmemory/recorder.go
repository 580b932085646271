package inmemory

import (
	"sync"

	"decisionlab/internal/domain/scenario"
)

type Snapshot struct {
	TurnTotal       uint64            `json:"turn_total"`
	GameOverTotal   uint64            `json:"game_over_total"`
	OrphanDeltas    uint64            `json:"orphan_deltas"`
	JournalFailures uint64            `json:"journal_failures"`
	Conflicts       uint64            `json:"conflicts"`
	Failures        uint64            `json:"failures"`
	TurnsByFamily   map[string]uint64 `json:"turns_by_family"`
	GameOverReasons map[string]uint64 `json:"game_over_reasons"`
}

type Recorder struct {
	mu              sync.Mutex
	orphans         uint64
	journalFailures uint64
	conflicts       uint64
	failures        uint64
	byFamily        map[string]uint64
	byReason        map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byFamily: map[string]uint64{},
		byReason: map[string]uint64{},
	}
}

func (r *Recorder) RecordTurn(family scenario.Family) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFamily[string(family)]++
}

func (r *Recorder) RecordGameOver(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byReason[reason]++
}

func (r *Recorder) RecordOrphans(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orphans += uint64(n)
}

func (r *Recorder) RecordJournalFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journalFailures++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		OrphanDeltas:    r.orphans,
		JournalFailures: r.journalFailures,
		Conflicts:       r.conflicts,
		Failures:        r.failures,
		TurnsByFamily:   make(map[string]uint64, len(r.byFamily)),
		GameOverReasons: make(map[string]uint64, len(r.byReason)),
	}
	for k, v := range r.byFamily {
		out.TurnsByFamily[k] = v
		out.TurnTotal += v
	}
	for k, v := range r.byReason {
		out.GameOverReasons[k] = v
		out.GameOverTotal += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
