package ports

import "decisionlab/internal/domain/scenario"

type TurnMetrics interface {
	RecordTurn(family scenario.Family)
	RecordGameOver(reason string)
	RecordOrphans(n int)
	RecordJournalFailure()
	RecordConflict()
	RecordFailure()
}
