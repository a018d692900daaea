package payment

import (
	"sync"
	"time"
)

// ExecutedLedger remembers which payment ids already produced a success
// notification, so a replayed execute callback cannot double-notify. In-memory
// only: the provider remains the source of truth for payment state.
type ExecutedLedger struct {
	mu       sync.Mutex
	executed map[string]time.Time
}

func NewExecutedLedger() *ExecutedLedger {
	return &ExecutedLedger{
		executed: make(map[string]time.Time),
	}
}

// MarkExecuted records the payment id and reports whether this was the first
// time it was seen.
func (l *ExecutedLedger) MarkExecuted(paymentID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.executed[paymentID]; seen {
		return false
	}
	l.executed[paymentID] = time.Now()
	return true
}

// Prune drops entries older than maxAge and returns how many were removed.
// Approval links expire provider-side long before that, so stale entries can
// never be replayed anyway.
func (l *ExecutedLedger) Prune(maxAge time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, recordedAt := range l.executed {
		if recordedAt.Before(cutoff) {
			delete(l.executed, id)
			removed++
		}
	}
	return removed
}
