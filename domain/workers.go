package domain

import "context"

// CounterRecountWorker rebuilds comment counters from the vote table in the
// background. Services report voted comment IDs through Send; the worker
// periodically recounts them so any counter drift is corrected from the
// authoritative rows instead of accumulating behind the zero clamp.
type CounterRecountWorker interface {
	Start(ctx context.Context)

	// Send enqueues a comment for recounting. Never blocks; drops when the
	// queue is full.
	Send(commentID int64)
}
