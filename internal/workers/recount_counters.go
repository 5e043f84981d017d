package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/moviestar/moviestar/domain"
)

// recountWorker periodically rebuilds comment like/dislike counters from
// the comment_like rows. Vote paths already keep counters consistent inside
// their own transactions; this worker repairs whatever drift still appears
// (manual fixes, crashes between historic schema versions) from the
// authoritative table instead of letting the zero clamp hide it forever.
type recountWorker struct {
	commentRepo domain.CommentRepository
	ch          chan int64
}

var _ domain.CounterRecountWorker = (*recountWorker)(nil)

func NewRecountWorker(commentRepo domain.CommentRepository) *recountWorker {
	return &recountWorker{
		commentRepo: commentRepo,
		ch:          make(chan int64, 1024),
	}
}

func (w *recountWorker) Send(commentID int64) {
	select {
	case w.ch <- commentID:
	default:
		logrus.Info("recount worker's channel is full, comment dropped")
	}
}

func (w *recountWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	pending := make(map[int64]struct{}, batchSize)
	for {
		select {
		case id := <-w.ch:
			pending[id] = struct{}{}
			if len(pending) == batchSize {
				w.flush(ctx, pending)
				pending = make(map[int64]struct{}, batchSize)
			}
		case <-ticker.C:
			w.flush(ctx, pending)
			pending = make(map[int64]struct{}, batchSize)
		case <-ctx.Done():
			logrus.Info("shutting down recount worker, flushing remaining comments...")
			w.flush(context.Background(), pending)
			return
		}
	}
}

func (w *recountWorker) flush(ctx context.Context, pending map[int64]struct{}) {
	if len(pending) == 0 {
		return
	}
	ids := make([]int64, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	if err := w.commentRepo.Recount(ctx, ids); err != nil {
		logrus.Errorf("recount counters for %d comment(s): %v", len(ids), err)
	}
}
