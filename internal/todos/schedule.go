package todos

import (
	"context"
	"log/slog"
	"time"
)

// farFuture is scheduled first when clearing, since the application does
// not unschedule an item that has no pending date
var farFuture = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.Local)

// clearActivationDate removes the item's activation date. A failure of the
// far-future step does not stop the clear itself
func (s *Service) clearActivationDate(ctx context.Context, log *slog.Logger, itemID string) outcome {
	when := farFuture
	if err := s.store.Schedule(ctx, itemID, &when); err != nil {
		log.Debug("far-future schedule failed, clearing anyway", "err", err)
	}
	if err := s.store.Schedule(ctx, itemID, nil); err != nil {
		return skipped("clear activation date: %v", err)
	}
	return done()
}
