// internal/pkg/mirror/mirror.go
package mirror

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Go dispatches a best-effort remote mirror call on its own goroutine.
// Failures are logged and swallowed: the local write has already committed
// and must never be rolled back or blocked by replication.
func Go(log *logrus.Logger, op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.WithError(err).WithField("op", op).Warn("remote mirror failed; local state remains the source of truth")
		}
	}()
}
