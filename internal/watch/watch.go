// Package watch runs a query round against a single server on a fixed
// cadence, the CLI's only looping construct around the stateless engine.
package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Run invokes round once per interval until ctx is canceled or count rounds
// have run (count 0 means no bound). The first round fires immediately.
// Errors from a round are logged and do not stop the loop.
func Run(ctx context.Context, interval time.Duration, count int, round func() error) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for i := 0; count == 0 || i < count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			log.Debug().Err(err).Msg("Watch loop stopped")
			return
		}

		if err := round(); err != nil {
			log.Error().Err(err).Msg("Query round failed")
		}
	}
}
