package scheduler

import (
	"context"
	"time"

	"tradescope/internal/logger"
)

// DigestFunc renders a journal digest for the log. Errors are logged
// and do not stop the loop.
type DigestFunc func(ctx context.Context) (string, error)

// Digest runs fn on a fixed interval until ctx is cancelled. The first
// run happens after one full interval so a freshly started service with
// an empty store does not log a useless digest at boot.
type Digest struct {
	interval time.Duration
	fn       DigestFunc
}

func NewDigest(interval time.Duration, fn DigestFunc) *Digest {
	return &Digest{interval: interval, fn: fn}
}

func (d *Digest) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	logger.Infof("digest loop started, interval %s", d.interval)
	for {
		select {
		case <-ctx.Done():
			logger.Infof("digest loop stopped")
			return ctx.Err()
		case <-ticker.C:
			block, err := d.fn(ctx)
			if err != nil {
				logger.Warnf("digest generation failed: %v", err)
				continue
			}
			logger.InfoBlock(block)
		}
	}
}
