package network

import (
	"context"
	"fmt"
	"time"

	"github.com/shopfetch/shopfetch/log"
)

// retry calls fn until it succeeds or has run times+1 times, waiting delay
// between attempts. The delay is fixed: no growth, no jitter.
func retry(ctx context.Context, times int, delay time.Duration, sleep sleepFunc, fn func(attempt int) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}

		if attempt >= times {
			return err
		}

		log.WithFields(log.Fields{
			"attempt": attempt + 1,
			"left":    times - attempt,
			"delay":   delay,
		}).Warnf("attempt failed, retrying: %v", err)

		if serr := sleep(ctx, delay); serr != nil {
			return fmt.Errorf("%w: %w", serr, err)
		}
	}
}
