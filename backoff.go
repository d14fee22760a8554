package srp

import (
	"math"
	"time"
)

// timerPolicy computes adaptive retransmission timeouts. The deadline grows
// exponentially with the retry count of a sequence number, capped at
// retryCap, so that repeated loss of the same segment backs off instead of
// flooding the link.
type timerPolicy struct {
	baseTimeout  time.Duration
	growthFactor float64
	retryCap     int
}

func (tp timerPolicy) timeout(retries int) time.Duration {
	if retries > tp.retryCap {
		retries = tp.retryCap
	}
	return time.Duration(float64(tp.baseTimeout) * math.Pow(tp.growthFactor, float64(retries)))
}

func (tp timerPolicy) expired(sentAt time.Time, retries int, now time.Time) bool {
	return now.Sub(sentAt) > tp.timeout(retries)
}
