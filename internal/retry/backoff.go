package retry

import "time"

// ExponentialBackoff returns delay based on attempt number.
// The delay doubles with each attempt: base * 2^attempt, capped at max.
func ExponentialBackoff(attempt int, base, max time.Duration) time.Duration {
	d := base * (1 << attempt)
	if d <= 0 || d > max {
		return max
	}
	return d
}
