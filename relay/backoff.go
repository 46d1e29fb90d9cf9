package relay

import "time"

// Modified from https://blog.gopheracademy.com/advent-2014/backoff/

type BackoffPolicy struct {
	Steps []time.Duration
}

var ReconnectPolicy = BackoffPolicy{
	[]time.Duration{
		3 * time.Second,
		10 * time.Second,
		30 * time.Second,
		60 * time.Second,
		5 * time.Minute,
	},
}

func (b BackoffPolicy) Duration(n int) time.Duration {
	if n >= len(b.Steps) {
		n = len(b.Steps) - 1
	}

	return b.Steps[n]
}
