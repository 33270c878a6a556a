package resilience

import "time"

// Config tunes retries and the per-operation circuit breaker.
// RetryMaxAttempts defaults to 1: nothing is retried unless configured.
type Config struct {
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	RetryMultiplier     float64

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

func DefaultConfig() Config {
	return Config{
		RetryMaxAttempts:    1,
		RetryInitialBackoff: 200 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Second,
		RetryMultiplier:     2,

		BreakerEnabled:          true,
		BreakerMinRequests:      5,
		BreakerFailureRatio:     0.6,
		BreakerOpenTimeout:      20 * time.Second,
		BreakerHalfOpenMaxCalls: 1,
	}
}

// normalize fills unset or out-of-range values from DefaultConfig.
// BreakerEnabled is taken as given.
func (c Config) normalize() Config {
	def := DefaultConfig()
	orDefault(&c.RetryMaxAttempts, def.RetryMaxAttempts)
	orDefault(&c.RetryInitialBackoff, def.RetryInitialBackoff)
	orDefault(&c.RetryMaxBackoff, def.RetryMaxBackoff)
	c.RetryMaxBackoff = max(c.RetryMaxBackoff, c.RetryInitialBackoff)
	if c.RetryMultiplier < 1 {
		c.RetryMultiplier = def.RetryMultiplier
	}

	orDefault(&c.BreakerMinRequests, def.BreakerMinRequests)
	orDefault(&c.BreakerOpenTimeout, def.BreakerOpenTimeout)
	orDefault(&c.BreakerHalfOpenMaxCalls, def.BreakerHalfOpenMaxCalls)
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		c.BreakerFailureRatio = def.BreakerFailureRatio
	}
	return c
}

func orDefault[T int | uint32 | time.Duration](v *T, def T) {
	if *v <= 0 {
		*v = def
	}
}
