// Package resilience wraps calls to upstream hazard data services with
// circuit breakers, timeouts and retries, and tracks their health.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig configures the breaker guarding one upstream service.
type CircuitBreakerConfig struct {
	// Name is the provider name, shared with the registry and metrics.
	Name string

	// MaxRequests is the number of probe calls let through while half-open.
	// Default: 1
	MaxRequests uint32

	// Interval clears the counts while closed. Zero keeps them until a trip.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing the upstream again.
	// Default: 60 seconds
	Timeout time.Duration

	// ReadyToTrip decides when the upstream is considered down.
	// If nil, uses DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is called on every transition, see LogStateChanges.
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultCircuitBreakerConfig returns the breaker used for every hazard provider.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     60 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the circuit once at least 5 calls were made and
// half of them failed.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

// LogStateChanges returns an OnStateChange hook that logs every transition.
func LogStateChanges(logger zerolog.Logger) func(name string, from, to gobreaker.State) {
	return func(name string, from, to gobreaker.State) {
		event := logger.Info()
		if to == gobreaker.StateOpen {
			event = logger.Warn()
		}
		event.
			Str("provider", name).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("circuit breaker state changed")
	}
}

// AbandonedError wraps the error of a call whose caller stopped waiting,
// for example a sibling lookup failing in the same summary or the client
// disconnecting. It says nothing about the upstream's health.
type AbandonedError struct {
	Err error
}

func (e *AbandonedError) Error() string {
	return "call abandoned by caller: " + e.Err.Error()
}

func (e *AbandonedError) Unwrap() error {
	return e.Err
}

// abandoned wraps err in an AbandonedError when ctx is already done.
func abandoned(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return &AbandonedError{Err: err}
	}
	return err
}

// IsAbandoned reports whether err came from a call the caller gave up on.
func IsAbandoned(err error) bool {
	var ae *AbandonedError
	return errors.As(err, &ae)
}

// NewCircuitBreaker creates a breaker that ignores abandoned calls.
func NewCircuitBreaker[T any](cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: cfg.ReadyToTrip,
	}
	settings.IsSuccessful = func(err error) bool {
		return err == nil || IsAbandoned(err)
	}

	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}
