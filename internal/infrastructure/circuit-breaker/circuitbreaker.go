package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// CreateCircuitBreaker trips after at least 3 requests with a 60% failure ratio and
// lets a trial request through after openTimeout (gobreaker's 60s default when zero).
// A caller abandoning its request is not a failure of the remote side.
func CreateCircuitBreaker(name string, openTimeout time.Duration) *gobreaker.CircuitBreaker[[]byte] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = openTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("component", "CircuitBreaker").Str("name", name).
			Str("from", from.String()).Str("to", to.String()).Msg("state changed")
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](st)

	return cb
}
