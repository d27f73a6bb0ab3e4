package congestion

import (
	"time"

	"github.com/quicforge/quicgo/std/types/optional"
)

// initialRTT is assumed before the first RTT sample, per RFC 9002.
const initialRTT = 333 * time.Millisecond

// RTTStats keeps the round-trip time estimate maintained by loss detection
// (RFC 9002 Section 5.3).
type RTTStats struct {
	latest   optional.Optional[time.Duration]
	minimum  time.Duration
	smoothed time.Duration
	variance time.Duration
}

// AddMeasurement feeds a new RTT sample into the estimator.
func (s *RTTStats) AddMeasurement(sample time.Duration) {
	if sample < 0 {
		return
	}

	if _, ok := s.latest.Get(); !ok {
		// first sample initializes the estimate
		s.minimum = sample
		s.smoothed = sample
		s.variance = sample / 2
	} else {
		if sample < s.minimum {
			s.minimum = sample
		}
		diff := s.smoothed - sample
		if diff < 0 {
			diff = -diff
		}
		s.variance = (3*s.variance + diff) / 4
		s.smoothed = (7*s.smoothed + sample) / 8
	}
	s.latest.Set(sample)
}

// Latest returns the most recent RTT sample, if any.
func (s *RTTStats) Latest() (time.Duration, bool) {
	return s.latest.Get()
}

// Smoothed returns the smoothed RTT estimate, or the protocol's initial
// assumption before any sample has been taken.
func (s *RTTStats) Smoothed() time.Duration {
	if _, ok := s.latest.Get(); !ok {
		return initialRTT
	}
	return s.smoothed
}

// Minimum returns the minimum RTT observed over the connection.
func (s *RTTStats) Minimum() time.Duration {
	if _, ok := s.latest.Get(); !ok {
		return initialRTT
	}
	return s.minimum
}

// Variance returns the mean RTT deviation.
func (s *RTTStats) Variance() time.Duration {
	if _, ok := s.latest.Get(); !ok {
		return initialRTT / 2
	}
	return s.variance
}

// LossState is the summary the loss detector hands to the congestion
// controller alongside each event. The controller only reads it; Now is
// sampled from the monotonic clock by the caller so that the controller
// itself stays deterministic.
type LossState struct {
	RTT RTTStats
	Now time.Time
}
