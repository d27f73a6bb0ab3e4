package congestion

import "math"

// renoBeta is the window reduction factor of the modified Reno.
const renoBeta = 0.7

// renoModified implements Reno with 0.7 beta reduction.
type renoModified struct{}

func (renoModified) String() string {
	return "reno-modified"
}

func (renoModified) init(c *Controller, initcwnd uint32) {
	c.commonInit(initcwnd)
	c.reno = renoState{}
}

func (renoModified) onAcked(c *Controller, loss *LossState, bytes uint32, largestAcked uint64, inflight uint32, maxDatagramSize uint16) {
	// no window growth while in recovery
	if c.inRecovery(largestAcked) {
		return
	}

	// slow start: exponential growth, bounded by bytes actually in flight
	if c.InSlowStart() {
		c.cwnd += bytes
		return
	}

	// congestion avoidance: one datagram per window's worth of acknowledgments
	c.reno.stash += bytes
	if c.reno.stash < c.cwnd {
		return
	}
	count := c.reno.stash / c.cwnd
	c.reno.stash -= count * c.cwnd
	c.cwnd += count * uint32(maxDatagramSize)
}

func (renoModified) onLost(c *Controller, loss *LossState, bytes uint32, lostPN, nextPN uint64, maxDatagramSize uint16) {
	// losses within the current recovery episode are already accounted for
	if c.inRecovery(lostPN) {
		return
	}
	c.enterRecovery(nextPN)

	c.cwnd = uint32(float64(c.cwnd) * renoBeta)
	if c.cwnd < c.cwndMinimum {
		c.cwnd = c.cwndMinimum
	}
	c.ssthresh = c.cwnd
}

func (renoModified) onPersistentCongestion(c *Controller, loss *LossState) {
	c.cwnd = c.cwndMinimum
	c.ssthresh = math.MaxUint32
	c.reno = renoState{}
}
