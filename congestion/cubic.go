package congestion

import "math"

// CUBIC constants, RFC 8312 Section 5.1.
const (
	cubicBeta = 0.7
	cubicC    = 0.4
)

// cubic implements CUBIC congestion control (RFC 8312).
// ref: https://tools.ietf.org/html/rfc8312
type cubic struct{}

func (cubic) String() string {
	return "cubic"
}

func (cubic) init(c *Controller, initcwnd uint32) {
	c.commonInit(initcwnd)
	c.cubic = cubicState{}
}

// wCubic evaluates W_cubic(t) = C*(t-K)^3 + w_max (RFC 8312 Eq. 1), using
// bytes instead of MSS as the unit.
func wCubic(c *Controller, tSec float64, maxDatagramSize uint16) uint32 {
	tk := tSec - c.cubic.k
	w := cubicC*tk*tk*tk*float64(maxDatagramSize) + float64(c.cubic.wMax)
	if w < 0 {
		return 0
	}
	if w > float64(c.cwndMaximum) {
		return c.cwndMaximum
	}
	return uint32(w)
}

// calcK computes K = cbrt(w_max/MSS * (1-beta)/C) (RFC 8312 Eq. 2).
func calcK(c *Controller, maxDatagramSize uint16) {
	c.cubic.k = math.Cbrt(float64(c.cubic.wMax) / float64(maxDatagramSize) * (1 - cubicBeta) / cubicC)
}

// wEst estimates the Reno-equivalent window
// W_est(t) = w_max*beta + 3*(1-beta)/(1+beta) * t/RTT * MSS (RFC 8312 Eq. 4).
func wEst(c *Controller, tSec, rttSec float64, maxDatagramSize uint16) uint32 {
	w := float64(c.cubic.wMax)*cubicBeta +
		3*(1-cubicBeta)/(1+cubicBeta)*(tSec/rttSec)*float64(maxDatagramSize)
	if w > float64(c.cwndMaximum) {
		return c.cwndMaximum
	}
	return uint32(w)
}

func (cubic) onAcked(c *Controller, loss *LossState, bytes uint32, largestAcked uint64, inflight uint32, maxDatagramSize uint16) {
	// no window growth while in recovery
	if c.inRecovery(largestAcked) {
		return
	}

	// slow start: exponential growth, bounded by bytes actually in flight
	if c.InSlowStart() {
		c.cwnd += bytes
		return
	}

	// congestion avoidance
	tSec := loss.Now.Sub(c.cubic.avoidanceStart).Seconds()
	rttSec := loss.RTT.Smoothed().Seconds()

	// target is the cubic curve one round-trip ahead (RFC 8312 Section 4.1)
	target := wCubic(c, tSec+rttSec, maxDatagramSize)
	est := wEst(c, tSec, rttSec, maxDatagramSize)

	if target < est {
		// TCP-friendly region (RFC 8312 Section 4.2)
		if est > c.cwnd {
			c.cwnd = est
		}
		return
	}

	// concave/convex region: approach the target, at most one datagram of
	// growth per window's worth of acknowledgments (RFC 8312 Sections 4.3, 4.4)
	if target > c.cwnd {
		c.cwnd += uint32(float64(maxDatagramSize) * float64(target-c.cwnd) / float64(c.cwnd))
	}
}

func (cubic) onLost(c *Controller, loss *LossState, bytes uint32, lostPN, nextPN uint64, maxDatagramSize uint16) {
	// losses within the current recovery episode are already accounted for
	if c.inRecovery(lostPN) {
		return
	}
	c.enterRecovery(nextPN)

	c.cubic.avoidanceStart = loss.Now
	c.cubic.wMax = c.cwnd

	// fast convergence (RFC 8312 Section 4.6)
	if c.cubic.wMax < c.cubic.wLastMax {
		c.cubic.wLastMax = c.cubic.wMax
		c.cubic.wMax = uint32(float64(c.cwnd) * (1 + cubicBeta) / 2)
	} else {
		c.cubic.wLastMax = c.cubic.wMax
	}
	calcK(c, maxDatagramSize)

	c.cwnd = uint32(float64(c.cwnd) * cubicBeta)
	if c.cwnd < c.cwndMinimum {
		c.cwnd = c.cwndMinimum
	}
	c.ssthresh = c.cwnd
}

func (cubic) onPersistentCongestion(c *Controller, loss *LossState) {
	c.cwnd = c.cwndMinimum
	c.ssthresh = math.MaxUint32
	c.cubic = cubicState{}
}
