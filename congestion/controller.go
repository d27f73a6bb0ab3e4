// Package congestion implements the congestion controller of the QUIC
// transport: a modified Reno with 0.7 beta reduction and CUBIC (RFC 8312),
// sharing one slow-start / avoidance / recovery state machine.
//
// A Controller is exclusively owned by one connection and must only be
// invoked from that connection's processing goroutine.
package congestion

import (
	"math"
	"time"

	"github.com/quicforge/quicgo/defn"
	"github.com/quicforge/quicgo/std/log"
	"github.com/quicforge/quicgo/std/utils"
)

// Type selects the congestion control algorithm.
type Type int

const (
	// TypeRenoModified is Reno with 0.7 beta reduction.
	TypeRenoModified Type = iota
	// TypeCubic is CUBIC (RFC 8312).
	TypeCubic
)

// algorithm is the capability surface of one congestion control algorithm.
// Implementations are stateless; all mutable state lives in the Controller.
type algorithm interface {
	String() string
	init(c *Controller, initcwnd uint32)
	onAcked(c *Controller, loss *LossState, bytes uint32, largestAcked uint64, inflight uint32, maxDatagramSize uint16)
	onLost(c *Controller, loss *LossState, bytes uint32, lostPN, nextPN uint64, maxDatagramSize uint16)
	onPersistentCongestion(c *Controller, loss *LossState)
}

// The two well-known algorithm instances, selected once at construction.
var (
	renoImpl  algorithm = renoModified{}
	cubicImpl algorithm = cubic{}
)

// renoState accumulates acknowledged bytes during congestion avoidance.
type renoState struct {
	stash uint32
}

// cubicState holds the cubic curve parameters (RFC 8312).
type cubicState struct {
	k              float64   // time offset, in seconds, to reach wMax again
	wMax           uint32    // window at the latest congestion event
	wLastMax       uint32    // wMax of the previous event, for fast convergence
	avoidanceStart time.Time // timestamp of the latest congestion event
}

// Controller holds the congestion window state of one connection and
// dispatches loss-detection events to the selected algorithm.
type Controller struct {
	typ  Type
	impl algorithm

	cwnd        uint32
	ssthresh    uint32
	recoveryEnd uint64 // packet-number watermark ending the current recovery episode

	reno  renoState
	cubic cubicState

	cwndInitial          uint32
	cwndExitingSlowStart uint32
	cwndMinimum          uint32
	cwndMaximum          uint32

	numLossEpisodes uint32
}

// New creates a congestion controller with the given initial window.
// An unrecognized algorithm name deterministically selects Reno-Modified.
func New(conf Config, initcwnd uint32) *Controller {
	c := &Controller{}
	switch conf.Type() {
	case TypeCubic:
		c.typ = TypeCubic
		c.impl = cubicImpl
	default:
		c.typ = TypeRenoModified
		c.impl = renoImpl
	}
	c.impl.init(c, initcwnd)
	return c
}

// log identifier
func (c *Controller) String() string {
	return c.impl.String()
}

// commonInit resets the shared window state. Algorithm initializers call
// this before clearing their own fields.
func (c *Controller) commonInit(initcwnd uint32) {
	typ, impl := c.typ, c.impl
	*c = Controller{typ: typ, impl: impl}

	c.cwndMinimum = defn.MinCWNDPackets * uint32(defn.DefaultMaxUDPPayloadSize)
	c.cwndMaximum = defn.MaxCWNDBytes
	c.cwnd = utils.Clamp(initcwnd, c.cwndMinimum, c.cwndMaximum)
	c.cwndInitial = c.cwnd
	c.ssthresh = math.MaxUint32
}

// OnAcked is called once per acknowledgment event for newly acknowledged
// bytes. The window never decreases here.
func (c *Controller) OnAcked(loss *LossState, bytes uint32, largestAcked uint64, inflight uint32, maxDatagramSize uint16) {
	c.impl.onAcked(c, loss, bytes, largestAcked, inflight, maxDatagramSize)
	c.clampWindow()

	log.Trace(c, "Bytes acknowledged", "bytes", bytes, "cwnd", c.cwnd)
}

// OnLost is called when loss detection declares a packet lost. nextPN is the
// next unsent packet number; losses of packets sent before the current
// recovery watermark are ignored so that one congestion event detected via
// several lost packets reduces the window only once.
func (c *Controller) OnLost(loss *LossState, bytes uint32, lostPN, nextPN uint64, maxDatagramSize uint16) {
	episodes := c.numLossEpisodes
	c.impl.onLost(c, loss, bytes, lostPN, nextPN, maxDatagramSize)
	c.clampWindow()

	if c.numLossEpisodes != episodes {
		log.Debug(c, "Congestion event", "lostPn", lostPN,
			"cwnd", c.cwnd, "ssthresh", c.ssthresh, "episodes", c.numLossEpisodes)
	}
}

// OnPersistentCongestion is invoked when loss detection observes an extended
// period without acknowledgments. The window collapses to its minimum and
// the connection re-enters slow start.
func (c *Controller) OnPersistentCongestion(loss *LossState) {
	c.impl.onPersistentCongestion(c, loss)
	c.clampWindow()

	log.Debug(c, "Persistent congestion", "cwnd", c.cwnd)
}

func (c *Controller) clampWindow() {
	c.cwnd = utils.Clamp(c.cwnd, c.cwndMinimum, c.cwndMaximum)
}

// enterRecovery records a new loss episode. Further losses of packets sent
// before nextPN belong to this episode.
func (c *Controller) enterRecovery(nextPN uint64) {
	c.recoveryEnd = nextPN
	c.numLossEpisodes++

	// record the window at the first loss, which ends slow start
	if c.cwndExitingSlowStart == 0 {
		c.cwndExitingSlowStart = c.cwnd
	}
}

func (c *Controller) inRecovery(pn uint64) bool {
	return pn < c.recoveryEnd
}

// Type returns the algorithm selected at construction.
func (c *Controller) Type() Type {
	return c.typ
}

// CWND returns the current congestion window in bytes. The send scheduler
// reads this to admit new data.
func (c *Controller) CWND() uint32 {
	return c.cwnd
}

// Ssthresh returns the slow start threshold. It is only meaningful once the
// connection has exited slow start.
func (c *Controller) Ssthresh() uint32 {
	return c.ssthresh
}

// InSlowStart reports whether the window still grows exponentially.
func (c *Controller) InSlowStart() bool {
	return c.cwnd < c.ssthresh
}

// InitialCWND returns the window the controller started with.
func (c *Controller) InitialCWND() uint32 {
	return c.cwndInitial
}

// ExitingSlowStartCWND returns the window recorded when slow start ended,
// or 0 while the connection is still in slow start.
func (c *Controller) ExitingSlowStartCWND() uint32 {
	return c.cwndExitingSlowStart
}

// MinimumCWND returns the window floor.
func (c *Controller) MinimumCWND() uint32 {
	return c.cwndMinimum
}

// MaximumCWND returns the window ceiling.
func (c *Controller) MaximumCWND() uint32 {
	return c.cwndMaximum
}

// NumLossEpisodes returns the number of window-reduction events so far.
func (c *Controller) NumLossEpisodes() uint32 {
	return c.numLossEpisodes
}
