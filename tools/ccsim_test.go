package tools

import (
	"testing"

	"github.com/quicforge/quicgo/congestion"
	"github.com/stretchr/testify/require"
)

func TestCCSimLossFree(t *testing.T) {
	sim := ccSim{scenario: CCSimScenario{
		Congestion: congestion.Config{Algorithm: "reno"},
		Rounds:     20,
	}}

	rounds := sim.simulate()
	require.Len(t, rounds, 20)

	// loss-free slow start grows monotonically
	prev := uint32(0)
	for _, r := range rounds {
		require.GreaterOrEqual(t, r.CWND, prev)
		require.Equal(t, uint32(0), r.Episodes)
		prev = r.CWND
	}
}

func TestCCSimPeriodicLoss(t *testing.T) {
	sim := ccSim{scenario: CCSimScenario{
		Congestion: congestion.Config{Algorithm: "cubic"},
		Rounds:     30,
		LossEvery:  10,
	}}

	rounds := sim.simulate()
	require.Equal(t, uint32(3), rounds[len(rounds)-1].Episodes)

	// the window is cut on the loss round
	require.Less(t, rounds[9].CWND, rounds[8].CWND)
}
