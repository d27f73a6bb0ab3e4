package tools

import (
	"time"

	"github.com/quicforge/quicgo/congestion"
	"github.com/quicforge/quicgo/defn"
	"github.com/quicforge/quicgo/std/log"
	"github.com/quicforge/quicgo/std/utils/toolutils"
	"github.com/spf13/cobra"
)

// CCSimScenario is the yaml description of a synthetic ack/loss trace.
type CCSimScenario struct {
	// Congestion controller under test.
	Congestion congestion.Config `json:"congestion"`
	// Maximum UDP payload size in bytes.
	MaxUDPPayloadSize uint16 `json:"max_udp_payload_size"`
	// Round-trip time in milliseconds.
	RttMs int `json:"rtt_ms"`
	// Number of round trips to simulate.
	Rounds int `json:"rounds"`
	// Declare a packet lost every N rounds; 0 disables losses.
	LossEvery int `json:"loss_every"`
}

// CCSimRound is the controller state observed after one simulated round trip.
type CCSimRound struct {
	Round    int
	CWND     uint32
	Episodes uint32
}

type ccSim struct {
	scenario CCSimScenario
}

// CmdCCSim creates the congestion controller simulator command.
func CmdCCSim() *cobra.Command {
	sim := ccSim{}

	return &cobra.Command{
		GroupID: "tools",
		Use:     "ccsim SCENARIO-FILE",
		Short:   "Replay a synthetic ack/loss trace through a congestion controller",
		Args:    cobra.ExactArgs(1),
		Example: `  quicgo ccsim scenario.yml`,
		Run:     sim.run,
	}
}

// log identifier
func (s *ccSim) String() string {
	return "ccsim"
}

func (s *ccSim) run(_ *cobra.Command, args []string) {
	toolutils.ReadYaml(&s.scenario, args[0])

	for _, round := range s.simulate() {
		log.Info(s, "Round trip", "round", round.Round,
			"cwnd", round.CWND, "episodes", round.Episodes)
	}
}

// simulate replays the scenario: each round trip acknowledges a full window
// and, on loss rounds, declares the oldest outstanding packet lost first.
func (s *ccSim) simulate() []CCSimRound {
	scen := s.scenario
	if scen.MaxUDPPayloadSize == 0 {
		scen.MaxUDPPayloadSize = defn.DefaultMaxUDPPayloadSize
	}
	if scen.RttMs <= 0 {
		scen.RttMs = 100
	}
	if scen.Rounds <= 0 {
		scen.Rounds = 50
	}

	rtt := time.Duration(scen.RttMs) * time.Millisecond
	cc := congestion.New(scen.Congestion, congestion.CalcInitialCWND(scen.MaxUDPPayloadSize))

	loss := &congestion.LossState{Now: time.Now()}
	rounds := make([]CCSimRound, 0, scen.Rounds)
	nextPN := uint64(0)

	for r := 1; r <= scen.Rounds; r++ {
		loss.Now = loss.Now.Add(rtt)
		loss.RTT.AddMeasurement(rtt)

		// one window of packets sent and acknowledged per round trip
		inflight := cc.CWND()
		sent := uint64(inflight / uint32(scen.MaxUDPPayloadSize))
		if sent == 0 {
			sent = 1
		}
		oldest := nextPN
		nextPN += sent

		if scen.LossEvery > 0 && r%scen.LossEvery == 0 {
			cc.OnLost(loss, uint32(scen.MaxUDPPayloadSize), oldest, nextPN, scen.MaxUDPPayloadSize)
		} else {
			cc.OnAcked(loss, inflight, nextPN-1, inflight, scen.MaxUDPPayloadSize)
		}

		rounds = append(rounds, CCSimRound{Round: r, CWND: cc.CWND(), Episodes: cc.NumLossEpisodes()})
	}
	return rounds
}
