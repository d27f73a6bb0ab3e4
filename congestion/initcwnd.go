package congestion

import "github.com/quicforge/quicgo/defn"

// maxInitCWNDBytes is the absolute cap on the initial window (RFC 9002
// Section 7.2).
const maxInitCWNDBytes = 14720

// CalcInitialCWND returns the starting congestion window for the given
// maximum UDP payload size:
//
//	min(10 * payload, max(2 * payload, 14720))
func CalcInitialCWND(maxUDPPayloadSize uint16) uint32 {
	payload := uint32(maxUDPPayloadSize)
	return min(defn.InitCWNDPackets*payload, max(defn.MinCWNDPackets*payload, maxInitCWNDBytes))
}
