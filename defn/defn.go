// Package defn provides shared protocol definitions for the QUIC transport
// internals: numeric constants negotiated or mandated by the protocol, and
// transport-level error codes.
package defn

const (
	// DefaultMaxUDPPayloadSize is the maximum UDP payload size assumed before
	// path MTU discovery, per RFC 9000 Section 14.
	DefaultMaxUDPPayloadSize uint16 = 1200

	// MinCWNDPackets is the minimum congestion window in packets.
	MinCWNDPackets = 2

	// InitCWNDPackets is the initial congestion window in packets.
	InitCWNDPackets = 10

	// MaxCWNDBytes is the ceiling applied to the congestion window.
	MaxCWNDBytes uint32 = 1 << 24

	// MaxConnectionIDLen is the maximum length of a connection ID in QUIC v1.
	MaxConnectionIDLen = 20

	// StatelessResetTokenLen is the length of a stateless reset token.
	StatelessResetTokenLen = 16

	// ActiveConnectionIDLimit is the number of connection IDs issued by the
	// peer that we retain at any moment (our active_connection_id_limit
	// transport parameter).
	ActiveConnectionIDLimit = 8
)
