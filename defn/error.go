package defn

import "fmt"

// TransportError is a QUIC transport error code (RFC 9000 Section 20.1).
// A non-zero code closes the connection when propagated by the caller.
type TransportError uint64

const (
	// ErrConnectionIDLimit indicates the peer exceeded the negotiated
	// active connection ID limit.
	ErrConnectionIDLimit TransportError = 0x09

	// ErrProtocolViolation indicates a generic protocol rule was broken.
	ErrProtocolViolation TransportError = 0x0a
)

func (e TransportError) Error() string {
	switch e {
	case ErrConnectionIDLimit:
		return "CONNECTION_ID_LIMIT_ERROR"
	case ErrProtocolViolation:
		return "PROTOCOL_VIOLATION"
	default:
		return fmt.Sprintf("TRANSPORT_ERROR(0x%x)", uint64(e))
	}
}

// Code returns the numeric error code to place in a CONNECTION_CLOSE frame.
func (e TransportError) Code() uint64 {
	return uint64(e)
}
