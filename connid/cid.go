package connid

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/quicforge/quicgo/defn"
)

// ConnectionID is an opaque connection ID issued by the peer.
type ConnectionID struct {
	length uint8
	data   [defn.MaxConnectionIDLen]byte
}

// MakeConnectionID copies b into a ConnectionID. b must be at most
// defn.MaxConnectionIDLen bytes.
func MakeConnectionID(b []byte) ConnectionID {
	cid := ConnectionID{length: uint8(len(b))}
	copy(cid.data[:], b)
	return cid
}

// Bytes returns the raw CID.
func (c ConnectionID) Bytes() []byte {
	return c.data[:c.length]
}

// Len returns the length of the CID in bytes.
func (c ConnectionID) Len() int {
	return int(c.length)
}

// Equal reports whether the CID consists of exactly the bytes b.
func (c ConnectionID) Equal(b []byte) bool {
	return bytes.Equal(c.Bytes(), b)
}

// String returns a short fingerprint for log output; raw CIDs are routing
// material and are kept out of logs.
func (c ConnectionID) String() string {
	return fmt.Sprintf("cid-%08x", uint32(xxhash.Sum64(c.Bytes())))
}
