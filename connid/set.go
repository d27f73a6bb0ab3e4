// Package connid tracks the connection IDs the peer has issued to address
// this connection. A fixed-capacity set records active CIDs by sequence
// number, detects stale and conflicting NEW_CONNECTION_ID frames, and
// supports bulk retirement.
//
// A Set is exclusively owned by one connection and must only be accessed
// from that connection's processing goroutine.
package connid

import (
	"bytes"

	"github.com/quicforge/quicgo/defn"
	"github.com/quicforge/quicgo/std/log"
)

// ReceivedCID is one slot of the set. An inactive slot is "reserved": it
// names the sequence number it is waiting for, so that a late frame
// referring to an already retired sequence is recognized as stale.
type ReceivedCID struct {
	active   bool
	sequence uint64
	cid      ConnectionID
	token    [defn.StatelessResetTokenLen]byte
}

// Active reports whether the slot holds a CID issued by the peer and not
// yet retired.
func (r ReceivedCID) Active() bool {
	return r.active
}

// Sequence returns the sequence number associated with the slot.
func (r ReceivedCID) Sequence() uint64 {
	return r.sequence
}

// CID returns the connection ID held by the slot.
func (r ReceivedCID) CID() ConnectionID {
	return r.cid
}

// Token returns the stateless reset token associated with the CID.
func (r ReceivedCID) Token() [defn.StatelessResetTokenLen]byte {
	return r.token
}

// Set holds the active connection IDs received from the peer. Slot 0 holds
// the current (in use) CID, used when emitting packets.
//
// The slots always name defn.ActiveConnectionIDLimit distinct sequence
// numbers, each either active or reserved. Retiring a CID re-reserves its
// slot for the next expected sequence number, which is how the window of
// acceptable sequences advances without unbounded memory.
type Set struct {
	cids [defn.ActiveConnectionIDLimit]ReceivedCID

	// the largest sequence number we are willing to accept
	largestSequenceExpected uint64
}

// NewSet returns a set expecting the peer's initial sequence numbers
// 0 .. ActiveConnectionIDLimit-1.
func NewSet() *Set {
	s := &Set{}
	s.Reset()
	return s
}

// Reset clears all slots, reserving slot i for sequence i.
func (s *Set) Reset() {
	for i := range s.cids {
		s.cids[i] = ReceivedCID{sequence: uint64(i)}
	}
	s.largestSequenceExpected = defn.ActiveConnectionIDLimit - 1
}

// log identifier
func (s *Set) String() string {
	return "received-cid-set"
}

// Register records a CID issued by the peer via a NEW_CONNECTION_ID frame.
//
// It returns nil when the CID is stored, and also when the frame is a
// retransmitted duplicate or refers to an already retired sequence (both
// are silently ignored). It returns defn.ErrConnectionIDLimit when the peer
// issues more CIDs than permitted, and defn.ErrProtocolViolation when the
// frame is malformed or conflicts with what is already registered under the
// same sequence number.
func (s *Set) Register(sequence uint64, cid []byte, token []byte) error {
	if len(cid) == 0 || len(cid) > defn.MaxConnectionIDLen ||
		len(token) != defn.StatelessResetTokenLen {
		return defn.ErrProtocolViolation
	}

	// an active slot with this sequence must carry identical data
	for i := range s.cids {
		c := &s.cids[i]
		if c.active && c.sequence == sequence {
			if c.cid.Equal(cid) && bytes.Equal(c.token[:], token) {
				return nil // retransmitted frame
			}
			return defn.ErrProtocolViolation
		}
	}

	// find the slot reserved for this sequence
	var dst *ReceivedCID
	for i := range s.cids {
		if !s.cids[i].active && s.cids[i].sequence == sequence {
			dst = &s.cids[i]
			break
		}
	}
	if dst == nil {
		if sequence > s.largestSequenceExpected {
			// the peer is issuing more CIDs than the active limit allows
			return defn.ErrConnectionIDLimit
		}
		return nil // stale: the sequence has already been retired
	}

	dst.active = true
	dst.cid = MakeConnectionID(cid)
	copy(dst.token[:], token)

	log.Trace(s, "Registered CID", "seq", sequence, "cid", dst.cid)
	return nil
}

// retire clears slot i to reserved, waiting for the next expected sequence.
func (s *Set) retire(i int) {
	s.largestSequenceExpected++
	s.cids[i] = ReceivedCID{sequence: s.largestSequenceExpected}
}

// Unregister retires the CID registered under sequence. It reports whether
// an active CID was found; the caller decides whether retiring an unknown
// sequence is a protocol violation or an idempotent no-op.
func (s *Set) Unregister(sequence uint64) bool {
	for i := range s.cids {
		if s.cids[i].active && s.cids[i].sequence == sequence {
			s.retire(i)
			log.Trace(s, "Retired CID", "seq", sequence)
			return true
		}
	}
	return false
}

// UnregisterPriorTo retires every active CID with a sequence number smaller
// than priorTo, appending the retired sequence numbers to retired. The
// caller echoes them in outgoing RETIRE_CONNECTION_ID frames so that the
// peer stops honoring the associated stateless reset tokens.
func (s *Set) UnregisterPriorTo(priorTo uint64, retired []uint64) []uint64 {
	for i := range s.cids {
		if s.cids[i].active && s.cids[i].sequence < priorTo {
			retired = append(retired, s.cids[i].sequence)
			s.retire(i)
		}
	}
	return retired
}

// ActiveSequences returns the sequence numbers of all active CIDs, in slot
// order.
func (s *Set) ActiveSequences() []uint64 {
	seqs := make([]uint64, 0, len(s.cids))
	for i := range s.cids {
		if s.cids[i].active {
			seqs = append(seqs, s.cids[i].sequence)
		}
	}
	return seqs
}

// Current returns the CID in slot 0 and whether it is active.
func (s *Set) Current() (ReceivedCID, bool) {
	return s.cids[0], s.cids[0].active
}

// PromoteLowest rotates the active CID with the lowest sequence number into
// slot 0, making it current. It reports whether any active CID exists. The
// rotation policy is ours; callers with their own policy may swap slots by
// other means.
func (s *Set) PromoteLowest() bool {
	lowest := -1
	for i := range s.cids {
		if s.cids[i].active && (lowest < 0 || s.cids[i].sequence < s.cids[lowest].sequence) {
			lowest = i
		}
	}
	if lowest < 0 {
		return false
	}
	if lowest != 0 {
		s.cids[0], s.cids[lowest] = s.cids[lowest], s.cids[0]
		log.Trace(s, "Promoted CID", "seq", s.cids[0].sequence)
	}
	return true
}
