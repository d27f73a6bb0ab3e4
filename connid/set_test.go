package connid_test

import (
	"testing"

	"github.com/quicforge/quicgo/connid"
	"github.com/quicforge/quicgo/defn"
	"github.com/stretchr/testify/require"
)

func cidBytes(b byte) []byte {
	return []byte{b, b, b, b, b, b, b, b}
}

func token(b byte) []byte {
	tok := make([]byte, defn.StatelessResetTokenLen)
	for i := range tok {
		tok[i] = b
	}
	return tok
}

func TestRegister(t *testing.T) {
	set := connid.NewSet()

	require.NoError(t, set.Register(0, cidBytes(0xa0), token(0xa0)))
	require.NoError(t, set.Register(3, cidBytes(0xa3), token(0xa3)))
	require.ElementsMatch(t, []uint64{0, 3}, set.ActiveSequences())

	current, ok := set.Current()
	require.True(t, ok)
	require.Equal(t, uint64(0), current.Sequence())
	require.True(t, current.CID().Equal(cidBytes(0xa0)))
}

func TestRegisterDuplicate(t *testing.T) {
	set := connid.NewSet()

	require.NoError(t, set.Register(3, cidBytes(0xa3), token(0xa3)))

	// an identical retransmission is a silent no-op
	require.NoError(t, set.Register(3, cidBytes(0xa3), token(0xa3)))
	require.ElementsMatch(t, []uint64{3}, set.ActiveSequences())

	// conflicting data under a known sequence is a protocol violation
	require.ErrorIs(t, set.Register(3, cidBytes(0xb3), token(0xa3)), defn.ErrProtocolViolation)
	require.ErrorIs(t, set.Register(3, cidBytes(0xa3), token(0xb3)), defn.ErrProtocolViolation)
}

func TestRegisterMalformed(t *testing.T) {
	set := connid.NewSet()

	require.ErrorIs(t, set.Register(0, nil, token(1)), defn.ErrProtocolViolation)
	require.ErrorIs(t, set.Register(0, make([]byte, defn.MaxConnectionIDLen+1), token(1)),
		defn.ErrProtocolViolation)
	require.ErrorIs(t, set.Register(0, cidBytes(1), []byte{1, 2, 3}), defn.ErrProtocolViolation)
}

func TestRegisterLimit(t *testing.T) {
	set := connid.NewSet()

	// sequences up to the active limit are expected from the start
	last := uint64(defn.ActiveConnectionIDLimit - 1)
	require.NoError(t, set.Register(last, cidBytes(1), token(1)))

	// one past the limit is a violation
	require.ErrorIs(t, set.Register(last+1, cidBytes(2), token(2)), defn.ErrConnectionIDLimit)

	// retiring a CID advances the window of acceptable sequences
	require.True(t, set.Unregister(last))
	require.NoError(t, set.Register(last+1, cidBytes(2), token(2)))
	require.ErrorIs(t, set.Register(last+2, cidBytes(3), token(3)), defn.ErrConnectionIDLimit)
}

func TestUnregister(t *testing.T) {
	set := connid.NewSet()

	require.NoError(t, set.Register(2, cidBytes(2), token(2)))
	require.True(t, set.Unregister(2))
	require.Empty(t, set.ActiveSequences())

	// already removed, or never present
	require.False(t, set.Unregister(2))
	require.False(t, set.Unregister(1))
}

func TestStaleRegisterAfterUnregister(t *testing.T) {
	set := connid.NewSet()

	require.NoError(t, set.Register(3, cidBytes(3), token(3)))
	require.True(t, set.Unregister(3))

	// a late NEW_CONNECTION_ID for the retired sequence is recognized as
	// stale: accepted silently, never reactivated
	require.NoError(t, set.Register(3, cidBytes(3), token(3)))
	require.Empty(t, set.ActiveSequences())
}

func TestUnregisterPriorTo(t *testing.T) {
	set := connid.NewSet()

	for _, seq := range []uint64{1, 2, 3, 6, 7} {
		require.NoError(t, set.Register(seq, cidBytes(byte(seq)), token(byte(seq))))
	}

	retired := set.UnregisterPriorTo(5, nil)
	require.ElementsMatch(t, []uint64{1, 2, 3}, retired)
	require.ElementsMatch(t, []uint64{6, 7}, set.ActiveSequences())

	// retired sequences are remembered as stale
	require.NoError(t, set.Register(2, cidBytes(2), token(2)))
	require.ElementsMatch(t, []uint64{6, 7}, set.ActiveSequences())
}

func TestUnregisterPriorToNothingMatches(t *testing.T) {
	set := connid.NewSet()

	require.NoError(t, set.Register(4, cidBytes(4), token(4)))
	retired := set.UnregisterPriorTo(4, nil)
	require.Empty(t, retired)
	require.ElementsMatch(t, []uint64{4}, set.ActiveSequences())
}

func TestPromoteLowest(t *testing.T) {
	set := connid.NewSet()

	require.False(t, set.PromoteLowest())

	require.NoError(t, set.Register(2, cidBytes(2), token(2)))
	require.NoError(t, set.Register(5, cidBytes(5), token(5)))
	_, ok := set.Current()
	require.False(t, ok)

	require.True(t, set.PromoteLowest())
	current, ok := set.Current()
	require.True(t, ok)
	require.Equal(t, uint64(2), current.Sequence())
	require.True(t, current.CID().Equal(cidBytes(2)))

	// promoting again keeps the same CID current
	require.True(t, set.PromoteLowest())
	current, _ = set.Current()
	require.Equal(t, uint64(2), current.Sequence())
}

func TestReset(t *testing.T) {
	set := connid.NewSet()

	require.NoError(t, set.Register(1, cidBytes(1), token(1)))
	require.True(t, set.Unregister(1))

	set.Reset()
	require.Empty(t, set.ActiveSequences())
	require.NoError(t, set.Register(1, cidBytes(9), token(9)))
	require.ElementsMatch(t, []uint64{1}, set.ActiveSequences())
}
