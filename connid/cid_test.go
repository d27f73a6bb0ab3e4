package connid_test

import (
	"testing"

	"github.com/quicforge/quicgo/connid"
	"github.com/stretchr/testify/require"
)

func TestConnectionID(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	cid := connid.MakeConnectionID(raw)

	require.Equal(t, 4, cid.Len())
	require.Equal(t, raw, cid.Bytes())
	require.True(t, cid.Equal(raw))
	require.False(t, cid.Equal([]byte{1, 2, 3}))
}

func TestConnectionIDFingerprint(t *testing.T) {
	a := connid.MakeConnectionID([]byte{1, 2, 3, 4})
	b := connid.MakeConnectionID([]byte{5, 6, 7, 8})

	// log output carries a fingerprint, not the raw CID
	require.Regexp(t, `^cid-[0-9a-f]{8}$`, a.String())
	require.Equal(t, a.String(), connid.MakeConnectionID([]byte{1, 2, 3, 4}).String())
	require.NotEqual(t, a.String(), b.String())
}
