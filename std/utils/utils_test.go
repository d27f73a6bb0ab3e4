package utils_test

import (
	"testing"

	"github.com/quicforge/quicgo/std/utils"
	"github.com/stretchr/testify/require"
)

func TestIdPtr(t *testing.T) {
	p := utils.IdPtr(uint64(42))
	require.Equal(t, uint64(42), *p)
}

func TestIf(t *testing.T) {
	require.Equal(t, "a", utils.If(true, "a", "b"))
	require.Equal(t, "b", utils.If(false, "a", "b"))
}

func TestClamp(t *testing.T) {
	require.Equal(t, uint32(5), utils.Clamp(uint32(1), 5, 10))
	require.Equal(t, uint32(10), utils.Clamp(uint32(100), 5, 10))
	require.Equal(t, uint32(7), utils.Clamp(uint32(7), 5, 10))
}
