package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBitrate(t *testing.T) {
	cases := map[string]int{
		"1500": 1500,
		"2k":   2048,
		"2K":   2048,
		"1M":   1048576,
		"1.5k": 1536,
	}

	for literal, want := range cases {
		got, err := ParseBitrate(literal)
		require.NoError(t, err)
		require.Equal(t, want, got, "literal=%q", literal)
	}
}

func TestParseBitrateRejectsGarbage(t *testing.T) {
	_, err := ParseBitrate("")
	require.Error(t, err)

	_, err = ParseBitrate("not-a-number")
	require.Error(t, err)
}
