package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryClaimRejectsDuplicate(t *testing.T) {
	r := New()

	require.True(t, r.Claim(1, "live_cam"))
	require.False(t, r.Claim(1, "live_cam"))

	// Same name, different application: not a collision.
	require.True(t, r.Claim(2, "live_cam"))
}

func TestRegistryReleaseFreesTheName(t *testing.T) {
	r := New()
	require.True(t, r.Claim(1, "live_cam"))

	r.Release(1, "live_cam")
	require.False(t, r.Has(1, "live_cam"))
	require.True(t, r.Claim(1, "live_cam"))
}

func TestRegistryReleaseAll(t *testing.T) {
	r := New()
	require.True(t, r.Claim(1, "a"))
	require.True(t, r.Claim(1, "b"))

	r.ReleaseAll(1, []string{"a", "b"})
	require.False(t, r.Has(1, "a"))
	require.False(t, r.Has(1, "b"))
}
