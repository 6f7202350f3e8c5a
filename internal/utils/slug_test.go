package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "gold-ring", Slugify("Gold Ring"))
	assert.Equal(t, "kundan-necklace-set", Slugify("Kundan  Necklace Set"))
	assert.Equal(t, "22k-jhumka", Slugify("22K Jhumka!"))
}

func TestUniqueSlugNoCollision(t *testing.T) {
	taken := func(ctx context.Context, s string) (bool, error) { return false, nil }

	got, err := UniqueSlug(context.Background(), "Gold Ring", taken)
	require.NoError(t, err)
	assert.Equal(t, "gold-ring", got)
}

func TestUniqueSlugDisambiguates(t *testing.T) {
	existing := map[string]bool{"gold-ring": true}
	taken := func(ctx context.Context, s string) (bool, error) { return existing[s], nil }

	got, err := UniqueSlug(context.Background(), "Gold Ring", taken)
	require.NoError(t, err)
	assert.Equal(t, "gold-ring-2", got)

	// A second collision keeps counting.
	existing["gold-ring-2"] = true
	got, err = UniqueSlug(context.Background(), "Gold Ring", taken)
	require.NoError(t, err)
	assert.Equal(t, "gold-ring-3", got)
}

func TestUniqueSlugPropagatesLookupError(t *testing.T) {
	taken := func(ctx context.Context, s string) (bool, error) {
		return false, assert.AnError
	}

	_, err := UniqueSlug(context.Background(), "Gold Ring", taken)
	assert.Error(t, err)
}
