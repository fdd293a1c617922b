package service

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultViews_UniqueNames(t *testing.T) {
	names := ViewNames()
	require.Len(t, names, len(DefaultViews))
	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicated view %s", n)
		seen[n] = true
	}
	assert.True(t, slices.Contains(names, "fraud_by_device"))
}

func TestSelectViews(t *testing.T) {
	all, unknown := SelectViews(nil)
	assert.Len(t, all, len(DefaultViews))
	assert.Empty(t, unknown)

	selected, unknown := SelectViews([]string{"currency_usage", "nope", "fraud_by_hour", "currency_usage"})
	require.Len(t, selected, 2)
	assert.Equal(t, "fraud_by_hour", selected[0].Name, "selection keeps the display order")
	assert.Equal(t, "currency_usage", selected[1].Name)
	assert.Equal(t, []string{"nope"}, unknown)
}
