package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategiesBelowLazyThreshold(t *testing.T) {
	cfg := DefaultConfig()
	for n := 0; n < 50; n++ {
		got := SelectStrategies(n, cfg)
		assert.False(t, got.Has(LazyLoading), "n=%d", n)
		assert.False(t, got.Has(Virtualization), "n=%d", n)
		assert.False(t, got.Has(LevelOfDetail), "n=%d", n)
		assert.False(t, got.Has(Batching), "n=%d", n)
		assert.True(t, got.Has(Caching), "n=%d", n)
	}
}

func TestSelectStrategiesAtOrAboveVirtualizationThreshold(t *testing.T) {
	cfg := DefaultConfig()
	for _, n := range []int{100, 101, 500, 10000} {
		assert.True(t, SelectStrategies(n, cfg).Has(Virtualization), "n=%d", n)
	}
}

func TestSelectStrategiesThresholds(t *testing.T) {
	tests := []struct {
		n    int
		want Strategies
	}{
		{0, Strategies{Caching}},
		{49, Strategies{Caching}},
		{50, Strategies{LazyLoading, Batching, Caching}},
		{74, Strategies{LazyLoading, Batching, Caching}},
		{75, Strategies{LazyLoading, Batching, Caching, LevelOfDetail}},
		{99, Strategies{LazyLoading, Batching, Caching, LevelOfDetail}},
		{100, Strategies{LazyLoading, Batching, Caching, LevelOfDetail, Virtualization}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectStrategies(tt.n, DefaultConfig()), "n=%d", tt.n)
	}
}

func TestSelectStrategiesDisabledFlagWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategies.Virtualization = false
	cfg.Strategies.Caching = false

	got := SelectStrategies(1000, cfg)
	assert.False(t, got.Has(Virtualization))
	assert.False(t, got.Has(Caching))
	assert.True(t, got.Has(LevelOfDetail))

	cfg = DefaultConfig()
	cfg.Strategies = StrategyFlags{}
	assert.Empty(t, SelectStrategies(1000, cfg))
	assert.NotNil(t, SelectStrategies(1000, cfg))
}

func TestStrategiesStrings(t *testing.T) {
	assert.Equal(t, []string{"lazy_loading", "virtualization"}, Strategies{LazyLoading, Virtualization}.Strings())
}
