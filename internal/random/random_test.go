package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSample(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	got := Sample(New(1), items, 3)
	assert.Len(t, got, 3)
	seen := map[string]bool{}
	for _, v := range got {
		assert.Contains(t, items, v)
		assert.False(t, seen[v], "duplicate %s", v)
		seen[v] = true
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)

	assert.Len(t, Sample(New(1), items, 10), 5)
	assert.Nil(t, Sample(New(1), items, 0))
	assert.Nil(t, Sample[string](New(1), nil, 3))
}

func TestSample_DeterministicUnderSeed(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, Sample(New(42), items, 4), Sample(New(42), items, 4))
}
