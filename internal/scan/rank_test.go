package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankInput() []Entry {
	return []Entry{
		{Path: "/r/c.bin", Size: 300},
		{Path: "/r/a.bin", Size: 500},
		{Path: "/r/.cfg", Size: 500, Hidden: true},
		{Path: "/r/b.bin", Size: 500},
		{Path: "/r/tiny.txt", Size: 10},
		{Path: "/r/sub", Size: 900, Kind: KindDir},
	}
}

func TestRankOrdering(t *testing.T) {
	ranked := Rank(rankInput(), false, 0, 0)

	require.Len(t, ranked, 6)
	assert.Equal(t, "/r/sub", ranked[0].Path)

	// Equal sizes break ties by path ascending.
	assert.Equal(t, "/r/.cfg", ranked[1].Path)
	assert.Equal(t, "/r/a.bin", ranked[2].Path)
	assert.Equal(t, "/r/b.bin", ranked[3].Path)
	assert.Equal(t, "/r/c.bin", ranked[4].Path)
	assert.Equal(t, "/r/tiny.txt", ranked[5].Path)
}

func TestRankMinSize(t *testing.T) {
	ranked := Rank(rankInput(), false, 500, 0)
	require.Len(t, ranked, 4)

	for _, entry := range ranked {
		assert.GreaterOrEqual(t, entry.Size, int64(500))
	}

	// Raising the threshold never increases the result count.
	assert.LessOrEqual(t, len(Rank(rankInput(), false, 600, 0)), len(ranked))
}

func TestRankHiddenOnly(t *testing.T) {
	ranked := Rank(rankInput(), true, 0, 0)

	require.Len(t, ranked, 1)
	assert.Equal(t, "/r/.cfg", ranked[0].Path)
}

func TestRankTopN(t *testing.T) {
	tests := []struct {
		name string
		topN int
		want int
	}{
		{"truncates to top n", 2, 2},
		{"larger than input", 50, 6},
		{"zero keeps all", 0, 6},
		{"negative keeps all", -3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Rank(rankInput(), false, 0, tt.topN), tt.want)
		})
	}
}

func TestRankIsPure(t *testing.T) {
	input := rankInput()
	before := make([]Entry, len(input))
	copy(before, input)

	first := Rank(input, false, 100, 3)
	second := Rank(input, false, 100, 3)

	// Input order untouched, repeated calls identical.
	assert.Equal(t, before, input)
	assert.Equal(t, first, second)
}
