package sortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var letters = []string{"A", "B", "C", "D", "E"}

func TestMove(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{3, 1, []string{"A", "D", "B", "C", "E"}},
		{1, 3, []string{"A", "C", "D", "B", "E"}},
		{0, 4, []string{"B", "C", "D", "E", "A"}},
		{4, 0, []string{"E", "A", "B", "C", "D"}},
		{2, 2, []string{"A", "B", "C", "D", "E"}},
		{0, 1, []string{"B", "A", "C", "D", "E"}},
	}

	for _, tt := range tests {
		got := Move(letters, tt.from, tt.to)
		assert.Equal(t, tt.want, got, "move %d -> %d", tt.from, tt.to)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, letters, "input must not change")
}

func TestMoveReturnsFreshSlice(t *testing.T) {
	in := []int{1, 2, 3}
	out := Move(in, 1, 1)
	require.Equal(t, in, out)

	out[0] = 99
	assert.Equal(t, 1, in[0])
}

func TestMoveProperties(t *testing.T) {
	for n := 1; n <= 7; n++ {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i * 10
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				moved := Move(rows, a, b)
				require.Len(t, moved, n)
				assert.ElementsMatch(t, rows, moved)
				assert.Equal(t, rows[a], moved[b], "moved element lands at %d", b)
				assert.Equal(t, rows, Move(moved, b, a), "round trip %d <-> %d", a, b)
			}
		}
	}
}
