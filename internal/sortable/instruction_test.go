package sortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstruction(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       Reorder
		wantOK     bool
		wantOrder  []string
	}{
		{"no-op", 2, 2, Reorder{}, false, nil},
		{"upward", 3, 1, Reorder{Moved: 3, InFrontOf: 1}, true, []string{"A", "D", "B", "C", "E"}},
		{"downward to end", 0, 4, Reorder{Moved: 0, InFrontOf: EndOfList}, true, []string{"B", "C", "D", "E", "A"}},
		{"downward interior", 1, 3, Reorder{Moved: 1, InFrontOf: 4}, true, []string{"A", "C", "D", "B", "E"}},
		{"to front", 4, 0, Reorder{Moved: 4, InFrontOf: 0}, true, []string{"E", "A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Instruction(tt.start, tt.end, len(letters))
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOrder, Apply(letters, got))
		})
	}
}

// Applying the instruction to the pre-drag order must reproduce the order
// the drag previewed, for every start and end position.
func TestInstructionMatchesPreview(t *testing.T) {
	for n := 1; n <= 8; n++ {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		for start := 0; start < n; start++ {
			for end := 0; end < n; end++ {
				r, ok := Instruction(start, end, n)
				if start == end {
					assert.False(t, ok)
					continue
				}
				require.True(t, ok)
				assert.Equal(t, Move(rows, start, end), Apply(rows, r), "n=%d start=%d end=%d (%s)", n, start, end, r)
			}
		}
	}
}

func TestReorderToEnd(t *testing.T) {
	assert.True(t, Reorder{Moved: 1, InFrontOf: EndOfList}.ToEnd())
	assert.False(t, Reorder{Moved: 1, InFrontOf: 0}.ToEnd())
	assert.Equal(t, "move 1 to end", Reorder{Moved: 1, InFrontOf: EndOfList}.String())
	assert.Equal(t, "move 3 in front of 1", Reorder{Moved: 3, InFrontOf: 1}.String())
}

func TestApplyIgnoresInvalid(t *testing.T) {
	assert.Equal(t, letters, Apply(letters, Reorder{Moved: 9, InFrontOf: 0}))
	assert.Equal(t, letters, Apply(letters, Reorder{Moved: 2, InFrontOf: 2}))
}
