package sortable

import "fmt"

// EndOfList is the InFrontOf value of a Reorder that moves a row to the tail.
const EndOfList = -1

// Reorder asks the owner of the data to place the row at position Moved
// immediately in front of the row at position InFrontOf. Both positions refer
// to the order the owner handed to the engine before the drag started.
type Reorder struct {
	Moved     int
	InFrontOf int
}

// ToEnd reports whether the row goes to the end of the list.
func (r Reorder) ToEnd() bool {
	return r.InFrontOf == EndOfList
}

func (r Reorder) String() string {
	if r.ToEnd() {
		return fmt.Sprintf("move %d to end", r.Moved)
	}
	return fmt.Sprintf("move %d in front of %d", r.Moved, r.InFrontOf)
}

// Instruction converts the start and end positions of a drag over n rows
// into a Reorder. It returns false when the row did not move.
//
// Moving down needs end+1: the row at end shifted up by one when the dragged
// row was taken out, so the row to stand in front of is the next one.
func Instruction(start, end, n int) (Reorder, bool) {
	switch {
	case start == end:
		return Reorder{}, false
	case start > end:
		return Reorder{Moved: start, InFrontOf: end}, true
	case end+1 > n-1:
		return Reorder{Moved: start, InFrontOf: EndOfList}, true
	default:
		return Reorder{Moved: start, InFrontOf: end + 1}, true
	}
}

// Apply performs r on rows and returns the resulting order as a new slice.
// It is what an owner does after resolving the positions to identities and is
// used to check instructions against the previewed order.
func Apply[T any](rows []T, r Reorder) []T {
	if r.Moved < 0 || r.Moved >= len(rows) || r.InFrontOf == r.Moved || r.InFrontOf < EndOfList {
		return append([]T(nil), rows...)
	}
	moved := rows[r.Moved]
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		if i == r.Moved {
			continue
		}
		if i == r.InFrontOf {
			out = append(out, moved)
		}
		out = append(out, row)
	}
	if r.ToEnd() || r.InFrontOf >= len(rows) {
		out = append(out, moved)
	}
	return out
}
