package sortable

// Geometry is the scroll and viewport state the mapper reads. It is written
// only by the adapter's scroll and layout notifications.
type Geometry struct {
	ScrollOffset   int // first content line shown at the viewport top
	ViewportTop    int // absolute screen row of the viewport's top edge
	ViewportHeight int // visible lines
}

// Bottom returns the absolute screen row of the last visible line.
func (g Geometry) Bottom() int {
	return g.ViewportTop + g.ViewportHeight - 1
}

// MaxOffset returns the largest scroll offset that still fills the viewport
// for rowCount rows of rowHeight lines.
func (g Geometry) MaxOffset(rowCount, rowHeight int) int {
	return max(rowCount*rowHeight-g.ViewportHeight, 0)
}
