package sortable

// IndexForY maps an absolute vertical screen coordinate to the index of the
// row under it, given the list's scroll offset and the screen row of the
// viewport's top edge. The result is always clamped to [0, rowCount-1], so
// callers must not call it for an empty list.
func IndexForY(absoluteY, scrollOffset, viewportTop, rowHeight, rowCount int) int {
	if rowHeight < 1 {
		rowHeight = 1
	}
	index := floorDiv(absoluteY+scrollOffset-viewportTop, rowHeight)
	return clamp(index, 0, rowCount-1)
}

// floorDiv divides rounding toward negative infinity; Go's / truncates.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
