package sortable

// Move returns a new slice with the element at from moved so that it lands at
// index to of the result. The other elements keep their relative order. The
// returned slice never shares its backing array with rows, which lets
// renderers detect a new order by identity.
func Move[T any](rows []T, from, to int) []T {
	out := make([]T, 0, len(rows))
	if from == to {
		return append(out, rows...)
	}

	moved := rows[from]
	for i, row := range rows {
		if i == from {
			continue
		}
		if len(out) == to {
			out = append(out, moved)
		}
		out = append(out, row)
	}
	// Landing on the last index.
	if len(out) == to {
		out = append(out, moved)
	}
	return out
}
