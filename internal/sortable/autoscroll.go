package sortable

// Zone is the edge band a drag point is in.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneNormal
	ZoneFast
)

func (z Zone) String() string {
	switch z {
	case ZoneNormal:
		return "normal"
	case ZoneFast:
		return "fast"
	default:
		return "none"
	}
}

const (
	fastZoneRows   = 0.5
	normalZoneRows = 1.25
)

// AutoScrollConfig holds the scroll increments, in lines, used while a drag
// point sits in an edge band.
type AutoScrollConfig struct {
	FastStep   int
	NormalStep int
}

// DefaultAutoScrollConfig scrolls a full row per tick in the fast band and a
// single line in the normal band.
func DefaultAutoScrollConfig(rowHeight int) AutoScrollConfig {
	return AutoScrollConfig{
		FastStep:   max(rowHeight, 2),
		NormalStep: 1,
	}
}

func (c AutoScrollConfig) normalized(rowHeight int) AutoScrollConfig {
	def := DefaultAutoScrollConfig(rowHeight)
	if c.FastStep <= 0 {
		c.FastStep = def.FastStep
	}
	if c.NormalStep <= 0 {
		c.NormalStep = def.NormalStep
	}
	return c
}

// ZoneFor classifies absoluteY against the viewport edges. dir is -1 near the
// top, +1 near the bottom and 0 outside both bands. Points beyond an edge
// count as the fast band of that edge.
func ZoneFor(absoluteY int, g Geometry, rowHeight int) (zone Zone, dir int) {
	if g.ViewportHeight <= 0 {
		return ZoneNone, 0
	}
	fromTop := absoluteY - g.ViewportTop
	fromBottom := g.Bottom() - absoluteY

	dist, dir := fromTop, -1
	if fromBottom < fromTop {
		dist, dir = fromBottom, 1
	}

	h := float64(max(rowHeight, 1))
	switch d := float64(dist); {
	case d < h*fastZoneRows:
		return ZoneFast, dir
	case d < h*normalZoneRows:
		return ZoneNormal, dir
	}
	return ZoneNone, 0
}

// Increment returns the signed number of lines to scroll for a drag point at
// absoluteY, or 0 when no scroll is warranted.
func (c AutoScrollConfig) Increment(absoluteY int, g Geometry, rowHeight int) int {
	c = c.normalized(rowHeight)
	zone, dir := ZoneFor(absoluteY, g, rowHeight)
	switch zone {
	case ZoneFast:
		return dir * c.FastStep
	case ZoneNormal:
		return dir * c.NormalStep
	}
	return 0
}
