package sortable

import (
	"log"
)

// GestureState is a state change reported by the gesture recognizer that
// watches a drag handle.
type GestureState int

const (
	GestureUndetermined GestureState = iota
	GestureBegan
	GestureActive
	GestureEnded
	GestureCancelled
	GestureFailed
)

func (s GestureState) String() string {
	switch s {
	case GestureUndetermined:
		return "undetermined"
	case GestureBegan:
		return "began"
	case GestureActive:
		return "active"
	case GestureEnded:
		return "ended"
	case GestureCancelled:
		return "cancelled"
	case GestureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// VisualState tells a row renderer how to draw a row.
type VisualState int

const (
	Normal VisualState = iota
	Dragging
	Placeholder
)

func (v VisualState) String() string {
	switch v {
	case Dragging:
		return "dragging"
	case Placeholder:
		return "placeholder"
	default:
		return "normal"
	}
}

// Phase is the lifecycle position of the engine's drag session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseEnded
)

// Adapter is the virtualized list the engine drives. Implementations are
// expected to report the resulting offset back through Engine.OnScroll.
type Adapter[T any] interface {
	// CloneWithOrder hands the list a new row order to render.
	CloneWithOrder(rows []T)
	// ScrollToOffset scrolls the list content to the given offset.
	ScrollToOffset(x, y int, animated bool)
}

// Options configures an Engine.
type Options[T any] struct {
	// RowHeight is the fixed height of every row, in lines.
	RowHeight int
	// AutoScroll sets the edge scroll increments.
	AutoScroll AutoScrollConfig
	// OnSort receives the single reorder instruction of a completed drag
	// together with the sequence its positions refer to.
	OnSort func(r Reorder, snapshot []T)
	// Schedule asks the host to call Engine.Tick(token) on the next
	// animation tick.
	Schedule func(token uint64)
}

type session struct {
	originIndex    int
	currentIndex   int
	startAbsoluteY int
	translationY   int
	floatBase      int
	listening      bool
}

var noSession = session{originIndex: -1, currentIndex: -1}

// Engine tracks one drag gesture at a time over a list of uniform-height
// rows. It is not safe for concurrent use; all calls are expected to come
// from the UI event loop.
type Engine[T any] struct {
	rowHeight int
	scroll    AutoScrollConfig
	onSort    func(Reorder, []T)
	schedule  func(token uint64)
	adapter   Adapter[T]

	source  []T
	working []T
	geom    Geometry

	phase Phase
	sess  session

	// tickGen is the validity token of the auto-scroll loop. It changes on
	// every session start and end so ticks scheduled earlier are ignored.
	tickGen uint64
	ticking bool
}

// New creates an idle engine with an empty row sequence.
func New[T any](opts Options[T]) *Engine[T] {
	rowHeight := max(opts.RowHeight, 1)
	return &Engine[T]{
		rowHeight: rowHeight,
		scroll:    opts.AutoScroll.normalized(rowHeight),
		onSort:    opts.OnSort,
		schedule:  opts.Schedule,
		sess:      noSession,
	}
}

// Attach connects the virtualized list. A nil adapter detaches it.
func (e *Engine[T]) Attach(a Adapter[T]) {
	e.adapter = a
	if a != nil {
		a.CloneWithOrder(e.working)
	}
}

// SetSource replaces the externally owned row sequence. The working order
// mirrors it immediately. A drag in progress is aborted without a reorder
// instruction, since its positions refer to the previous sequence.
func (e *Engine[T]) SetSource(rows []T) {
	if e.phase == PhaseDragging {
		log.Printf("sortable: source changed during drag from %d, aborting", e.sess.originIndex)
		e.stopAutoScroll()
		e.sess = noSession
		e.phase = PhaseIdle
	}
	e.source = rows
	e.working = append([]T(nil), rows...)
	if e.adapter != nil {
		e.adapter.CloneWithOrder(e.working)
	}
}

// Source returns the sequence reorder positions refer to: the one last
// passed to SetSource, advanced by every drag completed since then.
func (e *Engine[T]) Source() []T {
	return e.source
}

// Rows returns the working order.
func (e *Engine[T]) Rows() []T {
	return e.working
}

// Len returns the number of rows in the working order.
func (e *Engine[T]) Len() int {
	return len(e.working)
}

// RowHeight returns the configured row height.
func (e *Engine[T]) RowHeight() int {
	return e.rowHeight
}

// OnScroll records the list's current scroll offset.
func (e *Engine[T]) OnScroll(offset int) {
	e.geom.ScrollOffset = offset
}

// OnLayout records where the list sits on screen.
func (e *Engine[T]) OnLayout(viewportTop, viewportHeight int) {
	e.geom.ViewportTop = viewportTop
	e.geom.ViewportHeight = viewportHeight
}

// Geometry returns the last reported scroll and layout state.
func (e *Engine[T]) Geometry() Geometry {
	return e.geom
}

// Phase returns where the engine is in its session lifecycle.
func (e *Engine[T]) Phase() Phase {
	return e.phase
}

// Dragging reports whether a drag session is active.
func (e *Engine[T]) Dragging() bool {
	return e.phase == PhaseDragging
}

// OriginIndex returns the index the dragged row was picked up from, or -1.
func (e *Engine[T]) OriginIndex() int {
	return e.sess.originIndex
}

// CurrentIndex returns the index the dragged row occupies in the working
// order, or -1.
func (e *Engine[T]) CurrentIndex() int {
	return e.sess.currentIndex
}

// IndexAt maps an absolute screen row to a row index using the current
// geometry. ok is false for an empty list.
func (e *Engine[T]) IndexAt(absoluteY int) (index int, ok bool) {
	if len(e.working) == 0 {
		return -1, false
	}
	return IndexForY(absoluteY, e.geom.ScrollOffset, e.geom.ViewportTop, e.rowHeight, len(e.working)), true
}

// HandleState feeds a recognizer state change. absoluteY is only read for
// GestureBegan.
func (e *Engine[T]) HandleState(state GestureState, absoluteY int) {
	switch state {
	case GestureBegan:
		e.begin(absoluteY)
	case GestureActive:
		if e.phase == PhaseDragging {
			e.sess.listening = true
		}
	case GestureEnded, GestureCancelled, GestureFailed:
		if e.phase == PhaseDragging {
			e.finish(state)
		}
	case GestureUndetermined:
		if e.phase == PhaseDragging {
			e.finish(state)
			return
		}
		log.Printf("sortable: unexpected gesture state %s while idle", state)
	default:
		log.Printf("sortable: unexpected gesture state %d", int(state))
	}
}

// Sample feeds the recognizer's translation since the gesture began.
// Samples that arrive before GestureActive or after the session ended are
// dropped.
func (e *Engine[T]) Sample(translationY int) {
	if e.phase != PhaseDragging || !e.sess.listening {
		return
	}
	e.sess.translationY = translationY
	absoluteY := e.sess.startAbsoluteY + translationY

	e.checkAutoScroll(absoluteY)
	e.track(absoluteY)
}

// Tick runs one step of the auto-scroll loop. Tokens from a previous session
// or from a loop that already stopped are ignored.
func (e *Engine[T]) Tick(token uint64) {
	if token != e.tickGen || !e.ticking {
		return
	}
	if e.phase != PhaseDragging {
		e.ticking = false
		return
	}

	absoluteY := e.sess.startAbsoluteY + e.sess.translationY
	inc := e.scroll.Increment(absoluteY, e.geom, e.rowHeight)
	if inc == 0 || !e.scrollBy(inc) {
		e.ticking = false
		return
	}
	// Content moved under a pointer that may be standing still.
	e.track(absoluteY)
	e.requestTick()
}

// AutoScrolling reports whether the auto-scroll loop is running.
func (e *Engine[T]) AutoScrolling() bool {
	return e.ticking
}

// RowState returns how the row at index should render in the list.
func (e *Engine[T]) RowState(index int) VisualState {
	if e.phase == PhaseDragging && index == e.sess.currentIndex {
		return Placeholder
	}
	return Normal
}

// Floating returns the dragged item and the offset of the floating row
// relative to the viewport top. ok is false when no drag is active.
func (e *Engine[T]) Floating() (item T, offsetY int, ok bool) {
	if e.phase != PhaseDragging {
		return item, 0, false
	}
	return e.working[e.sess.currentIndex], e.sess.floatBase + e.sess.translationY, true
}

func (e *Engine[T]) begin(absoluteY int) {
	if e.phase == PhaseDragging {
		log.Printf("sortable: gesture began while dragging row %d, ignoring", e.sess.originIndex)
		return
	}
	if len(e.working) == 0 {
		log.Printf("sortable: gesture began on an empty list, ignoring")
		return
	}

	index, _ := e.IndexAt(absoluteY)
	e.stopAutoScroll()
	e.sess = session{
		originIndex:    index,
		currentIndex:   index,
		startAbsoluteY: absoluteY,
		floatBase:      index*e.rowHeight - e.geom.ScrollOffset,
	}
	e.phase = PhaseDragging
}

func (e *Engine[T]) finish(state GestureState) {
	e.stopAutoScroll()
	e.sess.listening = false

	start, end := e.sess.originIndex, e.sess.currentIndex
	n := len(e.working)
	e.sess = noSession
	e.phase = PhaseEnded

	if r, ok := Instruction(start, end, n); ok {
		e.emit(r, "drag "+state.String())
	}
	if e.phase == PhaseEnded {
		e.phase = PhaseIdle
	}
}

// MoveRow moves the row at from so it lands at to and reports the same
// instruction a drag between those rows would. It does nothing while a drag
// is active or when either index is out of range.
func (e *Engine[T]) MoveRow(from, to int) bool {
	n := len(e.working)
	if e.phase == PhaseDragging || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	r, ok := Instruction(from, to, n)
	if !ok {
		return false
	}
	e.working = Move(e.working, from, to)
	if e.adapter != nil {
		e.adapter.CloneWithOrder(e.working)
	}
	e.emit(r, "move")
	return true
}

// emit advances the source to the working order and hands r, expressed
// against the previous source, to OnSort. A second reorder before the owner
// catches up is then computed against the order the first one left behind.
func (e *Engine[T]) emit(r Reorder, cause string) {
	snapshot := e.source
	e.source = append([]T(nil), e.working...)
	log.Printf("sortable: %s, %s", cause, r)
	if e.onSort != nil {
		e.onSort(r, snapshot)
	}
}

func (e *Engine[T]) track(absoluteY int) {
	index, ok := e.IndexAt(absoluteY)
	if !ok || index == e.sess.currentIndex {
		return
	}
	e.working = Move(e.working, e.sess.currentIndex, index)
	e.sess.currentIndex = index
	if e.adapter != nil {
		e.adapter.CloneWithOrder(e.working)
	}
}

func (e *Engine[T]) checkAutoScroll(absoluteY int) {
	if e.ticking {
		return
	}
	inc := e.scroll.Increment(absoluteY, e.geom, e.rowHeight)
	if inc == 0 || !e.scrollBy(inc) {
		return
	}
	e.ticking = true
	e.requestTick()
}

func (e *Engine[T]) requestTick() {
	if e.schedule == nil {
		e.ticking = false
		return
	}
	e.schedule(e.tickGen)
}

func (e *Engine[T]) stopAutoScroll() {
	e.tickGen++
	e.ticking = false
}

// scrollBy asks the adapter to scroll by inc lines. A target above the top is
// dropped and one past the bottom is clamped to the max offset. It returns
// false when nothing was requested.
func (e *Engine[T]) scrollBy(inc int) bool {
	if e.adapter == nil {
		log.Printf("sortable: no list attached, dropping scroll of %d", inc)
		return false
	}
	offset := e.geom.ScrollOffset
	limit := e.geom.MaxOffset(len(e.working), e.rowHeight)

	target := offset + inc
	switch {
	case target < 0:
		return false
	case target > limit:
		if offset >= limit {
			return false
		}
		target = limit
	}
	e.adapter.ScrollToOffset(0, target, false)
	return true
}
