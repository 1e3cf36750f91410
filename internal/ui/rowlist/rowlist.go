// Package rowlist is a windowed, drag-sortable list component for Bubble Tea.
// Only rows that intersect the viewport are rendered, and rendered rows are
// reused by key until their look changes.
package rowlist

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	lru "github.com/hashicorp/golang-lru/v2"

	"goalsort/internal/sortable"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Row is what a RenderFunc draws
type Row[T any] struct {
	Item     T
	State    sortable.VisualState
	Selected bool
	Width    int
}

// RenderFunc draws one row. Output is cut or padded to the row height.
type RenderFunc[T any] func(r Row[T]) string

// KeyFunc returns a stable identity for an item. Items with equal keys must
// render the same.
type KeyFunc[T any] func(item T) string

// TickMsg drives one auto-scroll step of the list with the matching ID
type TickMsg struct {
	ID    int
	Token uint64
}

// ClickMsg reports a press outside the drag handle
type ClickMsg[T any] struct {
	ID    int
	Index int
	Item  T
	X     int // column relative to the list's left edge
}

// Options configures a Model
type Options[T any] struct {
	RowHeight    int
	HandleWidth  int // columns from the left edge that start a drag
	AutoScroll   sortable.AutoScrollConfig
	TickInterval time.Duration
	CacheSize    int
	Render       RenderFunc[T]
	Key          KeyFunc[T]
	// OnSort receives completed drags. See sortable.Options.
	OnSort func(r sortable.Reorder, snapshot []T)
}

// Model is the list component. It is the adapter the sort engine drives.
type Model[T any] struct {
	id     int
	opts   Options[T]
	engine *sortable.Engine[T]
	cache  *lru.Cache[string, []string]

	rows   []T
	offset int
	cursor int

	left, top     int
	width, height int

	pressY  int
	pending []uint64
}

// New creates an empty list
func New[T any](opts Options[T]) *Model[T] {
	opts.RowHeight = max(opts.RowHeight, 1)
	opts.HandleWidth = max(opts.HandleWidth, 1)
	if opts.TickInterval <= 0 {
		opts.TickInterval = 16 * time.Millisecond
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}

	cache, err := lru.New[string, []string](opts.CacheSize)
	if err != nil {
		// Only fails for a non-positive size.
		panic(err)
	}

	m := &Model[T]{
		id:    nextID(),
		opts:  opts,
		cache: cache,
	}
	m.engine = sortable.New(sortable.Options[T]{
		RowHeight:  opts.RowHeight,
		AutoScroll: opts.AutoScroll,
		OnSort:     opts.OnSort,
		Schedule: func(token uint64) {
			m.pending = append(m.pending, token)
		},
	})
	m.engine.Attach(m)
	return m
}

// ID returns the list's message identity
func (m *Model[T]) ID() int { return m.id }

// Engine exposes the sort engine
func (m *Model[T]) Engine() *sortable.Engine[T] { return m.engine }

// CloneWithOrder takes the order the engine wants rendered
func (m *Model[T]) CloneWithOrder(rows []T) {
	m.rows = rows
	if m.engine.Dragging() {
		m.cursor = m.engine.CurrentIndex()
	}
}

// ScrollToOffset moves the viewport. x is ignored and the list never animates.
func (m *Model[T]) ScrollToOffset(x, y int, animated bool) {
	m.offset = m.clampOffset(y)
	m.engine.OnScroll(m.offset)
}

// SetItems hands the list a new source order
func (m *Model[T]) SetItems(items []T) {
	m.engine.SetSource(items)
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
	m.ScrollToOffset(0, m.offset, false)
}

// Items returns the rendered order
func (m *Model[T]) Items() []T { return m.rows }

// Len returns the number of rows
func (m *Model[T]) Len() int { return len(m.rows) }

// SetBounds places the list on screen
func (m *Model[T]) SetBounds(left, top, width, height int) {
	if width != m.width {
		m.cache.Purge()
	}
	m.left, m.top = left, top
	m.width, m.height = width, max(height, 0)
	m.engine.OnLayout(top, m.height)
	m.ScrollToOffset(0, m.offset, false)
}

// Offset returns the scroll offset in lines
func (m *Model[T]) Offset() int { return m.offset }

// Cursor returns the selected index, or -1 for an empty list
func (m *Model[T]) Cursor() int {
	if len(m.rows) == 0 {
		return -1
	}
	return m.cursor
}

// Selected returns the selected item
func (m *Model[T]) Selected() (item T, ok bool) {
	if len(m.rows) == 0 {
		return item, false
	}
	return m.rows[m.cursor], true
}

// Select moves the cursor to index and scrolls it into view
func (m *Model[T]) Select(index int) {
	if len(m.rows) == 0 || m.engine.Dragging() {
		return
	}
	m.cursor = clamp(index, 0, len(m.rows)-1)

	rh := m.opts.RowHeight
	rowTop := m.cursor * rh
	switch {
	case rowTop < m.offset:
		m.ScrollToOffset(0, rowTop, false)
	case rowTop+rh > m.offset+m.height:
		m.ScrollToOffset(0, rowTop+rh-m.height, false)
	}
}

// MoveCursor moves the cursor by delta rows
func (m *Model[T]) MoveCursor(delta int) {
	m.Select(m.cursor + delta)
}

// MoveSelected moves the selected row by delta positions and keeps it
// selected. The engine reports the move through OnSort like a drag.
func (m *Model[T]) MoveSelected(delta int) bool {
	if len(m.rows) == 0 {
		return false
	}
	to := m.cursor + delta
	if !m.engine.MoveRow(m.cursor, to) {
		return false
	}
	m.Select(to)
	return true
}

// Dragging reports whether a row is being dragged
func (m *Model[T]) Dragging() bool { return m.engine.Dragging() }

// Cancel aborts a drag the way a cancelled gesture does
func (m *Model[T]) Cancel() {
	m.engine.HandleState(sortable.GestureCancelled, 0)
}

// Update handles mouse and tick messages for this list
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case TickMsg:
		if msg.ID == m.id {
			m.engine.Tick(msg.Token)
		}
	}
	return tea.Batch(cmd, m.drainTicks())
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.engine.Dragging() {
		if tea.MouseEvent(msg).IsWheel() {
			return nil
		}
		switch msg.Action {
		case tea.MouseActionMotion:
			m.engine.Sample(msg.Y - m.pressY)
		case tea.MouseActionRelease:
			m.engine.Sample(msg.Y - m.pressY)
			m.engine.HandleState(sortable.GestureEnded, 0)
		case tea.MouseActionPress:
			// A second button during a drag is not a drag we understand.
			m.engine.HandleState(sortable.GestureFailed, 0)
		}
		return nil
	}

	if msg.Action != tea.MouseActionPress || !m.inViewport(msg.X, msg.Y) {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ScrollToOffset(0, m.offset-m.opts.RowHeight, false)
		return nil
	case tea.MouseButtonWheelDown:
		m.ScrollToOffset(0, m.offset+m.opts.RowHeight, false)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	index, ok := m.engine.IndexAt(msg.Y)
	if !ok || m.offset+msg.Y-m.top >= len(m.rows)*m.opts.RowHeight {
		return nil
	}
	col := msg.X - m.left
	if col < m.opts.HandleWidth {
		m.cursor = index
		m.pressY = msg.Y
		m.engine.HandleState(sortable.GestureBegan, msg.Y)
		m.engine.HandleState(sortable.GestureActive, 0)
		return nil
	}

	m.cursor = index
	click := ClickMsg[T]{ID: m.id, Index: index, Item: m.rows[index], X: col}
	return func() tea.Msg { return click }
}

func (m *Model[T]) drainTicks() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, token := range m.pending {
		msg := TickMsg{ID: m.id, Token: token}
		cmds = append(cmds, tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg {
			return msg
		}))
	}
	m.pending = m.pending[:0]
	return tea.Batch(cmds...)
}

func (m *Model[T]) inViewport(x, y int) bool {
	return x >= m.left && x < m.left+m.width && y >= m.top && y < m.top+m.height
}

// View renders the visible window, exactly height lines
func (m *Model[T]) View() string {
	if m.height <= 0 {
		return ""
	}
	lines := make([]string, m.height)
	rh := m.opts.RowHeight

	for i := range lines {
		content := m.offset + i
		index := content / rh
		if index >= len(m.rows) {
			continue
		}
		lines[i] = m.rowLines(index)[content%rh]
	}

	if item, offsetY, ok := m.engine.Floating(); ok {
		floating := m.render(Row[T]{Item: item, State: sortable.Dragging, Selected: true, Width: m.width})
		for j, line := range floating {
			// Blank floating lines leave the row underneath visible.
			if strings.TrimSpace(ansi.Strip(line)) == "" {
				continue
			}
			if y := offsetY + j; y >= 0 && y < m.height {
				lines[y] = line
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model[T]) rowLines(index int) []string {
	row := Row[T]{
		Item:     m.rows[index],
		State:    m.engine.RowState(index),
		Selected: index == m.cursor,
		Width:    m.width,
	}
	key := fmt.Sprintf("%s|%s|%t|%d", m.indexToKey(index), row.State, row.Selected, row.Width)
	if lines, ok := m.cache.Get(key); ok {
		return lines
	}
	lines := m.render(row)
	m.cache.Add(key, lines)
	return lines
}

func (m *Model[T]) render(row Row[T]) []string {
	rh := m.opts.RowHeight
	if m.opts.Render == nil {
		return make([]string, rh)
	}
	lines := strings.Split(m.opts.Render(row), "\n")
	if len(lines) > rh {
		return lines[:rh]
	}
	for len(lines) < rh {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model[T]) indexToKey(index int) string {
	if m.opts.Key == nil {
		return fmt.Sprintf("#%d", index)
	}
	return m.opts.Key(m.rows[index])
}

func (m *Model[T]) clampOffset(y int) int {
	limit := m.engine.Geometry().MaxOffset(len(m.rows), m.opts.RowHeight)
	return clamp(y, 0, limit)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
