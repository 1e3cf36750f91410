package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goalsort/internal/config"
	"goalsort/internal/domain"
	"goalsort/internal/eventbus"
	"goalsort/internal/sortable"
	"goalsort/internal/store"
	"goalsort/internal/ui/rowlist"
	"goalsort/internal/ui/views"
)

const blurbText = "Drag a goal by its %s handle to reorder the list. Hold it near the top or " +
	"bottom edge to scroll. Click X to delete a goal. Press n to type a new goal " +
	"and enter to add it."

// footerHeight covers the status and help lines
const footerHeight = 2

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	styles *views.Styles

	list  *rowlist.Model[domain.Goal]
	input textinput.Model
	help  help.Model

	width     int
	height    int
	listTop   int
	status    string
	statusErr bool
	quitting  bool
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	m := &Model{
		bus:    bus,
		config: cfg,
		styles: views.NewStyles(),
		help:   help.New(),
	}

	m.input = textinput.New()
	m.input.Placeholder = "Enter new task. Press return when done"
	m.input.CharLimit = store.MaxTaskLength
	m.input.Prompt = "> "

	m.list = rowlist.New(rowlist.Options[domain.Goal]{
		RowHeight:   cfg.List.RowHeight,
		HandleWidth: views.HandleWidth(cfg.List.Handle),
		AutoScroll: sortable.AutoScrollConfig{
			FastStep:   cfg.AutoScroll.FastStep,
			NormalStep: cfg.AutoScroll.NormalStep,
		},
		TickInterval: time.Duration(cfg.AutoScroll.TickMS) * time.Millisecond,
		Key:          func(g domain.Goal) string { return g.ID },
		Render:       m.renderRow,
		OnSort:       m.onSort,
	})
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case tea.MouseMsg, rowlist.TickMsg:
		return m, m.list.Update(msg)

	case rowlist.ClickMsg[domain.Goal]:
		if msg.X >= views.DeleteColumn(m.width) {
			m.requestRemove(msg.Item)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m, m.handleInputKey(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.GoalsChangedEvent:
		m.list.SetItems(e.Goals)
	case eventbus.ErrorEvent:
		m.setError(e)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		task := strings.TrimSpace(m.input.Value())
		if task != "" {
			m.bus.Publish(eventbus.GoalAddRequestedEvent{Task: task})
			m.setStatus(fmt.Sprintf("Added %q", task))
		}
		m.input.Reset()
		m.layout()
		return nil
	case tea.KeyEsc, tea.KeyTab:
		m.input.Blur()
		return nil
	case tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.layout()
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.list.Dragging() {
		switch {
		case key.Matches(msg, keys.Cancel):
			m.list.Cancel()
		case key.Matches(msg, keys.Quit):
			m.list.Cancel()
			m.quitting = true
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Up):
		m.list.MoveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.list.MoveCursor(1)
	case key.Matches(msg, keys.Top):
		m.list.Select(0)
	case key.Matches(msg, keys.Bottom):
		m.list.Select(m.list.Len() - 1)
	case key.Matches(msg, keys.MoveUp):
		m.list.MoveSelected(-1)
	case key.Matches(msg, keys.MoveDown):
		m.list.MoveSelected(1)
	case key.Matches(msg, keys.Delete):
		if g, ok := m.list.Selected(); ok {
			m.requestRemove(g)
		}
	case key.Matches(msg, keys.NewGoal):
		return m.input.Focus()
	case key.Matches(msg, keys.Help):
		return showHelpPager(RenderHelpContent(m.config.List.Handle))
	}
	return nil
}

// onSort resolves a reorder against the goals it was computed on and asks
// for the move by id
func (m *Model) onSort(r sortable.Reorder, snapshot []domain.Goal) {
	if r.Moved < 0 || r.Moved >= len(snapshot) {
		log.Printf("ui: %s does not resolve against %d goals, ignoring", r, len(snapshot))
		return
	}
	moved := snapshot[r.Moved]
	event := eventbus.GoalMoveRequestedEvent{ID: moved.ID}
	desc := fmt.Sprintf("Moved %q to the end", moved.Task)

	if !r.ToEnd() {
		if r.InFrontOf < 0 || r.InFrontOf >= len(snapshot) {
			log.Printf("ui: %s does not resolve against %d goals, ignoring", r, len(snapshot))
			return
		}
		target := snapshot[r.InFrontOf]
		event.InFrontOfID = target.ID
		desc = fmt.Sprintf("Moved %q in front of %q", moved.Task, target.Task)
	}

	m.bus.Publish(event)
	m.setStatus(desc)
}

func (m *Model) requestRemove(g domain.Goal) {
	m.bus.Publish(eventbus.GoalRemoveRequestedEvent{ID: g.ID})
	m.setStatus(fmt.Sprintf("Deleted %q", g.Task))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(e eventbus.ErrorEvent) {
	m.status = e.Message
	if e.Err != nil {
		m.status = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	m.statusErr = true
}

func (m *Model) renderRow(r rowlist.Row[domain.Goal]) string {
	return m.styles.RenderGoalRow(views.GoalRow{
		Handle:    m.config.List.Handle,
		Task:      r.Item.Task,
		State:     r.State,
		Selected:  r.Selected,
		Width:     r.Width,
		RowHeight: m.config.List.RowHeight,
	})
}

// layout places the list under the header
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-4, 1)
	m.listTop = lipgloss.Height(m.headerView())
	m.list.SetBounds(0, m.listTop, m.width, m.height-m.listTop-footerHeight)
}

func (m *Model) headerView() string {
	parts := []string{m.styles.Title.Render("goalsort")}
	if m.config.List.ShowBlurb {
		blurb := fmt.Sprintf(blurbText, m.config.List.Handle)
		parts = append(parts, m.styles.Blurb.Width(m.width).Render(blurb))
	}

	left := store.MaxTaskLength - len([]rune(m.input.Value()))
	count := m.styles.CharCount.Render(fmt.Sprintf("Characters left: %d", left))
	panel := m.styles.Panel.Width(m.width).Render(m.input.View() + "\n" + count)
	parts = append(parts, panel)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	status := m.styles.Status.Render(m.status)
	if m.statusErr {
		status = m.styles.StatusError.Render(m.status)
	}
	if m.list.Len() == 0 && m.status == "" {
		status = m.styles.Dim.Render("No goals. Press n to add one.")
	}

	return strings.Join([]string{
		m.headerView(),
		m.list.View(),
		status,
		m.styles.Help.Render(m.help.View(keys)),
	}, "\n")
}
