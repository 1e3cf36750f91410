package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

var helpSections = []struct {
	title string
	group int
}{
	{"Navigation", 0},
	{"Goals", 1},
	{"Other", 2},
}

// RenderHelpContent generates the full help text shown in the pager
func RenderHelpContent(handle string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("goalsort Help"))
	help.WriteString("\n")

	groups := keys.FullHelp()
	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range groups[section.group] {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(handle), descStyle.Render("Drag to reorder; hold near the top or bottom edge to scroll")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("X"), descStyle.Render("Delete the goal")))
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render("wheel"), descStyle.Render("Scroll the list")))

	return help.String()
}

// pagerCommand runs ov on a string as a tea.ExecCommand. ov opens the
// terminal itself, so the standard streams handed in are not used.
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showHelpPager suspends the program and shows the full help in ov
func showHelpPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
