package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leap71/slicefile/cli"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateBrowse browserState = iota
	stateGotoLayer
	stateShowWarnings
)

type browserModel struct {
	err      error
	res      *cli.DecodeResult
	filename string
	gotoIn   textinput.Model
	layer    int
	width    int
	height   int
	state    browserState
}

type fileLoadedMsg struct {
	err error
	res *cli.DecodeResult
}

func newBrowserModel(filename string) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "layer index"
	ti.CharLimit = 8
	ti.Width = 12
	return &browserModel{filename: filename, gotoIn: ti}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *browserModel) loadFile() tea.Msg {
	res, err := cli.NewDecoder().DecodeFile(m.filename)
	return fileLoadedMsg{res: res, err: err}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case fileLoadedMsg:
		m.res = msg.res
		m.err = msg.err

	case tea.KeyMsg:
		if m.state == stateGotoLayer {
			switch msg.String() {
			case "enter":
				if n, err := strconv.Atoi(m.gotoIn.Value()); err == nil {
					m.setLayer(n)
				}
				m.state = stateBrowse
			case "esc":
				m.state = stateBrowse
			default:
				var cmd tea.Cmd
				m.gotoIn, cmd = m.gotoIn.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.setLayer(m.layer + 1)
		case "down", "j":
			m.setLayer(m.layer - 1)
		case "pgup":
			m.setLayer(m.layer + 10)
		case "pgdown":
			m.setLayer(m.layer - 10)
		case "home":
			m.setLayer(0)
		case "end":
			if m.res != nil {
				m.setLayer(m.res.Stack.SliceCount() - 1)
			}
		case "g":
			m.gotoIn.SetValue("")
			m.gotoIn.Focus()
			m.state = stateGotoLayer
		case "w":
			if m.state == stateShowWarnings {
				m.state = stateBrowse
			} else {
				m.state = stateShowWarnings
			}
		case "esc":
			m.state = stateBrowse
		}
	}
	return m, nil
}

func (m *browserModel) setLayer(n int) {
	if m.res == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	if max := m.res.Stack.SliceCount() - 1; n > max {
		n = max
	}
	m.layer = n
}

func (m *browserModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("slicetool — " + m.filename))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q: quit"))
		return b.String()
	}
	if m.res == nil {
		b.WriteString("loading...\n")
		return b.String()
	}
	if m.res.Stack.SliceCount() == 0 {
		b.WriteString("file contains no layers\n\n")
		b.WriteString(helpStyle.Render("q: quit"))
		return b.String()
	}

	if m.state == stateShowWarnings {
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d warnings", len(m.res.Warnings))))
		b.WriteString("\n")
		for _, w := range m.res.Warnings {
			b.WriteString(warnStyle.Render(fmt.Sprintf("  line %d: %s", w.Line, w.Text)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("w/esc: back  q: quit"))
		return b.String()
	}

	s := m.res.Stack.SliceAt(m.layer)

	cw, ch := m.width-4, m.height-8
	if cw < 10 {
		cw = 40
	}
	if ch < 5 {
		ch = 16
	}
	cv := newCanvas(cw, ch)
	drawSlice(cv, s, m.res.Stack.BoundingBox())
	for _, line := range cv.render() {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"layer %d/%d  z=%.5f  contours=%d  warnings=%d",
		m.layer+1, m.res.Stack.SliceCount(), s.Z(), s.ContourCount(), len(m.res.Warnings))))
	b.WriteString("\n")

	if m.state == stateGotoLayer {
		b.WriteString("goto: ")
		b.WriteString(m.gotoIn.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("j/k: layer  g: goto  w: warnings  q: quit"))
	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
