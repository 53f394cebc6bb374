// Package tui is the terminal shell for the search form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sitesearch/internal/models"
	"sitesearch/internal/render"
	"sitesearch/internal/session"
)

const (
	focusURL = iota
	focusQuery
	focusResults
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Toggle key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
	Abort  key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "view html")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to form")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type searchDoneMsg struct {
	results []models.SearchResult
	err     error
}

type Model struct {
	ctx      context.Context
	searcher session.Searcher
	ctrl     *session.Controller

	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	cards    []render.Card
	selected int
	notice   string

	width    int
	quitting bool
}

func NewModel(ctx context.Context, searcher session.Searcher, ctrl *session.Controller) Model {
	inputs := make([]textinput.Model, 2)

	inputs[focusURL] = textinput.New()
	inputs[focusURL].Placeholder = "Enter Website URL"
	inputs[focusURL].Prompt = "🌐 "
	inputs[focusURL].CharLimit = 2048
	inputs[focusURL].Width = 60
	inputs[focusURL].Focus()

	inputs[focusQuery] = textinput.New()
	inputs[focusQuery].Placeholder = "Enter Your Search Query"
	inputs[focusQuery].Prompt = "🔍 "
	inputs[focusQuery].CharLimit = 512
	inputs[focusQuery].Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		ctx:      ctx,
		searcher: searcher,
		ctrl:     ctrl,
		inputs:   inputs,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case searchDoneMsg:
		m.ctrl.Complete(msg.results, msg.err)
		m.cards = render.NewCards(m.ctrl.State().Results)
		m.selected = 0
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.Abort) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.notice != "" {
			// the notice is modal: any key dismisses it
			m.notice = ""
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Next):
			return m.setFocus(m.nextFocus(1))
		case key.Matches(msg, keys.Prev):
			return m.setFocus(m.nextFocus(-1))
		}
		if m.focus == focusResults {
			return m.handleResults(msg)
		}
		return m.handleInput(msg)
	}

	return m, nil
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Submit) {
		return m.submit()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.ctrl.SetURL(m.inputs[focusURL].Value())
	m.ctrl.SetQuery(m.inputs[focusQuery].Value())
	return m, cmd
}

func (m Model) handleResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		return m.setFocus(focusQuery)
	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, keys.Down):
		if m.selected < len(m.cards)-1 {
			m.selected++
		}
	case key.Matches(msg, keys.Toggle):
		if m.selected < len(m.cards) {
			m.cards[m.selected].Toggle()
		}
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.SetURL(m.inputs[focusURL].Value())
	m.ctrl.SetQuery(m.inputs[focusQuery].Value())

	req, err := m.ctrl.Begin()
	switch {
	case errors.Is(err, session.ErrMissingFields):
		m.notice = session.MissingFieldsNotice
		return m, nil
	case err != nil:
		// busy: the search control is disabled while loading
		return m, nil
	}
	m.cards = nil
	m.selected = 0
	return m, tea.Batch(m.spinner.Tick, m.search(req))
}

func (m Model) search(req models.SearchRequest) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		results, err := searcher.Search(ctx, req)
		return searchDoneMsg{results: results, err: err}
	}
}

func (m Model) nextFocus(step int) int {
	n := 2
	if len(m.cards) > 0 {
		n = 3
	}
	return ((m.focus+step)%n + n) % n
}

func (m Model) setFocus(f int) (tea.Model, tea.Cmd) {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("Website Content Search"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Search through website content with precision"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("press any key"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.inputs[focusURL].View())
	b.WriteString("\n")
	b.WriteString(m.inputs[focusQuery].View())
	b.WriteString("  ")
	st := m.ctrl.State()
	if st.Loading {
		b.WriteString(disabledButtonStyle.Render(m.spinner.View() + " Searching..."))
	} else {
		b.WriteString(buttonStyle.Render("Search"))
	}
	b.WriteString("\n\n")

	if st.Error != "" {
		b.WriteString(errorStyle.Render(st.Error))
		b.WriteString("\n")
	}
	for i, c := range m.cards {
		b.WriteString(m.renderCard(c, m.focus == focusResults && i == m.selected))
		b.WriteString("\n")
	}
	if m.ctrl.ShowNoResults() {
		b.WriteString(mutedStyle.Render("No results found."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderCard(c render.Card, selected bool) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left,
			cardTitleStyle.Render(c.Result.Result),
			mutedStyle.Render("Path: "+c.Result.Path),
		),
		"  ",
		scoreStyle.Render(fmt.Sprintf("%d%% match", c.ScorePercent())),
	)
	parts := []string{header, toggleStyle.Render(c.ToggleLabel())}
	if c.ShowHTML {
		parts = append(parts, previewStyle.Render(c.Result.HTML))
	}
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) helpLine() string {
	if m.focus == focusResults {
		return "↑/↓ select • enter/space view html • esc form • tab next • q quit"
	}
	return "tab next field • enter search • ctrl+c quit"
}
