// Package tui implements the interactive session browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/nexusai/nexus/internal/llm"
	"github.com/nexusai/nexus/internal/session"
)

// Model represents the Bubble Tea model for the session browser.
type Model struct {
	registry *session.Registry
	sessions []*session.Session

	cursor   int
	viewport viewport.Model

	width  int
	height int
	ready  bool

	// Alert notifications.
	alert bubbleup.AlertModel

	confirmDelete bool
	quitting      bool

	// Session chosen with enter, empty when the browser was dismissed.
	Selected string
}

// New creates a new session browser model.
func New(registry *session.Registry) *Model {
	alert := bubbleup.NewAlertModel(25, true, 1)
	return &Model{
		registry: registry,
		sessions: registry.Sessions(),
		alert:    *alert,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.alert.Init()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, previewHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
		}
		m.refreshPreview()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// An armed delete consumes the next key.
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			return m.deleteSelected()
		}
		return nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshPreview()
		}
	case "down", "j":
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
			m.refreshPreview()
		}
	case "enter":
		if len(m.sessions) > 0 {
			m.Selected = m.sessions[m.cursor].ID
			m.quitting = true
			return tea.Quit
		}
	case "d":
		if len(m.sessions) > 0 {
			m.confirmDelete = true
		}
	}
	return nil
}

func (m *Model) deleteSelected() tea.Cmd {
	target := m.sessions[m.cursor]
	if err := m.registry.Delete(target.ID); err != nil {
		return m.alert.NewAlertCmd(bubbleup.ErrorKey, err.Error())
	}
	m.sessions = m.registry.Sessions()
	if m.cursor >= len(m.sessions) && m.cursor > 0 {
		m.cursor--
	}
	m.refreshPreview()
	return m.alert.NewAlertCmd(bubbleup.InfoKey, "Session deleted")
}

// refreshPreview renders the selected session's messages into the viewport.
func (m *Model) refreshPreview() {
	if !m.ready {
		return
	}
	if len(m.sessions) == 0 {
		m.viewport.SetContent(metaStyle.Render("No sessions yet. Run `nexus chat` to start one."))
		return
	}

	var b strings.Builder
	for _, message := range m.sessions[m.cursor].Messages {
		switch message.Role {
		case llm.RoleUser:
			b.WriteString(selectedStyle.Render("> " + truncate(message.Content)))
		case llm.RoleAssistant:
			if message.Kind == llm.KindImage {
				b.WriteString(rowStyle.Render(fmt.Sprintf("%s [image] %s", truncate(message.Content), message.ImageRef)))
			} else {
				b.WriteString(rowStyle.Render(truncate(message.Content)))
			}
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" nexus sessions (%d) ", len(m.sessions))))
	b.WriteString("\n\n")

	for i, s := range m.sessions {
		line := fmt.Sprintf("%s  %s", s.Title, metaStyle.Render(fmt.Sprintf("%d messages, updated %s", len(s.Messages), s.UpdatedAt.Format("2006-01-02 15:04"))))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(previewStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	if m.confirmDelete {
		b.WriteString(confirmStyle.Render("Delete this session? Press y to confirm, any other key to cancel"))
	} else {
		b.WriteString(helpStyle.Render("enter: select  d: delete  j/k: move  q: quit"))
	}

	return m.alert.Render(b.String())
}

func truncate(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= truncateLength {
		return text
	}
	return string(runes[:truncateLength]) + truncateSuffix
}
