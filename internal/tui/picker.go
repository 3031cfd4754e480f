// Package tui provides a full-screen volume picker as an alternative to
// the plain numbered menu. Unlike the menu it has an explicit
// cancellation path: q, esc and ctrl+c abort the run cleanly.
package tui

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kriansa/ntfs-mount/internal/volume"
)

// ErrCanceled is returned when the user quits the picker without
// choosing a volume.
var ErrCanceled = errors.New("selection canceled")

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	candidate volume.Candidate
}

func (i item) Title() string {
	if i.candidate.Label == "" {
		return volume.DefaultLabel
	}
	return i.candidate.Label
}

func (i item) Description() string { return i.candidate.DevicePath() }
func (i item) FilterValue() string { return i.Title() }

type model struct {
	list     list.Model
	choice   *volume.Candidate
	canceled bool
}

func newModel(candidates []volume.Candidate) model {
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = item{candidate: c}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select an NTFS volume to mount read/write"
	l.SetShowStatusBar(false)

	return model{list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Leave keys alone while the user is filtering the list.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.choice = &it.candidate
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() tea.View {
	v := tea.NewView(docStyle.Render(m.list.View()))
	v.AltScreen = true
	return v
}

// Picker selects a volume through a bubbletea list.
type Picker struct{}

// NewPicker creates a TUI volume picker.
func NewPicker() *Picker {
	return &Picker{}
}

// Pick runs the picker until the user chooses a volume or quits.
func (p *Picker) Pick(ctx context.Context, candidates []volume.Candidate) (volume.Candidate, error) {
	program := tea.NewProgram(newModel(candidates), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return volume.Candidate{}, fmt.Errorf("run volume picker: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.canceled || m.choice == nil {
		return volume.Candidate{}, ErrCanceled
	}

	return *m.choice, nil
}
