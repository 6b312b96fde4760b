package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StageMsg advances the progress view to the named stage.
type StageMsg struct {
	Stage string
}

// DoneMsg ends the progress view. When Err is non-empty the run failed.
type DoneMsg struct {
	Err     string
	Summary [][2]string // key-value pairs shown on success
}

// ProgressModel is the Bubble Tea model for a staged pipeline run. Stages
// render as a checklist: done stages get a check, the active one a spinner.
type ProgressModel struct {
	Title  string
	Stages []string

	active   int // index into Stages, -1 before the first StageMsg
	frame    int
	done     bool
	errMsg   string
	summary  [][2]string
	quitting bool
}

// NewProgress creates a progress model over the given stage names.
func NewProgress(title string, stages []string) ProgressModel {
	return ProgressModel{Title: title, Stages: stages, active: -1}
}

type progressTickMsg struct{}

func progressTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func (m ProgressModel) Init() tea.Cmd { return progressTick() }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case progressTickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, progressTick()

	case StageMsg:
		for i, s := range m.Stages {
			if s == msg.Stage {
				m.active = i
				break
			}
		}

	case DoneMsg:
		m.done = true
		m.errMsg = msg.Err
		m.summary = msg.Summary
		if m.errMsg == "" {
			m.active = len(m.Stages)
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(m.Title) + "\n")

	for i, stage := range m.Stages {
		switch {
		case i < m.active || (m.done && m.errMsg == ""):
			sb.WriteString("  " + StyleSuccess.Render("✓") + " " + StyleMeta.Render(stage) + "\n")
		case i == m.active && !m.done:
			spin := StyleBrand.Render(spinnerFrames[m.frame])
			sb.WriteString("  " + spin + " " + StyleValue.Render(stage) + "\n")
		case i == m.active && m.done && m.errMsg != "":
			sb.WriteString("  " + StyleError.Render("✗") + " " + StyleError.Render(stage) + "\n")
		default:
			sb.WriteString("  " + StyleDim.Render("·") + " " + StyleDim.Render(stage) + "\n")
		}
	}

	if m.done {
		sb.WriteString("\n")
		if m.errMsg != "" {
			sb.WriteString(Err(m.errMsg) + "\n")
		} else {
			for _, p := range m.summary {
				key := StyleMeta.Render(p[0] + ":")
				sb.WriteString("  " + key + " " + StyleValue.Render(p[1]) + "\n")
			}
		}
	}

	return sb.String()
}
