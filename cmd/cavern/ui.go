package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/abiggs624/cavern/internal/session"
	"github.com/abiggs624/cavern/pkg/prompts"
)

const (
	GameTitle       = "CAVERN"
	PlaceholderText = "What do you do?"
)

type messageKind int

const (
	kindStory messageKind = iota
	kindPlayer
	kindError
)

// logEntry is one rendered line group in the story view. Entries are
// append-only; prior entries are never edited or removed.
type logEntry struct {
	kind messageKind
	text string
}

// GameUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	session  *session.Session
	logger   *slog.Logger
	viewport viewport.Model
	input    textinput.Model
	entries  []logEntry
	ready    bool
	width    int
	height   int

	// True from startup until the opening narration call returns.
	awakening bool

	// True while any narration call is in flight. Gates submission:
	// the input stays blurred so a second send is impossible.
	loading bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type openingMsg struct {
	text string
	err  error
}

type narrationMsg struct {
	text string
	err  error
}

type progressTickMsg struct{}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Italic(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // pale gold

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewGameUI(sess *session.Session, logger *slog.Logger) GameUI {
	ti := textinput.New()
	ti.Placeholder = PlaceholderText
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 500
	ti.Width = 50

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return GameUI{
		session:   sess,
		logger:    logger,
		input:     ti,
		viewport:  vp,
		entries:   make([]logEntry, 0),
		awakening: true,
		loading:   true,
	}
}

func (m GameUI) Init() tea.Cmd {
	return tea.Batch(m.startSession(), progressTick())
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = m.width - 6
		m.viewport.Height = m.height - 5
		m.input.Width = m.width - 10

		m.ready = true
		m.writeStoryContent()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyTab:
			// The toggle stays available while a call is in
			// flight: neither view depends on its outcome.
			m.session.ToggleMode()
			return m, nil

		case tea.KeyEnter:
			if m.session.Mode() != session.ModeNarration {
				return m, nil
			}
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}

			m.input.Reset()
			m.input.Blur()
			m.loading = true
			m.progressTick = 0

			m.entries = append(m.entries, logEntry{kind: kindPlayer, text: "> " + input})
			m.writeStoryContent()

			return m, tea.Batch(m.submitCommand(input), progressTick())
		}

	case openingMsg:
		m.awakening = false
		m.loading = false
		if msg.err != nil {
			// The placeholder is simply cleared; no narration is
			// shown for a failed opening call. Input is enabled
			// anyway so the player can try an action.
			m.logger.Error("opening narration not shown", "error", msg.err)
		} else {
			m.entries = append(m.entries, logEntry{kind: kindStory, text: msg.text})
		}
		m.writeStoryContent()
		m.input.Focus()
		return m, textinput.Blink

	case narrationMsg:
		m.loading = false
		if msg.err != nil {
			m.entries = append(m.entries, logEntry{kind: kindError, text: prompts.NarrationErrorText})
		} else {
			m.entries = append(m.entries, logEntry{kind: kindStory, text: msg.text})
		}
		m.writeStoryContent()
		m.input.Focus()
		return m, textinput.Blink

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeStoryContent()
			return m, progressTick()
		}
	}

	m.input, tiCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// writeStoryContent rebuilds the story viewport from the entry log for
// the current width and pins the scroll position to the newest entry.
func (m *GameUI) writeStoryContent() {
	width := m.viewport.Width - 4
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(GameTitle) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, entry := range m.entries {
		switch entry.kind {
		case kindPlayer:
			content.WriteString(playerStyle.Render(wordwrap.String(entry.text, width)) + "\n\n")
		case kindError:
			content.WriteString(errorStyle.Render(wordwrap.String(entry.text, width)) + "\n\n")
		default:
			content.WriteString(storyStyle.Render(wordwrap.String(entry.text, width)) + "\n\n")
		}
	}

	if m.awakening {
		content.WriteString(loadingStyle.Render(prompts.AwakeningText) + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// writeInventoryContent builds the inventory view from the given item
// list. It is rebuilt from session state on every render, so a future
// mutable inventory needs no changes here.
func writeInventoryContent(items []string, width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("INVENTORY") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	if len(items) == 0 {
		content.WriteString(promptStyle.Render(prompts.EmptyInventoryText) + "\n")
	} else {
		for _, item := range items {
			content.WriteString(itemStyle.Render("• "+item) + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Tab returns to the story."))
	return content.String()
}

func (m GameUI) startSession() tea.Cmd {
	return func() tea.Msg {
		text, err := m.session.Start(context.Background())
		return openingMsg{text: text, err: err}
	}
}

func (m GameUI) submitCommand(input string) tea.Cmd {
	return func() tea.Msg {
		text, err := m.session.Submit(context.Background(), input)
		return narrationMsg{text: text, err: err}
	}
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.loading {
					m.input.Focus()
					return m, textinput.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Cave?"))
	content.WriteString("\n\n")
	content.WriteString("Your story will be lost to the dark.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing"))

	modal := modalStyle.Width(46).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	if m.session.Mode() == session.ModeInventory {
		width := m.viewport.Width - 4
		if width < 10 {
			width = 10
		}
		return storyPanelStyle.Width(m.width - 2).Height(m.height - 2).Render(
			writeInventoryContent(m.session.Inventory(), width),
		)
	}

	return storyPanelStyle.Width(m.width - 2).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(m.width-8, 10))),
			m.input.View(),
		),
	)
}

// renderProgressBar creates an animated progress bar for loading states
func (m GameUI) renderProgressBar() string {
	usable := m.viewport.Width - 4
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}
	if usable > 60 {
		usable = 60
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		switch {
		case i < filled:
			bar.WriteString("█")
		case i == filled && frame%4 < 2:
			bar.WriteString("▓")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
