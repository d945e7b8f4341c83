// Package tui is the interactive surface over the task repository and
// status poller. It holds no task or sync logic of its own: every
// keypress delegates to internal/task or internal/git.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notegit/notegit/internal/config"
	"github.com/notegit/notegit/internal/git"
	"github.com/notegit/notegit/internal/task"
	"github.com/notegit/notegit/internal/tui/components"
	"github.com/notegit/notegit/internal/tui/styles"
)

// Model is the main Bubble Tea model: a task list plus a sync status
// bar.
type Model struct {
	width  int
	height int

	cfg    config.Config
	repo   *task.Repository
	poller *git.Poller

	tasks   []task.Task
	cursor  int
	filter  task.Priority
	loading bool
	err     error

	status     git.Status
	haveStatus bool

	spin      spinner.Model
	statusBar components.StatusBar
}

type tasksLoadedMsg struct {
	tasks []task.Task
	err   error
}

type statusLoadedMsg struct {
	status git.Status
	err    error
}

type toggledMsg struct {
	err error
}

// Run starts the TUI over the given vault root.
func Run(vaultDir string) error {
	cfg, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	gateway := git.NewGateway(vaultDir, cfg.StatusArgv(), cfg.SyncArgv(), cfg.CommandTimeout())
	poller := git.NewPoller(gateway, cfg.DebounceWindow())
	defer poller.Close()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		cfg:       cfg,
		repo:      task.NewRepository(vaultDir, cfg.ExcludePatterns),
		poller:    poller,
		loading:   true,
		spin:      sp,
		statusBar: components.NewStatusBar(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, m.loadTasks()}
	if m.cfg.ShowStatusBar {
		cmds = append(cmds, m.loadStatus())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tasksLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.tasks = msg.tasks
			if m.cursor >= len(m.tasks) {
				m.cursor = max(0, len(m.tasks)-1)
			}
		}
		return m, nil

	case statusLoadedMsg:
		if msg.err == nil {
			m.status = msg.status
			m.haveStatus = true
		} else {
			m.haveStatus = false
		}
		return m, nil

	case toggledMsg:
		if msg.err != nil && !errors.Is(msg.err, task.ErrStaleTask) {
			m.err = msg.err
			return m, nil
		}
		// A stale toggle means the file changed under us: rescanning is
		// the fix either way.
		cmds := []tea.Cmd{m.loadTasks()}
		if m.cfg.ShowStatusBar {
			cmds = append(cmds, m.loadStatus())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		repo := m.repo
		return m, func() tea.Msg {
			_, err := repo.Toggle(t)
			return toggledMsg{err: err}
		}
	case "r":
		m.loading = true
		cmds := []tea.Cmd{m.loadTasks()}
		if m.cfg.ShowStatusBar {
			cmds = append(cmds, m.loadStatus())
		}
		return m, tea.Batch(cmds...)
	case "1":
		return m.setFilter(task.PriorityP1)
	case "2":
		return m.setFilter(task.PriorityP2)
	case "3":
		return m.setFilter(task.PriorityP3)
	case "n":
		return m.setFilter(task.PriorityNext)
	case "w":
		return m.setFilter(task.PriorityWaiting)
	case "s":
		return m.setFilter(task.PrioritySomeday)
	case "a":
		return m.setFilter(task.PriorityNone)
	}
	return m, nil
}

func (m Model) setFilter(p task.Priority) (tea.Model, tea.Cmd) {
	m.filter = p
	m.cursor = 0
	m.loading = true
	return m, m.loadTasks()
}

func (m Model) loadTasks() tea.Cmd {
	repo, filter := m.repo, m.filter
	return func() tea.Msg {
		tasks, err := repo.List(filter)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) loadStatus() tea.Cmd {
	poller := m.poller
	return func() tea.Msg {
		status, err := poller.Refresh(context.Background())
		return statusLoadedMsg{status: status, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	title := "Tasks"
	if m.filter != task.PriorityNone {
		title = fmt.Sprintf("Tasks (%s)", m.filter)
	}
	s := styles.TitleStyle.Render(title) + "\n"

	switch {
	case m.err != nil:
		s += styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case m.loading:
		s += m.spin.View() + " Scanning vault...\n"
	case len(m.tasks) == 0:
		s += styles.SubtleStyle.Render("No tasks found.") + "\n"
	default:
		s += m.renderTasks()
	}

	s += "\n" + m.statusBar.Render(m.width, m.statusItems())
	return s
}

func (m Model) renderTasks() string {
	var s string
	lastFile := ""
	for i, t := range m.tasks {
		if t.FilePath != lastFile {
			s += styles.SubtleStyle.Render(t.FilePath) + "\n"
			lastFile = t.FilePath
		}
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %s", marker, t.Content)
		if t.Priority != task.PriorityNone {
			line += " " + styles.PriorityStyle.Render("("+string(t.Priority)+")")
		}
		if i == m.cursor {
			line = styles.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}
	return s
}

func (m Model) statusItems() []string {
	items := []string{"enter toggle", "1-3/n/w/s filter", "a all", "r reload", "q quit"}
	if !m.cfg.ShowStatusBar {
		return items
	}
	if !m.haveStatus {
		return append([]string{"sync: ?"}, items...)
	}
	sync := fmt.Sprintf("%s: %d change(s)", m.status.Branch, m.status.ChangeCount)
	if m.status.Clean {
		sync = styles.CleanStyle.Render(m.status.Branch + ": clean")
	}
	return append([]string{sync}, items...)
}
