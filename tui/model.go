// Package tui is the terminal client: a Bubble Tea program that keeps the
// task list in sync with the server through the pure reducer in tui/state.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskpad/taskpad/client"
	"github.com/taskpad/taskpad/domain"
	"github.com/taskpad/taskpad/tui/state"
)

const dupWarnTTL = 2500 * time.Millisecond

// Messages produced by commands. Every server response is dispatched into the
// reducer as-is; the UI never applies an optimistic guess.
type (
	tasksLoadedMsg []domain.Task
	taskCreatedMsg domain.Task
	taskUpdatedMsg domain.Task
	taskToggledMsg domain.Task
	taskDeletedMsg int64

	apiErrMsg string

	// deleteFailedMsg re-enables the item whose animation already finished.
	deleteFailedMsg struct {
		id  int64
		msg string
	}

	// deleteTickMsg advances one item's delete animation.
	deleteTickMsg struct {
		id  int64
		gen int
		to  deletePhase
	}

	// dupWarnExpiredMsg auto-clears the duplicate-title warning.
	dupWarnExpiredMsg int
)

// Model is the Bubble Tea root model.
type Model struct {
	api *client.Client
	st  state.TodoState

	cursor   int
	input    textinput.Model
	adding   bool
	editing  bool
	editID   int64
	inputErr string

	dupWarn string
	dupGen  int

	del    map[int64]*delAnim
	delGen int

	width  int
	height int
}

// NewModel wires the program to an API client.
func NewModel(api *client.Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	return Model{
		api:   api,
		st:    state.TodoState{IsLoading: true},
		input: ti,
		del:   make(map[int64]*delAnim),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchTasks())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.st = state.Reduce(m.st, state.SetTasks{Tasks: msg})
		m.st = state.Reduce(m.st, state.SetLoading{Loading: false})
		m.clampCursor()
		return m, nil

	case taskCreatedMsg:
		m.st = state.Reduce(m.st, state.AddTask{Task: domain.Task(msg)})
		return m, nil

	case taskUpdatedMsg:
		m.st = state.Reduce(m.st, state.UpdateTask{Task: domain.Task(msg)})
		return m, nil

	case taskToggledMsg:
		m.st = state.Reduce(m.st, state.ToggleTask{Task: domain.Task(msg)})
		return m, nil

	case taskDeletedMsg:
		m.st = state.Reduce(m.st, state.DeleteTask{ID: int64(msg)})
		delete(m.del, int64(msg))
		m.clampCursor()
		return m, nil

	case apiErrMsg:
		m.st = state.Reduce(m.st, state.SetError{Message: string(msg)})
		return m, nil

	case deleteFailedMsg:
		m.st = state.Reduce(m.st, state.SetError{Message: msg.msg})
		delete(m.del, msg.id)
		return m, nil

	case deleteTickMsg:
		return m.advanceDelete(msg)

	case dupWarnExpiredMsg:
		if int(msg) == m.dupGen {
			m.dupWarn = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.adding || m.editing {
			return m.updateInputMode(msg)
		}
		return m.updateListMode(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.inputErr = "Title cannot be empty"
			return m, nil
		}
		if m.adding {
			return m.submitAdd(title)
		}
		return m.submitEdit(title)
	case "esc":
		m.adding = false
		m.editing = false
		m.inputErr = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitAdd runs the local guards and, when they pass, clears any prior error
// and calls the server. Duplicate detection is client-side only: it compares
// trimmed, case-folded titles against the in-memory list.
func (m Model) submitAdd(title string) (tea.Model, tea.Cmd) {
	for _, t := range m.st.Todos {
		if strings.EqualFold(strings.TrimSpace(t.Title), title) {
			m.dupWarn = "Task already exists!"
			m.dupGen++
			gen := m.dupGen
			return m, tea.Tick(dupWarnTTL, func(time.Time) tea.Msg {
				return dupWarnExpiredMsg(gen)
			})
		}
	}

	m.st = state.Reduce(m.st, state.SetError{Message: ""})
	m.adding = false
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	return m, m.createTask(title)
}

func (m Model) submitEdit(title string) (tea.Model, tea.Cmd) {
	id := m.editID
	m.st = state.Reduce(m.st, state.SetError{Message: ""})
	m.editing = false
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	return m, m.updateTask(id, title)
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.st.Todos)-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		m.adding = true
		m.inputErr = ""
		m.input.SetValue("")
		m.input.Placeholder = "What needs to be done?"
		m.input.Focus()
		return m, nil

	case "e":
		task, ok := m.selected()
		if !ok || m.del[task.ID].active() {
			return m, nil
		}
		m.editing = true
		m.editID = task.ID
		m.inputErr = ""
		m.input.SetValue(task.Title)
		m.input.CursorEnd()
		m.input.Placeholder = "Edit task title..."
		m.input.Focus()
		return m, nil

	case " ":
		task, ok := m.selected()
		if !ok || m.del[task.ID].active() {
			return m, nil
		}
		m.st = state.Reduce(m.st, state.SetError{Message: ""})
		return m, m.toggleTask(task.ID)

	case "d":
		task, ok := m.selected()
		if !ok || m.del[task.ID].active() {
			return m, nil
		}
		m.st = state.Reduce(m.st, state.SetError{Message: ""})
		m.delGen++
		anim := &delAnim{phase: phaseExpanding, gen: m.delGen}
		m.del[task.ID] = anim
		return m, phaseTick(task.ID, anim.gen, anim.phase)

	case "r":
		m.st = state.Reduce(m.st, state.SetLoading{Loading: true})
		return m, m.fetchTasks()
	}
	return m, nil
}

// advanceDelete applies one animation tick. Stale ticks (unknown item or
// mismatched generation) are dropped, which makes teardown safe without
// cancelling timers.
func (m Model) advanceDelete(msg deleteTickMsg) (tea.Model, tea.Cmd) {
	anim, ok := m.del[msg.id]
	if !ok || anim.gen != msg.gen {
		return m, nil
	}

	anim.phase = msg.to
	if msg.to == phaseComplete {
		return m, m.deleteTask(msg.id)
	}
	return m, phaseTick(msg.id, msg.gen, msg.to)
}

func phaseTick(id int64, gen int, from deletePhase) tea.Cmd {
	to, ok := from.next()
	if !ok {
		return nil
	}
	return tea.Tick(from.dwell(), func(time.Time) tea.Msg {
		return deleteTickMsg{id: id, gen: gen, to: to}
	})
}

func (m *Model) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.st.Todos) {
		return domain.Task{}, false
	}
	return m.st.Todos[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.st.Todos) {
		m.cursor = len(m.st.Todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Commands. Calls run on background contexts: in-flight requests are not
// cancelled, they simply resolve whenever the transport does.

func (m Model) fetchTasks() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		tasks, err := api.ListTasks(context.Background())
		if err != nil {
			return apiErrMsg(client.Normalize(err))
		}
		return tasksLoadedMsg(tasks)
	}
}

func (m Model) createTask(title string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.CreateTask(context.Background(), title, domain.DefaultPriority)
		if err != nil {
			return apiErrMsg(client.Normalize(err))
		}
		return taskCreatedMsg(*task)
	}
}

func (m Model) updateTask(id int64, title string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.UpdateTask(context.Background(), id, domain.TaskPatch{Title: &title})
		if err != nil {
			return apiErrMsg(client.Normalize(err))
		}
		return taskUpdatedMsg(*task)
	}
}

func (m Model) toggleTask(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.ToggleTask(context.Background(), id)
		if err != nil {
			return apiErrMsg(client.Normalize(err))
		}
		return taskToggledMsg(*task)
	}
}

func (m Model) deleteTask(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.DeleteTask(context.Background(), id); err != nil {
			return deleteFailedMsg{id: id, msg: client.Normalize(err)}
		}
		return taskDeletedMsg(id)
	}
}

func (m Model) View() string {
	var b strings.Builder

	done, pending := 0, 0
	for _, t := range m.st.Todos {
		if t.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	b.WriteString(fmt.Sprintf("%s   %s %d  %s %d  %s %d\n\n",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(m.st.Todos),
	))

	switch {
	case m.st.IsLoading:
		b.WriteString(mutedStyle.Render("Loading tasks...") + "\n")
	case len(m.st.Todos) == 0:
		b.WriteString(mutedStyle.Render("No tasks yet. Press 'a' to add one.") + "\n")
	default:
		for i, t := range m.st.Todos {
			b.WriteString(m.renderRow(i, t) + "\n")
		}
	}

	if m.st.Error != "" {
		b.WriteString("\n" + errorStyle.Render("✖ "+m.st.Error) + "\n")
	}
	if m.dupWarn != "" {
		b.WriteString("\n" + pendingStyle.Render("! "+m.dupWarn) + "\n")
	}

	if m.adding || m.editing {
		title := "Add task"
		if m.editing {
			title = "Edit task"
		}
		if m.inputErr != "" {
			title += " — " + errorStyle.Render(m.inputErr)
		}
		b.WriteString("\n" + inputBarStyle.Render(title+"\n"+m.input.View()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("a add · e edit · space toggle · d delete · r reload · q quit"))
	return b.String()
}

func (m Model) renderRow(index int, t domain.Task) string {
	anim := m.del[t.ID]

	box := mutedStyle.Render(boxUnchecked)
	title := t.Title
	if t.IsCompleted {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}

	badge := string(t.Priority)
	if style, ok := priorityStyles[badge]; ok {
		badge = style.Render(badge)
	}

	line := fmt.Sprintf("%s %s %s", box, title, badge)
	if anim.active() {
		line = m.renderDeleting(t, anim)
	}

	prefix := "  "
	if index == m.cursor {
		prefix = selectedStyle.Render("> ")
	}
	return prefix + line
}

// renderDeleting approximates the browser animation: the row reddens through
// the expanding/spreading/transforming phases and fades before removal.
func (m Model) renderDeleting(t domain.Task, anim *delAnim) string {
	switch anim.phase {
	case phaseExpanding:
		return deletingStyle.Render(fmt.Sprintf("%s %s", boxUnchecked, t.Title))
	case phaseSpreading:
		return spreadStyle.Render(fmt.Sprintf("%s %s", boxUnchecked, t.Title))
	case phaseTransforming:
		return spreadStyle.Render(fmt.Sprintf("✔ %s", t.Title))
	case phaseFading, phaseComplete:
		return fadingStyle.Render(fmt.Sprintf("✔ %s", t.Title))
	}
	return t.Title
}

var _ tea.Model = Model{}
