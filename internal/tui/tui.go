// Package tui implements the full-screen interactive task view.
//
// The layout is a search bar, a task list pane beside a detail pane,
// and a status line carrying the completion summary. All mutations
// route through the store by task id and the list re-renders from the
// store after every mutation, so a selection never acts on a stale
// position.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	internalstrings "github.com/duecli/due/internal/strings"
	"github.com/duecli/due/task"
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
	focusSearch
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDeleteTask
	modalDiscardEdits
)

type model struct {
	store          *task.Store
	now            func() time.Time
	width          int
	height         int
	focus          focusPane
	taskList       list.Model
	detail         taskDetailModel
	search         textinput.Model
	query          string
	modal          confirmModal
	status         string
	statusLevel    statusLevel
	selectedTaskID int
	deleteTaskID   int
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
}

// Run starts the full-screen UI over the store and blocks until quit.
func Run(store *task.Store) error {
	if store == nil {
		return fmt.Errorf("task store is required")
	}
	program := tea.NewProgram(newModel(store, time.Now), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newModel(store *task.Store, now func() time.Time) model {
	taskList := list.New(nil, newTaskItemDelegate(now), 0, 0)
	taskList.Title = "Tasks"
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	return model{
		store:    store,
		now:      now,
		focus:    focusList,
		taskList: taskList,
		detail:   newTaskDetailModel(now),
		search:   search,
		modal:    confirmModal{kind: modalNone},
	}
}

func (m model) Init() tea.Cmd {
	return m.loadTasksCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		updated, cmd, handled := m.handleKey(msg)
		if handled {
			return updated, cmd
		}
		m = updated
	case tasksLoadedMsg:
		m.handleTasksLoaded(msg)
		return m, nil
	case taskSavedMsg:
		return m.handleTaskSaved(msg)
	case taskToggledMsg:
		return m.handleTaskToggled(msg)
	case taskDeletedMsg:
		return m.handleTaskDeleted(msg)
	}

	return m.updateFocused(msg)
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}
	helpLine := m.renderHelpLine()
	statusLine := m.renderStatusLine()
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)

	listPane := m.renderPane(m.taskList.View(), leftWidth, contentHeight, m.focus == focusList)
	detailPane := m.renderPane(m.detail.View(), rightWidth, contentHeight, m.focus == focusDetail)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	view := strings.Join([]string{m.renderSearchBar(), helpLine, content, statusLine}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

// updateFocused routes a message to whichever pane owns the focus.
func (m model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != m.query {
			m.query = m.search.Value()
			return m, tea.Batch(cmd, m.loadTasksCmd())
		}
		return m, cmd
	case focusDetail:
		updated, cmd, saveRequested := m.detail.Update(msg)
		m.detail = updated
		if saveRequested {
			return m, tea.Batch(cmd, m.saveTaskCmd())
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	m.updateTaskSelection()
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()

	if m.focus == focusSearch {
		switch key {
		case "enter":
			updated, cmd := m.leaveSearch(true)
			return updated, cmd, true
		case "esc":
			updated, cmd := m.leaveSearch(false)
			return updated, cmd, true
		case "ctrl+c":
			return m, tea.Quit, true
		}
		return m, nil, false
	}

	if key == "?" && m.focus == focusList {
		return m.openHelp(), nil, true
	}

	if updated, cmd, handled := m.handleListNavigation(key); handled {
		return updated, cmd, true
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit, true
	case "q":
		if m.focus == focusList {
			return m, tea.Quit, true
		}
	case "/":
		if m.focus == focusList {
			return m.enterSearch(), nil, true
		}
	case "enter":
		if m.focus == focusList {
			return m.enterDetail(), nil, true
		}
	case "esc":
		if m.focus == focusList && !internalstrings.IsBlank(m.query) {
			updated, cmd := m.clearSearch()
			return updated, cmd, true
		}
		return m.exitDetail(), nil, true
	case " ", "space":
		if m.focus == focusList {
			updated, cmd := m.toggleSelected()
			return updated, cmd, true
		}
	case "a":
		if m.focus == focusList {
			return m.startTaskDraft(), nil, true
		}
	case "d":
		if m.focus == focusList {
			return m.promptDeleteTask(), nil, true
		}
	}

	return m, nil, false
}

func (m model) handleListNavigation(key string) (model, tea.Cmd, bool) {
	if m.focus != focusList {
		return m, nil, false
	}
	switch key {
	case "up", "k":
		return m.moveListSelection(-1)
	case "down", "j":
		return m.moveListSelection(1)
	case "home":
		return m.moveListSelection(-1 * len(m.taskList.Items()))
	case "end":
		return m.moveListSelection(len(m.taskList.Items()))
	}
	return m, nil, false
}

func (m model) moveListSelection(delta int) (model, tea.Cmd, bool) {
	items := m.taskList.Items()
	if len(items) == 0 {
		return m, nil, true
	}
	current := m.taskList.Index()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	if next == current {
		return m, nil, true
	}
	m.taskList.Select(next)
	m.updateTaskSelection()
	return m, nil, true
}

func (m model) enterSearch() model {
	m.focus = focusSearch
	m.search.Focus()
	return m
}

func (m model) leaveSearch(keep bool) (model, tea.Cmd) {
	m.search.Blur()
	m.focus = focusList
	if !keep {
		m.search.SetValue("")
	}
	if m.search.Value() != m.query {
		m.query = m.search.Value()
		return m, m.loadTasksCmd()
	}
	return m, nil
}

func (m model) clearSearch() (model, tea.Cmd) {
	m.search.SetValue("")
	m.query = ""
	return m, m.loadTasksCmd()
}

func (m model) enterDetail() model {
	if _, ok := m.currentTaskItem(); !ok {
		m.setStatus("No task selected", statusError)
		return m
	}
	return m.setFocus(focusDetail)
}

func (m model) exitDetail() model {
	if m.focus != focusDetail {
		return m
	}
	if m.detail.IsDirty() {
		m.modal = confirmModal{
			kind:        modalDiscardEdits,
			message:     "Discard unsaved changes?",
			confirmText: "Discard",
			cancelText:  "Keep editing",
			selected:    1,
		}
		return m
	}
	if m.detail.isDraft {
		// Leaving an untouched draft abandons it.
		return m.discardTaskEdits()
	}
	return m.setFocus(focusList)
}

func (m model) setFocus(target focusPane) model {
	if m.focus == target {
		return m
	}
	m.focus = target
	if target == focusDetail {
		m.detail.Focus()
	} else {
		m.detail.Blur()
	}
	return m
}

func (m model) startTaskDraft() model {
	for i, item := range m.taskList.Items() {
		if existing, ok := item.(taskItem); ok && existing.isDraft {
			m.taskList.Select(i)
			m.detail.SetTask(existing.task, true)
			return m.setFocus(focusDetail)
		}
	}

	draft := task.Task{Kind: task.KindDeadline, Category: m.defaultCategory()}
	items := append([]list.Item{taskItem{task: draft, isDraft: true}}, m.taskList.Items()...)
	m.taskList.SetItems(items)
	m.taskList.Select(0)
	m.selectedTaskID = 0
	m.detail.SetTask(draft, true)
	m.setStatus("Editing new task", statusInfo)
	return m.setFocus(focusDetail)
}

func (m model) defaultCategory() string {
	categories := m.store.Categories()
	if len(categories) == 0 {
		return ""
	}
	return categories[0]
}

func (m model) promptDeleteTask() model {
	item, ok := m.currentTaskItem()
	if !ok || item.isDraft || item.task.ID == 0 {
		m.setStatus("No task selected", statusError)
		return m
	}
	m.deleteTaskID = item.task.ID
	m.modal = confirmModal{
		kind:        modalDeleteTask,
		message:     fmt.Sprintf("Delete task %d (%s)?", item.task.ID, item.task.Title),
		confirmText: "Delete",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

func (m model) toggleSelected() (model, tea.Cmd) {
	item, ok := m.currentTaskItem()
	if !ok || item.isDraft || item.task.ID == 0 {
		m.setStatus("No task selected", statusError)
		return m, nil
	}
	return m, m.toggleTaskCmd(item.task.ID)
}

func (m *model) updateTaskSelection() bool {
	item, ok := m.currentTaskItem()
	selectedID := 0
	if ok && !item.isDraft {
		selectedID = item.task.ID
	}
	if selectedID == m.selectedTaskID && ok {
		return false
	}
	if ok {
		m.detail.SetTask(item.task, item.isDraft)
	} else {
		m.detail.SetTask(task.Task{}, false)
	}
	m.selectedTaskID = selectedID
	return true
}

func (m *model) handleTasksLoaded(msg tasksLoadedMsg) {
	items := make([]list.Item, 0, len(msg.tasks))
	for _, item := range msg.tasks {
		items = append(items, taskItem{task: item})
	}
	if m.detail.isDraft {
		items = append([]list.Item{taskItem{task: m.detail.task, isDraft: true}}, items...)
	}
	m.taskList.SetItems(items)
	if m.selectedTaskID != 0 {
		m.selectTaskByID(m.selectedTaskID)
	}
	if len(m.taskList.Items()) > 0 && m.taskList.Index() < 0 {
		m.taskList.Select(0)
	}
	m.updateTaskSelection()
}

func (m model) handleTaskSaved(msg taskSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), statusError)
		return m, nil
	}
	m.detail.SetTask(msg.task, false)
	m.selectedTaskID = msg.task.ID
	m.setStatus(fmt.Sprintf("Saved task %d", msg.task.ID), statusInfo)
	return m, m.loadTasksCmd()
}

func (m model) handleTaskToggled(msg taskToggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Toggle failed: %v", msg.err), statusError)
		return m, nil
	}
	state := "reopened"
	if msg.task.Completed {
		state = "done"
	}
	m.setStatus(fmt.Sprintf("Task %d %s", msg.task.ID, state), statusInfo)
	return m, m.loadTasksCmd()
}

func (m model) handleTaskDeleted(msg taskDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Delete failed: %v", msg.err), statusError)
		return m, nil
	}
	if m.selectedTaskID == msg.task.ID {
		m.selectedTaskID = 0
	}
	m.setStatus(fmt.Sprintf("Deleted task %d", msg.task.ID), statusInfo)
	return m, m.loadTasksCmd()
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}
	selection := m.modal.selected
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		if selection == 0 {
			selection = 1
		} else {
			selection = 0
		}
		m.modal.selected = selection
		return m, nil
	case "enter":
		confirm := selection == 0
		return m.resolveModal(confirm)
	case "esc":
		return m.resolveModal(false)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal.kind
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		if kind == modalDeleteTask {
			m.deleteTaskID = 0
		}
		return m, nil
	}
	switch kind {
	case modalDeleteTask:
		id := m.deleteTaskID
		m.deleteTaskID = 0
		return m, m.deleteTaskCmd(id)
	case modalDiscardEdits:
		m = m.discardTaskEdits()
		return m, nil
	default:
		return m, nil
	}
}

func (m model) discardTaskEdits() model {
	if m.detail.isDraft {
		items := make([]list.Item, 0, len(m.taskList.Items()))
		for _, item := range m.taskList.Items() {
			if existing, ok := item.(taskItem); ok && existing.isDraft {
				continue
			}
			items = append(items, item)
		}
		m.taskList.SetItems(items)
		m.detail.SetTask(task.Task{}, false)
		if len(items) > 0 {
			m.taskList.Select(0)
		}
		m.selectedTaskID = 0
	} else {
		if item, ok := m.currentTaskItem(); ok {
			m.detail.SetTask(item.task, false)
		}
	}
	m.detail.Blur()
	m.focus = focusList
	m.setStatus("Edits discarded", statusInfo)
	return m
}

func (m model) currentTaskItem() (taskItem, bool) {
	item := m.taskList.SelectedItem()
	if item == nil {
		return taskItem{}, false
	}
	current, ok := item.(taskItem)
	return current, ok
}

func (m *model) selectTaskByID(id int) {
	if id == 0 {
		return
	}
	for i, item := range m.taskList.Items() {
		existing, ok := item.(taskItem)
		if ok && existing.task.ID == id {
			m.taskList.Select(i)
			return
		}
	}
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)
	listHeight := contentHeight - 2
	if listHeight < 1 {
		listHeight = 1
	}
	listWidth := leftWidth - 4
	if listWidth < 1 {
		listWidth = 1
	}
	innerDetailWidth := rightWidth - 4
	if innerDetailWidth < 1 {
		innerDetailWidth = 1
	}
	innerDetailHeight := contentHeight - 2
	if innerDetailHeight < 1 {
		innerDetailHeight = 1
	}
	m.taskList.SetSize(listWidth, listHeight)
	m.detail.SetSize(innerDetailWidth, innerDetailHeight)
	searchWidth := m.width - 4
	if searchWidth > 0 {
		m.search.Width = searchWidth
	}
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) renderSearchBar() string {
	content := m.search.View()
	if m.focus != focusSearch && internalstrings.IsBlank(m.search.Value()) {
		content = valueMuted.Render("Press / to search")
	}
	helpHint := valueMuted.Render("Press ? for help")
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(helpHint)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := strings.Repeat(" ", spacerWidth)
	return searchBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderStatusLine() string {
	progress := m.store.Progress()
	summary := valueMuted.Render(fmt.Sprintf("%d/%d done (%d%%)", progress.Done, progress.Total, progress.Percent))

	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	status := style.Render(m.status)

	spacerWidth := m.width - lipgloss.Width(status) - lipgloss.Width(summary)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return status + strings.Repeat(" ", spacerWidth) + summary
}

func (m model) renderHelpLine() string {
	text := strings.TrimSpace(m.helpSummary())
	if text == "" {
		return ""
	}
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) helpSummary() string {
	switch m.focus {
	case focusSearch:
		return "Keys: type to filter | enter keep filter | esc clear | ctrl+c quit"
	case focusDetail:
		return "Keys: tab next field | shift+tab prev | ctrl+s save | esc back | pgup/pgdown scroll"
	}
	return "Keys: up/down move | enter edit | space toggle | a add | d delete | / search | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) openHelp() model {
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"?: toggle help",
		"",
		labelStyle.Render("Navigation"),
		"up/down or j/k: move selection",
		"enter: edit the selected task",
		"esc: return to the list",
		"",
		labelStyle.Render("Tasks"),
		"a: add a task",
		"space: toggle done",
		"d: delete (asks first)",
		"/: filter by title, description, or category",
		"ctrl+s: save edits",
		"tab/shift+tab: next/previous field",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	modal := m.modalView()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m model) modalView() string {
	if m.modal.kind == modalHelp {
		modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
		return modalStyle.Render(m.helpContent())
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, 2)
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return modalStyle.Render(content)
}

func (m model) loadTasksCmd() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		if internalstrings.IsBlank(query) {
			return tasksLoadedMsg{tasks: m.store.Tasks()}
		}
		matches := m.store.Query(query)
		tasks := make([]task.Task, 0, len(matches))
		for _, match := range matches {
			tasks = append(tasks, match.Task)
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m model) saveTaskCmd() tea.Cmd {
	detail := m.detail
	return func() tea.Msg {
		if detail.isDraft {
			title, opts := detail.buildCreateOptions()
			created, err := m.store.Create(title, opts)
			if err != nil {
				return taskSavedMsg{err: err}
			}
			return taskSavedMsg{task: created}
		}

		updated, err := m.store.Edit(detail.task.ID, detail.buildUpdateOptions())
		if err != nil {
			return taskSavedMsg{err: err}
		}
		return taskSavedMsg{task: updated}
	}
}

func (m model) toggleTaskCmd(id int) tea.Cmd {
	return func() tea.Msg {
		toggled, err := m.store.Toggle(id)
		return taskToggledMsg{task: toggled, err: err}
	}
}

func (m model) deleteTaskCmd(id int) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.store.Delete(id)
		return taskDeletedMsg{task: removed, err: err}
	}
}

type tasksLoadedMsg struct {
	tasks []task.Task
}

type taskSavedMsg struct {
	task task.Task
	err  error
}

type taskToggledMsg struct {
	task task.Task
	err  error
}

type taskDeletedMsg struct {
	task task.Task
	err  error
}
