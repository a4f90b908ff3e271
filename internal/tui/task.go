package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	internalstrings "github.com/duecli/due/internal/strings"
	"github.com/duecli/due/internal/ui"
	"github.com/duecli/due/task"
	"github.com/mattn/go-runewidth"
)

type taskItem struct {
	task    task.Task
	isDraft bool
}

func (item taskItem) FilterValue() string {
	if item.isDraft {
		return "draft"
	}
	return item.task.Title
}

type taskItemDelegate struct {
	now           func() time.Time
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	doneStyle     lipgloss.Style
	urgentStyle   lipgloss.Style
}

func newTaskItemDelegate(now func() time.Time) taskItemDelegate {
	return taskItemDelegate{
		now:           now,
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")),
		doneStyle:     valueMuted,
		urgentStyle:   urgentStyle,
	}
}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	line := formatTaskItem(item, m.Width(), d.now())
	style := d.normalStyle
	if index == m.Index() {
		style = d.selectedStyle
	} else if !item.isDraft && item.task.Completed {
		style = d.doneStyle
	} else if !item.isDraft && item.task.Urgency(d.now()) == task.UrgencyUrgent {
		style = d.urgentStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTaskItem(item taskItem, width int, now time.Time) string {
	marker := "[ ]"
	if item.task.Completed {
		marker = "[x]"
	}
	if item.isDraft {
		marker = "new"
	}
	title := strings.TrimSpace(item.task.Title)
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s %s  [%s]  %s", marker, title, item.task.Category, ui.FormatDeadline(item.task, now))
	return truncateText(line, width)
}

type taskFieldKind int

const (
	fieldTitle taskFieldKind = iota
	fieldDescription
	fieldDeadline
	fieldCategory
)

type taskField struct {
	kind      taskFieldKind
	label     string
	input     textinput.Model
	textarea  textarea.Model
	multiLine bool
}

func newTaskField(kind taskFieldKind, label string, value string) taskField {
	field := taskField{kind: kind, label: label}
	if kind == fieldDescription {
		area := textarea.New()
		area.SetValue(value)
		area.ShowLineNumbers = false
		area.Prompt = ""
		field.textarea = area
		field.multiLine = true
		return field
	}
	input := textinput.New()
	input.SetValue(value)
	input.Prompt = ""
	if kind == fieldTitle {
		input.CharLimit = task.MaxTitleLength
	}
	if kind == fieldDeadline {
		input.Placeholder = "DD-MM-YYYY"
	}
	field.input = input
	return field
}

func (field taskField) Value() string {
	if field.multiLine {
		return field.textarea.Value()
	}
	return field.input.Value()
}

func (field taskField) Focus() taskField {
	if field.multiLine {
		field.textarea.Focus()
		return field
	}
	field.input.Focus()
	return field
}

func (field taskField) Blur() taskField {
	if field.multiLine {
		field.textarea.Blur()
		return field
	}
	field.input.Blur()
	return field
}

func (field taskField) Update(msg tea.Msg) (taskField, tea.Cmd) {
	var cmd tea.Cmd
	if field.multiLine {
		field.textarea, cmd = field.textarea.Update(msg)
		return field, cmd
	}
	field.input, cmd = field.input.Update(msg)
	return field, cmd
}

func (field taskField) View() string {
	if field.multiLine {
		return field.textarea.View()
	}
	return field.input.View()
}

type taskDetailModel struct {
	task       task.Task
	isDraft    bool
	now        func() time.Time
	fields     []taskField
	fieldIndex int
	focused    bool
	dirty      bool
	viewport   viewport.Model
}

func newTaskDetailModel(now func() time.Time) taskDetailModel {
	return taskDetailModel{now: now, viewport: viewport.New(0, 0)}
}

func (model *taskDetailModel) SetTask(item task.Task, isDraft bool) {
	wasFocused := model.focused
	model.task = item
	model.isDraft = isDraft
	model.fields = buildTaskFields(item)
	model.fieldIndex = 0
	model.focused = false
	model.dirty = false
	if wasFocused {
		model.focused = true
		if len(model.fields) > 0 {
			model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Focus()
		}
	}
	model.refreshViewport(true)
}

func (model *taskDetailModel) SetSize(width, height int) {
	inputWidth := width - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i, field := range model.fields {
		if field.multiLine {
			field.textarea.SetWidth(inputWidth)
			field.textarea.SetHeight(5)
		} else {
			field.input.Width = inputWidth
		}
		model.fields[i] = field
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	model.viewport.Width = width
	model.viewport.Height = height
	model.refreshViewport(false)
}

func (model *taskDetailModel) Focus() {
	if model.focused {
		return
	}
	model.focused = true
	if len(model.fields) > 0 {
		model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Focus()
	}
	model.refreshViewport(false)
}

func (model *taskDetailModel) Blur() {
	model.focused = false
	for i := range model.fields {
		model.fields[i] = model.fields[i].Blur()
	}
	model.refreshViewport(false)
}

func (model taskDetailModel) IsDirty() bool {
	return model.dirty
}

func (model taskDetailModel) Update(msg tea.Msg) (taskDetailModel, tea.Cmd, bool) {
	if !model.focused {
		return model, nil, false
	}

	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			model = model.advanceField(1)
			return model, nil, false
		case "shift+tab", "backtab":
			model = model.advanceField(-1)
			return model, nil, false
		case "ctrl+s":
			return model, nil, true
		}
		if updated, cmd, handled := model.handleViewportKey(key); handled {
			return updated, cmd, false
		}
	}

	if _, ok := msg.(tea.MouseMsg); ok {
		model.viewport, cmd = model.viewport.Update(msg)
		return model, cmd, false
	}

	if len(model.fields) == 0 {
		return model, nil, false
	}

	model.fields[model.fieldIndex], cmd = model.fields[model.fieldIndex].Update(msg)
	model.dirty = model.computeDirty()
	model.refreshViewport(false)
	return model, cmd, false
}

func (model taskDetailModel) advanceField(delta int) taskDetailModel {
	if len(model.fields) == 0 {
		return model
	}
	model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Blur()
	model.fieldIndex = (model.fieldIndex + delta + len(model.fields)) % len(model.fields)
	model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Focus()
	model.refreshViewport(false)
	return model
}

func (model taskDetailModel) computeDirty() bool {
	values := model.valuesByKind()
	if strings.TrimSpace(values[fieldTitle]) != strings.TrimSpace(model.task.Title) {
		return true
	}
	if values[fieldDescription] != model.task.Description {
		return true
	}
	if strings.TrimSpace(values[fieldDeadline]) != model.task.Deadline {
		return true
	}
	if !strings.EqualFold(strings.TrimSpace(values[fieldCategory]), model.task.Category) {
		return true
	}
	return false
}

func (model taskDetailModel) valuesByKind() map[taskFieldKind]string {
	values := make(map[taskFieldKind]string, len(model.fields))
	for _, field := range model.fields {
		values[field.kind] = field.Value()
	}
	return values
}

func (model taskDetailModel) View() string {
	return model.viewport.View()
}

func (model *taskDetailModel) handleViewportKey(key tea.KeyMsg) (taskDetailModel, tea.Cmd, bool) {
	switch key.String() {
	case "up", "down":
		if model.focused && model.currentFieldIsMultiline() {
			return *model, nil, false
		}
	case "pgup", "pgdown", "home", "end":
	default:
		return *model, nil, false
	}
	var cmd tea.Cmd
	model.viewport, cmd = model.viewport.Update(key)
	return *model, cmd, true
}

func (model taskDetailModel) currentFieldIsMultiline() bool {
	if len(model.fields) == 0 {
		return false
	}
	return model.fields[model.fieldIndex].multiLine
}

func (model *taskDetailModel) refreshViewport(reset bool) {
	model.viewport.SetContent(model.renderContent())
	if reset {
		model.viewport.GotoTop()
	}
}

func (model taskDetailModel) renderContent() string {
	if model.task.ID == 0 && !model.isDraft {
		return valueMuted.Render("No task selected")
	}

	lines := make([]string, 0, len(model.fields)+8)
	lines = append(lines, labelStyle.Render("Editable"))
	for _, field := range model.fields {
		if field.kind == fieldDescription {
			lines = append(lines, fmt.Sprintf("%s:", labelStyle.Render(field.label)))
			lines = append(lines, field.View())
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", labelStyle.Render(field.label), field.View()))
	}

	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("Read-only"))
	lines = append(lines, formatDetailRow("ID", formatTaskID(model.task, model.isDraft)))
	lines = append(lines, formatDetailRow("Created", model.task.CreatedDate))
	lines = append(lines, formatDetailRow("Completed", formatCompleted(model.task.Completed)))
	lines = append(lines, formatDetailRow("State", string(model.task.Urgency(model.now()))))
	lines = append(lines, formatDetailRow("Due", ui.FormatDeadline(model.task, model.now())))

	content := strings.Join(lines, "\n")
	width := model.viewport.Width
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

// buildCreateOptions assembles the form values for Store.Create. The
// store normalizes and validates, so values pass through verbatim apart
// from title trimming.
func (model taskDetailModel) buildCreateOptions() (string, task.CreateOptions) {
	values := model.valuesByKind()
	return strings.TrimSpace(values[fieldTitle]), task.CreateOptions{
		Description: values[fieldDescription],
		Deadline:    values[fieldDeadline],
		Category:    values[fieldCategory],
	}
}

// buildUpdateOptions assembles the form values for Store.Edit. Every
// field carries a pointer: the form always shows the full task, so a
// save writes the full task back.
func (model taskDetailModel) buildUpdateOptions() task.UpdateOptions {
	values := model.valuesByKind()
	return task.UpdateOptions{
		Title:       stringPtr(values[fieldTitle]),
		Description: stringPtr(values[fieldDescription]),
		Deadline:    stringPtr(values[fieldDeadline]),
		Category:    stringPtr(values[fieldCategory]),
	}
}

func buildTaskFields(item task.Task) []taskField {
	return []taskField{
		newTaskField(fieldTitle, "Title", item.Title),
		newTaskField(fieldDescription, "Description", item.Description),
		newTaskField(fieldDeadline, "Deadline", item.Deadline),
		newTaskField(fieldCategory, "Category", item.Category),
	}
}

func formatTaskID(item task.Task, isDraft bool) string {
	if isDraft {
		return "draft"
	}
	return strconv.Itoa(item.ID)
}

func formatCompleted(done bool) string {
	if done {
		return "yes"
	}
	return "no"
}

func formatDetailRow(label, value string) string {
	return fmt.Sprintf("%s: %s", labelStyle.Render(label), valueMuted.Render(valueOrDash(value)))
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}

func valueOrDash(value string) string {
	if internalstrings.IsBlank(value) {
		return "-"
	}
	return value
}

func stringPtr(value string) *string {
	return &value
}
