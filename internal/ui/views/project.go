package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamsync/internal/auth"
	"teamsync/internal/engine"
	"teamsync/internal/models"
	"teamsync/internal/query"
	"teamsync/internal/store"
	"teamsync/internal/ui/keys"
	"teamsync/internal/ui/styles"
)

// projectTab selects which pane of the project view is shown
type projectTab int

const (
	tabTasks projectTab = iota
	tabTimeline
	tabActivity
)

type taskItem struct {
	task     models.Task
	assignee string
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return i.task.Description }
func (i taskItem) FilterValue() string { return i.task.Title }

type taskDelegate struct {
	styles *styles.Styles
	width  int
}

func (d taskDelegate) Height() int                               { return 2 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(taskItem)
	if !ok {
		return
	}

	s := d.styles
	selected := index == m.Index()
	width := max(d.width-4, 30)

	blocked := ""
	if t.task.IsBlocked {
		blocked = s.Blocked.Render(" ⛔ blocked")
	}
	meta := fmt.Sprintf("%s • %s • %s • due %s",
		s.StatusStyle(t.task.Status).Render(string(t.task.Status)),
		s.PriorityStyle(t.task.Priority).Render(string(t.task.Priority)),
		t.assignee,
		t.task.DueDate.Format("Jan 2"),
	) + blocked

	titleStyle := s.ListItem
	if selected {
		titleStyle = s.ListSelected
	}

	fmt.Fprintf(w, "%s\n%s",
		titleStyle.Width(width).Render(t.task.Title),
		s.ListItem.Width(width).Render(meta),
	)
}

// ProjectView shows one project: header with progress, then a tasks,
// timeline or activity tab.
type ProjectView struct {
	store  *store.Store
	auth   *auth.Service
	engine *engine.Engine
	styles *styles.Styles
	keys   keys.KeyMap

	project  models.Project
	tasks    []models.Task
	users    []models.User
	activity []models.Activity
	loaded   bool

	tab      projectTab
	list     list.Model
	delegate *taskDelegate

	editing    bool
	editTarget *models.Task // nil when creating
	inTitle    textinput.Model
	inDesc     textinput.Model
	inAssignee textinput.Model
	inDue      textinput.Model
	inDuration textinput.Model
	formStatus   models.TaskStatus
	formPriority models.TaskPriority
	focusIdx     int
	formErr      string

	confirmingDelete bool
	deleteTarget     models.Task

	width  int
	height int
}

// NewProjectView creates the view for one project
func NewProjectView(st *store.Store, authSvc *auth.Service, eng *engine.Engine, project models.Project) *ProjectView {
	s := styles.NewStyles()
	delegate := &taskDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = project.Name
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	inTitle := textinput.New()
	inTitle.Placeholder = "Task title"
	inTitle.CharLimit = 100

	inDesc := textinput.New()
	inDesc.Placeholder = "Description"
	inDesc.CharLimit = 200

	inAssignee := textinput.New()
	inAssignee.Placeholder = "Assignee username"
	inAssignee.CharLimit = 50

	inDue := textinput.New()
	inDue.Placeholder = "Due date (YYYY-MM-DD)"
	inDue.CharLimit = 10

	inDuration := textinput.New()
	inDuration.Placeholder = "Duration in days"
	inDuration.CharLimit = 4

	return &ProjectView{
		store:      st,
		auth:       authSvc,
		engine:     eng,
		styles:     s,
		keys:       keys.DefaultKeyMap(),
		project:    project,
		list:       l,
		delegate:   delegate,
		inTitle:    inTitle,
		inDesc:     inDesc,
		inAssignee: inAssignee,
		inDue:      inDue,
		inDuration: inDuration,
	}
}

func (v *ProjectView) Init() tea.Cmd {
	return v.load
}

type projectLoadedMsg struct {
	tasks    []models.Task
	users    []models.User
	activity []models.Activity
}

func (v *ProjectView) load() tea.Msg {
	tasks, err := v.store.ListProjectTasks(v.project.ID)
	if err != nil {
		return err
	}
	users, err := v.store.ListUsers()
	if err != nil {
		return err
	}
	activity, err := v.store.ListProjectActivities(v.project.ID)
	if err != nil {
		return err
	}
	return projectLoadedMsg{tasks: tasks, users: users, activity: activity}
}

func (v *ProjectView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-10)
		return v, nil

	case projectLoadedMsg:
		v.tasks = msg.tasks
		v.users = msg.users
		v.activity = msg.activity
		v.loaded = true

		items := make([]list.Item, len(msg.tasks))
		for i, t := range msg.tasks {
			items[i] = taskItem{task: t, assignee: v.userName(t.AssigneeID)}
		}
		v.list.SetItems(items)
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectView) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list's filter input take priority while filtering
	if v.tab == tabTasks && v.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return ShowDashboard{} }

	case key.Matches(msg, v.keys.Tab):
		v.tab = (v.tab + 1) % 3
		return v, nil

	case key.Matches(msg, v.keys.New) && v.tab == tabTasks:
		v.startEditing(nil)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit) && v.tab == tabTasks:
		if item, ok := v.list.SelectedItem().(taskItem); ok {
			task := item.task
			v.startEditing(&task)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete) && v.tab == tabTasks:
		if item, ok := v.list.SelectedItem().(taskItem); ok {
			v.confirmingDelete = true
			v.deleteTarget = item.task
		}
		return v, nil
	}

	if v.tab == tabTasks {
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *ProjectView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		user := v.auth.Current()
		if user == nil {
			return v, nil
		}
		if err := v.engine.DeleteTask(v.deleteTarget.ID, *user); err == nil {
			return v, v.load
		}
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// taskFormInputs returns the text inputs of the task form in focus
// order. Status and priority sit between desc and assignee as cycle
// fields, handled separately.
func (v *ProjectView) taskFormInputs() []*textinput.Model {
	return []*textinput.Model{&v.inTitle, &v.inDesc, &v.inAssignee, &v.inDue, &v.inDuration}
}

// Form rows: 0 title, 1 desc, 2 status (cycle), 3 priority (cycle),
// 4 assignee, 5 due date, 6 duration
const taskFormRows = 7

func (v *ProjectView) startEditing(target *models.Task) {
	v.editing = true
	v.editTarget = target
	v.focusIdx = 0
	v.formErr = ""

	if target == nil {
		v.inTitle.Reset()
		v.inDesc.Reset()
		v.inAssignee.Reset()
		v.inDue.SetValue(time.Now().Format("2006-01-02"))
		v.inDuration.SetValue("1")
		v.formStatus = models.StatusToDo
		v.formPriority = models.PriorityMedium
	} else {
		v.inTitle.SetValue(target.Title)
		v.inDesc.SetValue(target.Description)
		v.inAssignee.SetValue(v.username(target.AssigneeID))
		v.inDue.SetValue(target.DueDate.Format("2006-01-02"))
		v.inDuration.SetValue(strconv.Itoa(target.Duration))
		v.formStatus = target.Status
		v.formPriority = target.Priority
	}
	v.updateTaskFormFocus()
}

func (v *ProjectView) updateTaskFormFocus() {
	for _, in := range v.taskFormInputs() {
		in.Blur()
	}
	switch v.focusIdx {
	case 0:
		v.inTitle.Focus()
	case 1:
		v.inDesc.Focus()
	case 4:
		v.inAssignee.Focus()
	case 5:
		v.inDue.Focus()
	case 6:
		v.inDuration.Focus()
	}
}

func (v *ProjectView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + taskFormRows - 1) % taskFormRows
		v.updateTaskFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % taskFormRows
		v.updateTaskFormFocus()
		return v, nil

	case msg.String() == "ctrl+s", key.Matches(msg, v.keys.Enter) && v.focusIdx == taskFormRows-1:
		return v.submitTask()

	case key.Matches(msg, v.keys.Enter):
		v.focusIdx++
		v.updateTaskFormFocus()
		return v, nil
	}

	// Status and priority rows cycle with ←/→
	if v.focusIdx == 2 || v.focusIdx == 3 {
		delta := 0
		switch {
		case key.Matches(msg, v.keys.Left):
			delta = -1
		case key.Matches(msg, v.keys.Right):
			delta = 1
		}
		if delta != 0 {
			if v.focusIdx == 2 {
				v.formStatus = cycleStatus(v.formStatus, delta)
			} else {
				v.formPriority = cyclePriority(v.formPriority, delta)
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.inTitle, cmd = v.inTitle.Update(msg)
	case 1:
		v.inDesc, cmd = v.inDesc.Update(msg)
	case 4:
		v.inAssignee, cmd = v.inAssignee.Update(msg)
	case 5:
		v.inDue, cmd = v.inDue.Update(msg)
	case 6:
		v.inDuration, cmd = v.inDuration.Update(msg)
	}
	return v, cmd
}

var statusOrder = []models.TaskStatus{models.StatusToDo, models.StatusInProgress, models.StatusDone}
var priorityOrder = []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}

func cycleStatus(s models.TaskStatus, delta int) models.TaskStatus {
	for i, candidate := range statusOrder {
		if candidate == s {
			return statusOrder[(i+delta+len(statusOrder))%len(statusOrder)]
		}
	}
	return statusOrder[0]
}

func cyclePriority(p models.TaskPriority, delta int) models.TaskPriority {
	for i, candidate := range priorityOrder {
		if candidate == p {
			return priorityOrder[(i+delta+len(priorityOrder))%len(priorityOrder)]
		}
	}
	return priorityOrder[0]
}

func (v *ProjectView) submitTask() (tea.Model, tea.Cmd) {
	user := v.auth.Current()
	if user == nil {
		v.editing = false
		return v, nil
	}

	title := strings.TrimSpace(v.inTitle.Value())
	if title == "" {
		v.formErr = "Title is required."
		return v, nil
	}
	due, err := time.Parse("2006-01-02", strings.TrimSpace(v.inDue.Value()))
	if err != nil {
		v.formErr = "Due date must be YYYY-MM-DD."
		return v, nil
	}
	duration, err := strconv.Atoi(strings.TrimSpace(v.inDuration.Value()))
	if err != nil || duration < 1 {
		v.formErr = "Duration must be a whole number of days."
		return v, nil
	}

	// Resolve the assignee by username; an unknown name is passed
	// through as-is so the engine sees the raw identifier.
	assigneeID := strings.TrimSpace(v.inAssignee.Value())
	if u, err := v.store.GetUserByUsername(assigneeID); err == nil && u != nil {
		assigneeID = u.ID
	}

	task := models.Task{
		Title:       title,
		Description: strings.TrimSpace(v.inDesc.Value()),
		Status:      v.formStatus,
		Priority:    v.formPriority,
		AssigneeID:  assigneeID,
		ProjectID:   v.project.ID,
		DueDate:     due,
		Duration:    duration,
	}

	if v.editTarget == nil {
		if _, err := v.engine.CreateTask(task, *user); err != nil {
			v.formErr = err.Error()
			return v, nil
		}
	} else {
		task.ID = v.editTarget.ID
		task.CreatorID = v.editTarget.CreatorID
		task.IsBlocked = v.editTarget.IsBlocked
		if err := v.engine.UpdateTask(task, *user); err != nil {
			v.formErr = err.Error()
			return v, nil
		}
	}

	v.editing = false
	return v, v.load
}

// username maps a user id to its username, for pre-filling the form
func (v *ProjectView) username(userID string) string {
	for _, u := range v.users {
		if u.ID == userID {
			return u.Username
		}
	}
	return userID
}

// userName maps a user id to a display name
func (v *ProjectView) userName(userID string) string {
	for _, u := range v.users {
		if u.ID == userID {
			return u.Name
		}
	}
	return "Unassigned"
}

func (v *ProjectView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderTaskForm()
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	progress := query.Progress(v.tasks)
	header := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(v.project.Name),
		s.TitleMuted.Render(v.project.Description),
		fmt.Sprintf("Progress: %d%%  •  %s – %s  •  %d members",
			progress,
			v.project.StartDate.Format("Jan 2, 2006"),
			v.project.EndDate.Format("Jan 2, 2006"),
			len(v.project.Members)),
	)

	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		v.tabStyle(tabTasks).Render("Tasks"),
		v.tabStyle(tabTimeline).Render("Timeline"),
		v.tabStyle(tabActivity).Render("Activity"),
	)

	var body string
	switch v.tab {
	case tabTasks:
		body = v.list.View()
	case tabTimeline:
		body = v.renderTimeline(contentWidth)
	case tabActivity:
		body = v.renderActivity()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header, "", tabs, "", body, v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectView) tabStyle(tab projectTab) lipgloss.Style {
	if tab == v.tab {
		return v.styles.TabActive
	}
	return v.styles.Tab
}

func (v *ProjectView) renderTimeline(contentWidth int) string {
	s := v.styles

	labelWidth := 24
	barArea := max(contentWidth-labelWidth-6, 20)

	rows := []string{}
	if marker, ok := query.TodayMarker(v.project, time.Now()); ok {
		pad := strings.Repeat(" ", labelWidth+2+int(marker*float64(barArea)))
		rows = append(rows, s.TitleMuted.Render(pad+"▼ today"))
	}

	for _, t := range v.tasks {
		bar := query.TaskBar(v.project, t)
		offset := int(bar.Offset * float64(barArea))
		width := max(int(bar.Width*float64(barArea)), 1)
		if offset+width > barArea {
			width = barArea - offset
		}

		line := fmt.Sprintf("%-*s  %s%s",
			labelWidth, truncate(t.Title, labelWidth),
			strings.Repeat(" ", offset),
			s.StatusStyle(t.Status).Render(strings.Repeat("▬", max(width, 1))),
		)
		rows = append(rows, line)
	}
	if len(v.tasks) == 0 {
		rows = append(rows, s.TitleMuted.Render("No tasks to chart."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectView) renderActivity() string {
	s := v.styles

	rows := []string{}
	for i, a := range v.activity {
		if i == 15 {
			break
		}
		rows = append(rows, fmt.Sprintf("%s  %s",
			s.TitleMuted.Render(a.Timestamp.Format("Jan 2 15:04")),
			describeActivity(a, v.users)))
	}
	if len(rows) == 0 {
		rows = append(rows, s.TitleMuted.Render("No activity yet."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *ProjectView) renderTaskForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 24, 50)

	title := "New Task"
	if v.editTarget != nil {
		title = "Edit Task"
	}

	cycle := func(row int, label string, value string) string {
		style := s.TitleMuted
		if v.focusIdx == row {
			style = s.Title
		}
		return style.Render(fmt.Sprintf("%s ◀ %s ▶", label, value))
	}

	input := func(row int, in *textinput.Model) string {
		style := s.Input
		if v.focusIdx == row {
			style = s.InputFocused
		}
		return style.Width(inputWidth).Render(in.View())
	}

	parts := []string{
		s.Title.Render(title), "",
		"Title:", input(0, &v.inTitle), "",
		"Description:", input(1, &v.inDesc), "",
		cycle(2, "Status:", string(v.formStatus)),
		cycle(3, "Priority:", string(v.formPriority)), "",
		"Assignee:", input(4, &v.inAssignee), "",
		"Due date:", input(5, &v.inDue), "",
		"Duration:", input(6, &v.inDuration),
	}
	if v.formErr != "" {
		parts = append(parts, "", s.ErrorText.Render(v.formErr))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ←/→: change • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed from the project.", v.deleteTarget.Title)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s tabs • %s new • %s edit • %s del • %s back • %s quit",
			s.HelpKey.Render("⇥"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("esc"),
			s.HelpKey.Render("q"),
		),
	)
}
