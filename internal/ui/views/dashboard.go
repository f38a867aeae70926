package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
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

// DashboardView is the landing screen: summary stats, the project list
// with progress, notifications and the activity feed. It is the only
// view available to anonymous users.
type DashboardView struct {
	store  *store.Store
	auth   *auth.Service
	engine *engine.Engine
	styles *styles.Styles
	keys   keys.KeyMap

	projects      []models.Project
	tasks         []models.Task
	users         []models.User
	notifications []models.Notification
	activities    []models.Activity
	loaded        bool

	cursor int

	searching bool
	search    textinput.Model

	creating     bool
	newName      textinput.Model
	newDesc      textinput.Model
	newMembers   textinput.Model
	newStart     textinput.Model
	newEnd       textinput.Model
	focusIdx     int
	formErr      string

	width  int
	height int
}

// NewDashboardView creates the dashboard
func NewDashboardView(st *store.Store, authSvc *auth.Service, eng *engine.Engine) *DashboardView {
	search := textinput.New()
	search.Placeholder = "Search tasks or projects..."
	search.CharLimit = 100

	newName := textinput.New()
	newName.Placeholder = "Project name"
	newName.CharLimit = 100

	newDesc := textinput.New()
	newDesc.Placeholder = "Description"
	newDesc.CharLimit = 200

	newMembers := textinput.New()
	newMembers.Placeholder = "Member usernames, comma separated"
	newMembers.CharLimit = 200

	newStart := textinput.New()
	newStart.Placeholder = "Start date (YYYY-MM-DD)"
	newStart.CharLimit = 10

	newEnd := textinput.New()
	newEnd.Placeholder = "End date (YYYY-MM-DD)"
	newEnd.CharLimit = 10

	return &DashboardView{
		store:      st,
		auth:       authSvc,
		engine:     eng,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		search:     search,
		newName:    newName,
		newDesc:    newDesc,
		newMembers: newMembers,
		newStart:   newStart,
		newEnd:     newEnd,
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return v.load
}

type dashboardLoadedMsg struct {
	projects      []models.Project
	tasks         []models.Task
	users         []models.User
	notifications []models.Notification
	activities    []models.Activity
}

func (v *DashboardView) load() tea.Msg {
	projects, err := v.store.ListProjects()
	if err != nil {
		return err
	}
	tasks, err := v.store.ListTasks()
	if err != nil {
		return err
	}
	users, err := v.store.ListUsers()
	if err != nil {
		return err
	}
	notifications, err := v.store.ListNotifications()
	if err != nil {
		return err
	}
	activities, err := v.store.ListActivities()
	if err != nil {
		return err
	}
	return dashboardLoadedMsg{
		projects:      projects,
		tasks:         tasks,
		users:         users,
		notifications: notifications,
		activities:    activities,
	}
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case dashboardLoadedMsg:
		v.projects = msg.projects
		v.tasks = msg.tasks
		v.users = msg.users
		v.notifications = msg.notifications
		v.activities = msg.activities
		v.loaded = true
		if v.cursor >= len(v.projects) {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.searching {
			return v.updateSearching(msg)
		}
		return v.updateBrowsing(msg)
	}

	return v, nil
}

func (v *DashboardView) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	user := v.auth.Current()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Reset()
		v.search.Focus()
		return v, textinput.Blink

	case msg.String() == "i" && user == nil:
		return v, func() tea.Msg { return ShowLogin{} }

	case msg.String() == "o" && user != nil:
		v.auth.Logout()
		return v, func() tea.Msg { return LoggedOut{} }

	case msg.String() == "c" && user != nil:
		return v, func() tea.Msg { return ShowCalendar{} }

	case msg.String() == "t" && user != nil:
		return v, func() tea.Msg { return ShowTeam{} }

	case msg.String() == "p" && user != nil:
		return v, func() tea.Msg { return ShowProfile{} }

	case msg.String() == "m" && user != nil:
		// Mark the newest unread notification as read
		for _, n := range v.notifications {
			if !n.IsRead {
				if err := v.store.MarkNotificationRead(n.ID); err != nil {
					return v, nil
				}
				break
			}
		}
		return v, v.load

	case key.Matches(msg, v.keys.New) && user != nil && user.IsAdmin:
		v.creating = true
		v.focusIdx = 0
		v.formErr = ""
		v.newName.Reset()
		v.newDesc.Reset()
		v.newMembers.Reset()
		v.newStart.Reset()
		v.newEnd.Reset()
		v.newName.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if user != nil && v.cursor < len(v.projects) {
			project := v.projects[v.cursor]
			return v, func() tea.Msg {
				return OpenProject{Project: project}
			}
		}
		return v, nil
	}

	return v, nil
}

func (v *DashboardView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searching = false
		v.search.Blur()
		return v, nil
	case msg.String() == "ctrl+c":
		return v, tea.Quit
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

// projectFormInputs returns the create-project inputs in focus order
func (v *DashboardView) projectFormInputs() []*textinput.Model {
	return []*textinput.Model{&v.newName, &v.newDesc, &v.newMembers, &v.newStart, &v.newEnd}
}

func (v *DashboardView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := v.projectFormInputs()

	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + len(inputs) - 1) % len(inputs)
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % len(inputs)
		v.updateFormFocus()
		return v, nil

	case msg.String() == "ctrl+s", key.Matches(msg, v.keys.Enter) && v.focusIdx == len(inputs)-1:
		return v.submitProject()

	case key.Matches(msg, v.keys.Enter):
		v.focusIdx++
		v.updateFormFocus()
		return v, nil
	}

	var cmd tea.Cmd
	*inputs[v.focusIdx], cmd = inputs[v.focusIdx].Update(msg)
	return v, cmd
}

func (v *DashboardView) updateFormFocus() {
	for i, in := range v.projectFormInputs() {
		if i == v.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// submitProject validates the form and creates the project. Required
// fields are enforced here; the engine accepts whatever it is given.
func (v *DashboardView) submitProject() (tea.Model, tea.Cmd) {
	user := v.auth.Current()
	if user == nil {
		v.creating = false
		return v, nil
	}

	name := strings.TrimSpace(v.newName.Value())
	desc := strings.TrimSpace(v.newDesc.Value())
	if name == "" || desc == "" {
		v.formErr = "Name and description are required."
		return v, nil
	}

	var members []string
	for _, username := range strings.Split(v.newMembers.Value(), ",") {
		username = strings.TrimSpace(username)
		if username == "" {
			continue
		}
		u, err := v.store.GetUserByUsername(username)
		if err != nil || u == nil {
			v.formErr = fmt.Sprintf("Unknown username %q.", username)
			return v, nil
		}
		members = append(members, u.ID)
	}
	if len(members) == 0 {
		v.formErr = "At least one member is required."
		return v, nil
	}

	start, err := time.Parse("2006-01-02", strings.TrimSpace(v.newStart.Value()))
	if err != nil {
		v.formErr = "Start date must be YYYY-MM-DD."
		return v, nil
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(v.newEnd.Value()))
	if err != nil {
		v.formErr = "End date must be YYYY-MM-DD."
		return v, nil
	}

	project, err := v.engine.CreateProject(models.Project{
		Name:        name,
		Description: desc,
		Members:     members,
		StartDate:   start,
		EndDate:     end,
	}, *user)
	if err != nil {
		v.formErr = err.Error()
		return v, nil
	}

	v.creating = false
	return v, func() tea.Msg {
		return OpenProject{Project: *project}
	}
}

func (v *DashboardView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if v.creating {
		return v.renderCreateForm()
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	user := v.auth.Current()

	var sections []string

	if user != nil {
		first, _, _ := strings.Cut(user.Name, " ")
		sections = append(sections, s.Title.Render(fmt.Sprintf("Welcome back, %s!", first)))
	} else {
		sections = append(sections,
			s.Title.Render("Welcome to TeamSync!"),
			s.TitleMuted.Render("Sign in to manage your projects and collaborate with your team."),
		)
	}
	sections = append(sections, "")

	if v.searching || v.search.Value() != "" {
		sections = append(sections, v.renderSearch(contentWidth), "")
	}

	if user != nil {
		sections = append(sections, v.renderStats(user), "")
	}

	sections = append(sections, v.renderProjects(contentWidth, user))

	if user != nil {
		sections = append(sections, "", v.renderFeeds(contentWidth))
	}

	sections = append(sections, v.renderHelp(user))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *DashboardView) renderSearch(contentWidth int) string {
	s := v.styles

	box := s.InputFocused
	if !v.searching {
		box = s.Input
	}
	out := []string{box.Width(clamp(contentWidth-4, 24, 50)).Render(v.search.View())}

	result := query.Search(v.search.Value(), v.projects, v.tasks)
	for _, p := range result.Projects {
		out = append(out, s.CalendarProjDot.Render("▪ ")+p.Name)
	}
	for _, t := range result.Tasks {
		out = append(out, s.CalendarTaskDot.Render("▪ ")+t.Title)
	}
	if v.search.Value() != "" && len(result.Projects) == 0 && len(result.Tasks) == 0 {
		out = append(out, s.TitleMuted.Render("No matches."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (v *DashboardView) renderStats(user *models.User) string {
	s := v.styles

	mine := query.AssignedTo(v.tasks, user.ID)
	myProjects := query.MemberProjects(v.projects, user.ID)
	counts := query.StatusCounts(v.tasks)

	stats := fmt.Sprintf("My projects: %d   Tasks completed: %d   Overdue: %d",
		len(myProjects), query.DoneCount(mine), query.OverdueCount(mine, time.Now()))
	overview := fmt.Sprintf("All tasks — To Do: %d   In Progress: %d   Done: %d",
		counts[models.StatusToDo], counts[models.StatusInProgress], counts[models.StatusDone])

	return lipgloss.JoinVertical(lipgloss.Left,
		stats,
		s.TitleMuted.Render(overview),
	)
}

func (v *DashboardView) renderProjects(contentWidth int, user *models.User) string {
	s := v.styles

	rows := []string{s.Title.Render("Projects")}
	if len(v.projects) == 0 {
		rows = append(rows, s.TitleMuted.Render("No projects yet."))
	}

	barWidth := clamp(contentWidth/3, 10, 30)
	for i, p := range v.projects {
		progress := query.Progress(projectTasks(v.tasks, p.ID))
		line := fmt.Sprintf("%-30s %s %3d%%  %d members",
			truncate(p.Name, 30), v.renderBar(progress, barWidth), progress, len(p.Members))

		style := s.ListItem
		if i == v.cursor && user != nil {
			style = s.ListSelected
		}
		rows = append(rows, style.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *DashboardView) renderBar(progress, width int) string {
	s := v.styles
	filled := progress * width / 100
	return s.ProgressFilled.Render(strings.Repeat("█", filled)) +
		s.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

func (v *DashboardView) renderFeeds(contentWidth int) string {
	s := v.styles

	left := []string{s.Title.Render("Notifications")}
	for i, n := range v.notifications {
		if i == 5 {
			break
		}
		marker := s.CalendarTaskDot.Render("●")
		if n.IsRead {
			marker = s.TitleMuted.Render("○")
		}
		left = append(left, fmt.Sprintf("%s %s %s", marker, n.UserName, truncate(n.Message, 44)))
	}
	if len(v.notifications) == 0 {
		left = append(left, s.TitleMuted.Render("Nothing yet."))
	}

	right := []string{s.Title.Render("Recent Activity")}
	for i, a := range v.activities {
		if i == 5 {
			break
		}
		right = append(right, truncate(describeActivity(a, v.users), 50))
	}
	if len(v.activities) == 0 {
		right = append(right, s.TitleMuted.Render("Nothing yet."))
	}

	half := contentWidth/2 - 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(lipgloss.JoinVertical(lipgloss.Left, left...)),
		"  ",
		lipgloss.NewStyle().Width(half).Render(lipgloss.JoinVertical(lipgloss.Left, right...)),
	)
}

func (v *DashboardView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 24, 50)

	labels := []string{"Name:", "Description:", "Members:", "Start date:", "End date:"}
	inputs := v.projectFormInputs()

	parts := []string{s.Title.Render("New Project"), ""}
	for i, in := range inputs {
		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		parts = append(parts, labels[i], style.Width(inputWidth).Render(in.View()))
	}
	if v.formErr != "" {
		parts = append(parts, "", s.ErrorText.Render(v.formErr))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *DashboardView) renderHelp(user *models.User) string {
	s := v.styles

	if user == nil {
		return s.Help.Render(
			fmt.Sprintf("%s sign in • %s search • %s quit",
				s.HelpKey.Render("i"), s.HelpKey.Render("/"), s.HelpKey.Render("q")),
		)
	}

	help := fmt.Sprintf("%s open • %s calendar • %s team • %s profile • %s search • %s sign out • %s quit",
		s.HelpKey.Render("↵"), s.HelpKey.Render("c"), s.HelpKey.Render("t"),
		s.HelpKey.Render("p"), s.HelpKey.Render("/"), s.HelpKey.Render("o"), s.HelpKey.Render("q"))
	if user.IsAdmin {
		help = fmt.Sprintf("%s new project • ", s.HelpKey.Render("n")) + help
	}
	return s.Help.Render(help)
}

// projectTasks filters tasks down to one project
func projectTasks(tasks []models.Task, projectID string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// describeActivity renders one feed entry as a sentence
func describeActivity(a models.Activity, users []models.User) string {
	actor := "Someone"
	for _, u := range users {
		if u.ID == a.UserID {
			actor = u.Name
			break
		}
	}

	switch a.Type {
	case models.ActivityTaskCreate:
		return fmt.Sprintf("%s created %q", actor, a.TaskTitle)
	case models.ActivityTaskDelete:
		return fmt.Sprintf("%s deleted %q", actor, a.TaskTitle)
	case models.ActivityTaskUpdateStatus:
		return fmt.Sprintf("%s moved %q from %s to %s", actor, a.TaskTitle, a.From, a.To)
	case models.ActivityTaskUpdatePriority:
		return fmt.Sprintf("%s set %q priority to %s", actor, a.TaskTitle, a.To)
	case models.ActivityTaskUpdateDueDate:
		return fmt.Sprintf("%s moved %q due date to %s", actor, a.TaskTitle, a.To)
	case models.ActivityTaskUpdateAssignee:
		return fmt.Sprintf("%s reassigned %q to %s", actor, a.TaskTitle, a.To)
	}
	return fmt.Sprintf("%s touched %q", actor, a.TaskTitle)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
