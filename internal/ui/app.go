package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"teamsync/internal/auth"
	"teamsync/internal/engine"
	"teamsync/internal/models"
	"teamsync/internal/store"
	"teamsync/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewProject
	ViewCalendar
	ViewTeam
	ViewProfile
)

type App struct {
	store  *store.Store
	auth   *auth.Service
	engine *engine.Engine

	currentView View
	login       *views.LoginView
	dashboard   *views.DashboardView
	project     *views.ProjectView
	calendar    *views.CalendarView
	team        *views.TeamView
	profile     *views.ProfileView

	width  int
	height int
}

// Creates a new application
func NewApp(st *store.Store, authSvc *auth.Service, eng *engine.Engine) *App {
	return &App{
		store:       st,
		auth:        authSvc,
		engine:      eng,
		currentView: ViewLogin,
		login:       views.NewLoginView(authSvc),
		dashboard:   views.NewDashboardView(st, authSvc, eng),
	}
}

func (a *App) Init() tea.Cmd {
	return a.login.Init()
}

// resize replays the current window size into a freshly created view
func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) openProject(project models.Project) tea.Cmd {
	a.currentView = ViewProject
	a.project = views.NewProjectView(a.store, a.auth, a.engine, project)

	// Remember the open project across view switches
	a.store.SetSetting("last_project_id", project.ID)

	return tea.Batch(a.project.Init(), a.resize())
}

func (a *App) showDashboard() tea.Cmd {
	a.currentView = ViewDashboard
	a.store.SetSetting("last_project_id", "")
	return tea.Batch(a.dashboard.Init(), a.resize())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The dashboard persists, keep its size current
		a.dashboard.Update(msg)

	case views.LoggedIn:
		return a, a.showDashboard()

	case views.LoggedOut:
		a.auth.Logout()
		a.currentView = ViewLogin
		a.login = views.NewLoginView(a.auth)
		return a, tea.Batch(a.login.Init(), a.resize())

	case views.ShowLogin:
		a.currentView = ViewLogin
		a.login = views.NewLoginView(a.auth)
		return a, tea.Batch(a.login.Init(), a.resize())

	case views.OpenProject:
		return a, a.openProject(msg.Project)

	case views.ShowDashboard:
		return a, a.showDashboard()

	case views.ShowCalendar:
		if a.auth.Current() == nil {
			return a, nil
		}
		a.currentView = ViewCalendar
		a.calendar = views.NewCalendarView(a.store)
		return a, tea.Batch(a.calendar.Init(), a.resize())

	case views.ShowTeam:
		if a.auth.Current() == nil {
			return a, nil
		}
		a.currentView = ViewTeam
		a.team = views.NewTeamView(a.store)
		return a, tea.Batch(a.team.Init(), a.resize())

	case views.ShowProfile:
		if a.auth.Current() == nil {
			return a, nil
		}
		a.currentView = ViewProfile
		a.profile = views.NewProfileView(a.auth)
		return a, tea.Batch(a.profile.Init(), a.resize())
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewProject:
		_, cmd = a.project.Update(msg)
	case ViewCalendar:
		_, cmd = a.calendar.Update(msg)
	case ViewTeam:
		_, cmd = a.team.Update(msg)
	case ViewProfile:
		_, cmd = a.profile.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewLogin:
		return a.login.View()
	case ViewProject:
		if a.project != nil {
			return a.project.View()
		}
	case ViewCalendar:
		if a.calendar != nil {
			return a.calendar.View()
		}
	case ViewTeam:
		if a.team != nil {
			return a.team.View()
		}
	case ViewProfile:
		if a.profile != nil {
			return a.profile.View()
		}
	}
	return a.dashboard.View()
}
