package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamsync/internal/models"
	"teamsync/internal/query"
	"teamsync/internal/store"
	"teamsync/internal/ui/keys"
	"teamsync/internal/ui/styles"
)

// TeamView lists the roster with per-member workload
type TeamView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	users    []models.User
	tasks    []models.Task
	projects []models.Project
	loaded   bool
	cursor   int

	width  int
	height int
}

// NewTeamView creates the team roster view
func NewTeamView(st *store.Store) *TeamView {
	return &TeamView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *TeamView) Init() tea.Cmd {
	return v.load
}

type teamLoadedMsg struct {
	users    []models.User
	tasks    []models.Task
	projects []models.Project
}

func (v *TeamView) load() tea.Msg {
	users, err := v.store.ListUsers()
	if err != nil {
		return err
	}
	tasks, err := v.store.ListTasks()
	if err != nil {
		return err
	}
	projects, err := v.store.ListProjects()
	if err != nil {
		return err
	}
	return teamLoadedMsg{users: users, tasks: tasks, projects: projects}
}

func (v *TeamView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case teamLoadedMsg:
		v.users = msg.users
		v.tasks = msg.tasks
		v.projects = msg.projects
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return ShowDashboard{} }

		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.users)-1 {
				v.cursor++
			}
			return v, nil
		}
	}
	return v, nil
}

func (v *TeamView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	rows := []string{s.Title.Render("Team"), ""}

	for i, u := range v.users {
		assigned := query.AssignedTo(v.tasks, u.ID)
		open := len(assigned) - query.DoneCount(assigned)
		memberOf := len(query.MemberProjects(v.projects, u.ID))

		role := ""
		if u.IsAdmin {
			role = s.SuccessText.Render(" (admin)")
		}
		line := fmt.Sprintf("%s%s  %s",
			u.Name, role,
			s.TitleMuted.Render(fmt.Sprintf("@%s • %d open of %d tasks • %d projects",
				u.Username, open, len(assigned), memberOf)),
		)

		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, s.Help.Render(
		fmt.Sprintf("%s/%s move • %s back • %s quit",
			s.HelpKey.Render("↑"), s.HelpKey.Render("↓"),
			s.HelpKey.Render("esc"), s.HelpKey.Render("q"))))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}
