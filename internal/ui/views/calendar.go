package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamsync/internal/query"
	"teamsync/internal/store"
	"teamsync/internal/ui/keys"
	"teamsync/internal/ui/styles"
)

// CalendarView shows a month grid with task and project events
type CalendarView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	month  time.Time
	events []query.Event
	loaded bool

	width  int
	height int
}

// NewCalendarView creates the calendar, opened on the current month
func NewCalendarView(st *store.Store) *CalendarView {
	return &CalendarView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		month:  time.Now(),
	}
}

func (v *CalendarView) Init() tea.Cmd {
	return v.load
}

type calendarLoadedMsg struct {
	events []query.Event
}

func (v *CalendarView) load() tea.Msg {
	projects, err := v.store.ListProjects()
	if err != nil {
		return err
	}
	tasks, err := v.store.ListTasks()
	if err != nil {
		return err
	}
	return calendarLoadedMsg{events: query.Events(projects, tasks)}
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case calendarLoadedMsg:
		v.events = msg.events
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return ShowDashboard{} }

		case key.Matches(msg, v.keys.Left):
			v.month = v.month.AddDate(0, -1, 0)
			return v, nil

		case key.Matches(msg, v.keys.Right):
			v.month = v.month.AddDate(0, 1, 0)
			return v, nil

		case msg.String() == "t":
			v.month = time.Now()
			return v, nil
		}
	}
	return v, nil
}

func (v *CalendarView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	now := time.Now()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render(v.month.Format("January 2006")),
		s.TitleMuted.Render("   ←/→ month • t today • esc back"),
	)

	const cellWidth = 13
	dayNames := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	headRow := ""
	for _, d := range dayNames {
		headRow += s.TitleMuted.Width(cellWidth).Render(d)
	}

	grid := query.MonthGrid(v.month)
	weeks := []string{}
	for w := 0; w < len(grid)/7; w++ {
		cells := []string{}
		for d := 0; d < 7; d++ {
			day := grid[w*7+d]
			cells = append(cells, v.renderCell(day, now, cellWidth))
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	legend := s.Help.Render(
		s.CalendarTaskDot.Render("●") + " task due  " +
			s.CalendarProjDot.Render("▬") + " project running",
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header, "", headRow,
		lipgloss.JoinVertical(lipgloss.Left, weeks...),
		legend,
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *CalendarView) renderCell(day time.Time, now time.Time, cellWidth int) string {
	s := v.styles

	numStyle := s.CalendarDay
	if day.Month() != v.month.Month() {
		numStyle = s.CalendarDim
	}
	if query.SameDay(day, now) {
		numStyle = s.CalendarToday
	}

	var dots strings.Builder
	shown := 0
	for _, e := range query.On(v.events, day) {
		if shown == 3 {
			dots.WriteString(s.TitleMuted.Render("+"))
			break
		}
		if e.Kind == query.EventTask {
			dots.WriteString(s.CalendarTaskDot.Render("●"))
		} else {
			dots.WriteString(s.CalendarProjDot.Render("▬"))
		}
		shown++
	}

	cell := lipgloss.JoinVertical(lipgloss.Left,
		numStyle.Render(fmt.Sprintf("%2d", day.Day())),
		dots.String(),
	)
	return lipgloss.NewStyle().Width(cellWidth).Height(3).Render(cell)
}
