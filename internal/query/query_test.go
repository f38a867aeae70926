package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamsync/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func taskWithStatus(status models.TaskStatus) models.Task {
	return models.Task{Status: status}
}

func TestProgressRounding(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  int
	}{
		{"empty set is zero", nil, 0},
		{"none done", []models.Task{taskWithStatus(models.StatusToDo)}, 0},
		{"all done", []models.Task{taskWithStatus(models.StatusDone)}, 100},
		{"one third rounds down", []models.Task{
			taskWithStatus(models.StatusDone),
			taskWithStatus(models.StatusToDo),
			taskWithStatus(models.StatusInProgress),
		}, 33},
		{"two thirds rounds up", []models.Task{
			taskWithStatus(models.StatusDone),
			taskWithStatus(models.StatusDone),
			taskWithStatus(models.StatusToDo),
		}, 67},
		{"half rounds up", []models.Task{
			taskWithStatus(models.StatusDone),
			taskWithStatus(models.StatusDone),
			taskWithStatus(models.StatusToDo),
			taskWithStatus(models.StatusInProgress),
		}, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Progress(tc.tasks))
		})
	}
}

func TestStatusCountsAndOverdue(t *testing.T) {
	now := date(2026, time.June, 15)
	tasks := []models.Task{
		{Status: models.StatusDone, DueDate: now.AddDate(0, 0, -5)},
		{Status: models.StatusToDo, DueDate: now.AddDate(0, 0, -2)},
		{Status: models.StatusInProgress, DueDate: now.AddDate(0, 0, -1)},
		{Status: models.StatusToDo, DueDate: now.AddDate(0, 0, 3)},
	}

	counts := StatusCounts(tasks)
	assert.Equal(t, 2, counts[models.StatusToDo])
	assert.Equal(t, 1, counts[models.StatusInProgress])
	assert.Equal(t, 1, counts[models.StatusDone])

	// Done tasks never count as overdue
	assert.Equal(t, 2, OverdueCount(tasks, now))
	assert.Equal(t, 1, DoneCount(tasks))
}

func TestAssignedToAndMemberProjects(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", AssigneeID: "u1"},
		{ID: "t2", AssigneeID: "u2"},
		{ID: "t3", AssigneeID: "u1"},
	}
	mine := AssignedTo(tasks, "u1")
	require.Len(t, mine, 2)
	assert.Equal(t, "t1", mine[0].ID)
	assert.Equal(t, "t3", mine[1].ID)

	projects := []models.Project{
		{ID: "p1", Members: []string{"u1", "u2"}},
		{ID: "p2", Members: []string{"u2"}},
	}
	assert.Len(t, MemberProjects(projects, "u1"), 1)
	assert.Len(t, MemberProjects(projects, "u2"), 2)
	assert.Empty(t, MemberProjects(projects, "u3"))
}

func TestProjectEventsAreInclusiveOnBothEnds(t *testing.T) {
	project := models.Project{
		ID:        "p1",
		Name:      "Sprint",
		StartDate: date(2026, time.June, 1),
		EndDate:   date(2026, time.June, 10),
	}
	events := Events([]models.Project{project}, nil)

	assert.Len(t, On(events, date(2026, time.June, 1)), 1)
	assert.Len(t, On(events, date(2026, time.June, 5)), 1)
	assert.Len(t, On(events, date(2026, time.June, 10)), 1)
	assert.Empty(t, On(events, date(2026, time.May, 31)))
	assert.Empty(t, On(events, date(2026, time.June, 11)))
}

func TestTaskEventsMatchDueDayOnly(t *testing.T) {
	task := models.Task{ID: "t1", Title: "Ship it", DueDate: date(2026, time.June, 5).Add(14 * time.Hour)}
	events := Events(nil, []models.Task{task})

	// Clock time on the due date is irrelevant
	hits := On(events, date(2026, time.June, 5))
	require.Len(t, hits, 1)
	assert.Equal(t, EventTask, hits[0].Kind)
	assert.Equal(t, "Ship it", hits[0].Title)

	assert.Empty(t, On(events, date(2026, time.June, 4)))
	assert.Empty(t, On(events, date(2026, time.June, 6)))
}

func TestMonthGridCoversWholeWeeks(t *testing.T) {
	// June 2026 starts on a Monday and ends on a Tuesday
	grid := MonthGrid(date(2026, time.June, 15))

	require.NotEmpty(t, grid)
	assert.Zero(t, len(grid)%7)
	assert.Equal(t, time.Sunday, grid[0].Weekday())
	assert.Equal(t, time.Saturday, grid[len(grid)-1].Weekday())

	// The grid leads with May 31 and trails into early July
	assert.True(t, SameDay(grid[0], date(2026, time.May, 31)))
	assert.True(t, SameDay(grid[len(grid)-1], date(2026, time.July, 4)))
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Name: "QuantumLeap CRM"},
		{ID: "p2", Name: "Website Redesign"},
	}
	tasks := []models.Task{
		{ID: "t1", Title: "Design Database Schema"},
		{ID: "t2", Title: "Deploy to Production"},
	}

	r := Search("design", projects, tasks)
	require.Len(t, r.Projects, 1)
	assert.Equal(t, "p2", r.Projects[0].ID)
	require.Len(t, r.Tasks, 1)
	assert.Equal(t, "t1", r.Tasks[0].ID)

	r = Search("QUANTUM", projects, tasks)
	assert.Len(t, r.Projects, 1)
	assert.Empty(t, r.Tasks)
}

func TestSearchEmptyQueryMatchesNothing(t *testing.T) {
	projects := []models.Project{{ID: "p1", Name: "Anything"}}
	tasks := []models.Task{{ID: "t1", Title: "Anything"}}

	r := Search("", projects, tasks)
	assert.Empty(t, r.Projects)
	assert.Empty(t, r.Tasks)
}

func TestTaskBarClampsToSpan(t *testing.T) {
	project := models.Project{
		StartDate: date(2026, time.June, 1),
		EndDate:   date(2026, time.June, 10),
	}
	require.Equal(t, 10, SpanDays(project))

	// Due before the project starts: pinned to the left edge
	early := TaskBar(project, models.Task{DueDate: date(2026, time.May, 20), Duration: 3})
	assert.Zero(t, early.Offset)
	assert.InDelta(t, 0.3, early.Width, 1e-9)

	// Due mid-span
	mid := TaskBar(project, models.Task{DueDate: date(2026, time.June, 6), Duration: 2})
	assert.InDelta(t, 0.5, mid.Offset, 1e-9)
	assert.InDelta(t, 0.2, mid.Width, 1e-9)

	// Width never extends past the right edge
	late := TaskBar(project, models.Task{DueDate: date(2026, time.June, 9), Duration: 30})
	assert.InDelta(t, 0.8, late.Offset, 1e-9)
	assert.InDelta(t, 0.2, late.Width, 1e-9)

	// Due after the project ends: pinned to the right edge, no width
	after := TaskBar(project, models.Task{DueDate: date(2026, time.July, 1), Duration: 5})
	assert.InDelta(t, 1.0, after.Offset, 1e-9)
	assert.Zero(t, after.Width)
}

func TestTodayMarker(t *testing.T) {
	project := models.Project{
		StartDate: date(2026, time.June, 1),
		EndDate:   date(2026, time.June, 10),
	}

	frac, ok := TodayMarker(project, date(2026, time.June, 6))
	require.True(t, ok)
	assert.InDelta(t, 0.5, frac, 1e-9)

	_, ok = TodayMarker(project, date(2026, time.May, 31))
	assert.False(t, ok)

	_, ok = TodayMarker(project, date(2026, time.June, 11))
	assert.False(t, ok)

	// Both endpoints carry a marker
	_, ok = TodayMarker(project, date(2026, time.June, 1))
	assert.True(t, ok)
	_, ok = TodayMarker(project, date(2026, time.June, 10))
	assert.True(t, ok)
}
