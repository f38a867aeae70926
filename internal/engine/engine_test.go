package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamsync/internal/models"
	"teamsync/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()

	st, err := store.Open()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(st, slog.New(slog.NewTextHandler(io.Discard, nil))), st
}

func seedFixture(t *testing.T, st *store.Store) (models.User, models.User, models.Task) {
	t.Helper()

	alice := models.User{ID: "user-a", Name: "Alice Chen", Username: "alice"}
	bob := models.User{ID: "user-b", Name: "Bob Park", Username: "bob"}
	require.NoError(t, st.CreateUser(alice))
	require.NoError(t, st.CreateUser(bob))

	require.NoError(t, st.CreateProject(models.Project{
		ID:        "proj-1",
		Name:      "Launch",
		Members:   []string{alice.ID, bob.ID},
		StartDate: time.Now().AddDate(0, 0, -10),
		EndDate:   time.Now().AddDate(0, 0, 10),
	}))

	task := models.Task{
		ID:         "task-1",
		Title:      "Write docs",
		Status:     models.StatusToDo,
		Priority:   models.PriorityLow,
		AssigneeID: alice.ID,
		ProjectID:  "proj-1",
		CreatorID:  alice.ID,
		DueDate:    time.Now().AddDate(0, 0, 3),
		Duration:   2,
	}
	require.NoError(t, st.CreateTask(task))

	return alice, bob, task
}

func TestCreateTaskDefaults(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, _, _ := seedFixture(t, st)

	created, err := eng.CreateTask(models.Task{
		Title:     "Sketch layout",
		ProjectID: "proj-1",
		DueDate:   time.Now().AddDate(0, 0, 1),
	}, alice)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, alice.ID, created.CreatorID)
	assert.Equal(t, models.StatusToDo, created.Status)
	assert.Equal(t, 1, created.Duration)

	activities, err := st.ListActivities()
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, models.ActivityTaskCreate, activities[0].Type)
	assert.Equal(t, "Sketch layout", activities[0].TaskTitle)

	// Creation never notifies
	notifications, err := st.ListNotifications()
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestUpdateTaskEmitsPairPerChangedField(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, bob, task := seedFixture(t, st)

	updated := task
	updated.Status = models.StatusInProgress
	updated.Priority = models.PriorityHigh
	updated.DueDate = task.DueDate.AddDate(0, 0, 4)
	updated.AssigneeID = bob.ID
	require.NoError(t, eng.UpdateTask(updated, alice))

	notifications, err := st.ListNotifications()
	require.NoError(t, err)
	require.Len(t, notifications, 4)

	activities, err := st.ListActivities()
	require.NoError(t, err)
	require.Len(t, activities, 4)

	// Feeds are newest-first, so the diff order comes back reversed:
	// assignee, due date, priority, status.
	assert.Equal(t, models.ActivityTaskUpdateAssignee, activities[0].Type)
	assert.Equal(t, models.ActivityTaskUpdateDueDate, activities[1].Type)
	assert.Equal(t, models.ActivityTaskUpdatePriority, activities[2].Type)
	assert.Equal(t, models.ActivityTaskUpdateStatus, activities[3].Type)

	assert.Equal(t, "Alice Chen", activities[0].From)
	assert.Equal(t, "Bob Park", activities[0].To)
	assert.Equal(t, string(models.PriorityLow), activities[2].From)
	assert.Equal(t, string(models.PriorityHigh), activities[2].To)
	assert.Equal(t, string(models.StatusToDo), activities[3].From)
	assert.Equal(t, string(models.StatusInProgress), activities[3].To)

	assert.Equal(t, "reassigned task to Bob Park", notifications[0].Message)
	assert.Equal(t, "changed status to In Progress", notifications[3].Message)
	for _, n := range notifications {
		assert.Equal(t, models.NotificationUpdate, n.Type)
		assert.Equal(t, alice.Name, n.UserName)
		assert.False(t, n.IsRead)
	}

	// Every record from one call carries the same timestamp
	stamp := activities[0].Timestamp
	for _, a := range activities {
		assert.True(t, a.Timestamp.Equal(stamp))
	}
	for _, n := range notifications {
		assert.True(t, n.Timestamp.Equal(stamp))
	}

	got, err := st.GetTask(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, bob.ID, got.AssigneeID)
}

func TestUpdateTaskNoChangesEmitsNothing(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, _, task := seedFixture(t, st)

	// Same calendar day, different clock time: due date is compared at
	// day granularity so this does not count as a change.
	updated := task
	updated.DueDate = task.DueDate.Add(2 * time.Hour)
	require.NoError(t, eng.UpdateTask(updated, alice))

	notifications, err := st.ListNotifications()
	require.NoError(t, err)
	assert.Empty(t, notifications)

	activities, err := st.ListActivities()
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestUpdateTaskUnknownAssigneeSkipsFeedsButWritesField(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, _, task := seedFixture(t, st)

	updated := task
	updated.AssigneeID = "nobody"
	require.NoError(t, eng.UpdateTask(updated, alice))

	// No trace in the feeds
	notifications, err := st.ListNotifications()
	require.NoError(t, err)
	assert.Empty(t, notifications)

	activities, err := st.ListActivities()
	require.NoError(t, err)
	assert.Empty(t, activities)

	// The field still lands on the task
	got, err := st.GetTask(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "nobody", got.AssigneeID)
}

func TestUpdateTaskUnknownIDIsNoOp(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, _, _ := seedFixture(t, st)

	ghost := models.Task{ID: "no-such-task", Title: "Ghost", Status: models.StatusDone}
	require.NoError(t, eng.UpdateTask(ghost, alice))

	got, err := st.GetTask("no-such-task")
	require.NoError(t, err)
	assert.Nil(t, got)

	activities, err := st.ListActivities()
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestUpdateTaskPinsIdentityFields(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, bob, task := seedFixture(t, st)

	updated := task
	updated.CreatorID = bob.ID
	updated.ProjectID = "some-other-project"
	require.NoError(t, eng.UpdateTask(updated, alice))

	got, err := st.GetTask(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.CreatorID, got.CreatorID)
	assert.Equal(t, task.ProjectID, got.ProjectID)
}

func TestDeleteTaskRecordsActivityAndRepeatIsNoOp(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, _, task := seedFixture(t, st)

	require.NoError(t, eng.DeleteTask(task.ID, alice))

	got, err := st.GetTask(task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	activities, err := st.ListActivities()
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, models.ActivityTaskDelete, activities[0].Type)
	assert.Equal(t, task.Title, activities[0].TaskTitle)
	assert.Equal(t, task.ID, activities[0].TaskID)

	// Deleting again leaves no extra trace
	require.NoError(t, eng.DeleteTask(task.ID, alice))
	activities, err = st.ListActivities()
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}

func TestCreateProjectAssignsFreshID(t *testing.T) {
	eng, st := newTestEngine(t)
	alice, bob, _ := seedFixture(t, st)

	created, err := eng.CreateProject(models.Project{
		Name:      "Q4 Roadmap",
		Members:   []string{alice.ID, bob.ID},
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}, alice)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := st.GetProject(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Q4 Roadmap", got.Name)
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, got.Members)
}
