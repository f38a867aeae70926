package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamsync/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSeedFixture(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, Seed(st))

	users, err := st.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 4)

	admin, err := st.GetUserByUsername("headofman")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "Alex Morgan", admin.Name)
	assert.True(t, admin.IsAdmin)

	projects, err := st.ListProjects()
	require.NoError(t, err)
	require.Len(t, projects, 2)

	crm, err := st.GetProject("p1")
	require.NoError(t, err)
	require.NotNil(t, crm)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, crm.Members)

	tasks, err := st.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 10)

	crmTasks, err := st.ListProjectTasks("p1")
	require.NoError(t, err)
	assert.Len(t, crmTasks, 5)

	notifications, err := st.ListNotifications()
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
}

func TestGetMissingReturnsNil(t *testing.T) {
	st := newTestStore(t)

	user, err := st.GetUser("nope")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = st.GetUserByUsername("nope")
	require.NoError(t, err)
	assert.Nil(t, user)

	task, err := st.GetTask("nope")
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestUsernameTaken(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.CreateUser(models.User{ID: "u1", Name: "A", Username: "alpha"}))

	taken, err := st.UsernameTaken("alpha")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = st.UsernameTaken("beta")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateUserLeavesIdentityAlone(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.CreateUser(models.User{
		ID: "u1", Name: "A", Username: "alpha", PasswordHash: "h1",
	}))

	changed := models.User{
		ID: "u1", Name: "B", Username: "renamed", PasswordHash: "h2", IsAdmin: true,
	}
	require.NoError(t, st.UpdateUser(changed))

	got, err := st.GetUser("u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, "h2", got.PasswordHash)
	assert.True(t, got.IsAdmin)
	// Username is immutable
	assert.Equal(t, "alpha", got.Username)
}

func TestTasksOrderedByDueDate(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.CreateProject(models.Project{ID: "p1", Name: "P"}))

	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.CreateTask(models.Task{ID: "late", ProjectID: "p1", Title: "late", DueDate: base.AddDate(0, 0, 9), Duration: 1}))
	require.NoError(t, st.CreateTask(models.Task{ID: "early", ProjectID: "p1", Title: "early", DueDate: base, Duration: 1}))
	require.NoError(t, st.CreateTask(models.Task{ID: "mid", ProjectID: "p1", Title: "mid", DueDate: base.AddDate(0, 0, 4), Duration: 1}))

	tasks, err := st.ListProjectTasks("p1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "early", tasks[0].ID)
	assert.Equal(t, "mid", tasks[1].ID)
	assert.Equal(t, "late", tasks[2].ID)
}

func TestReplaceTaskOverwritesAllMutableFields(t *testing.T) {
	st := newTestStore(t)

	orig := models.Task{
		ID: "t1", Title: "Before", Status: models.StatusToDo,
		Priority: models.PriorityLow, ProjectID: "p1", CreatorID: "u1",
		DueDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), Duration: 1,
	}
	require.NoError(t, st.CreateTask(orig))

	replaced := orig
	replaced.Title = "After"
	replaced.Status = models.StatusDone
	replaced.Priority = models.PriorityHigh
	replaced.IsBlocked = true
	require.NoError(t, st.ReplaceTask(replaced))

	got, err := st.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.True(t, got.IsBlocked)
}

func TestNotificationsNewestFirstAndMarkRead(t *testing.T) {
	st := newTestStore(t)

	base := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.AddNotification(models.Notification{ID: "n1", Type: models.NotificationUpdate, Message: "first", Timestamp: base}))
	require.NoError(t, st.AddNotification(models.Notification{ID: "n2", Type: models.NotificationUpdate, Message: "second", Timestamp: base.Add(time.Hour)}))
	// Same timestamp as n2: later insert wins the tie
	require.NoError(t, st.AddNotification(models.Notification{ID: "n3", Type: models.NotificationUpdate, Message: "third", Timestamp: base.Add(time.Hour)}))

	list, err := st.ListNotifications()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "n3", list[0].ID)
	assert.Equal(t, "n2", list[1].ID)
	assert.Equal(t, "n1", list[2].ID)

	count, err := st.UnreadNotificationCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, st.MarkNotificationRead("n3"))

	count, err = st.UnreadNotificationCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err = st.ListNotifications()
	require.NoError(t, err)
	assert.True(t, list[0].IsRead)
	assert.False(t, list[1].IsRead)
}

func TestActivitiesScopedToProject(t *testing.T) {
	st := newTestStore(t)

	base := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.AddActivity(models.Activity{ID: "a1", Type: models.ActivityTaskCreate, ProjectID: "p1", Timestamp: base}))
	require.NoError(t, st.AddActivity(models.Activity{ID: "a2", Type: models.ActivityTaskCreate, ProjectID: "p2", Timestamp: base.Add(time.Minute)}))
	require.NoError(t, st.AddActivity(models.Activity{ID: "a3", Type: models.ActivityTaskDelete, ProjectID: "p1", Timestamp: base.Add(2 * time.Minute)}))

	all, err := st.ListActivities()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a3", all[0].ID)

	scoped, err := st.ListProjectActivities("p1")
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "a3", scoped[0].ID)
	assert.Equal(t, "a1", scoped[1].ID)
}

func TestSettingsRoundTrip(t *testing.T) {
	st := newTestStore(t)

	val, err := st.GetSetting("last_project_id")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, st.SetSetting("last_project_id", "p1"))
	val, err = st.GetSetting("last_project_id")
	require.NoError(t, err)
	assert.Equal(t, "p1", val)

	// Overwrites, no duplicate rows
	require.NoError(t, st.SetSetting("last_project_id", "p2"))
	val, err = st.GetSetting("last_project_id")
	require.NoError(t, err)
	assert.Equal(t, "p2", val)
}
