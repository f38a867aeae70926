// Package engine is the command layer for projects and tasks. Task
// updates are diffed field by field against a fixed table so that every
// qualifying change produces one notification and one activity entry.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"teamsync/internal/models"
	"teamsync/internal/store"
)

// dateFormat is how due dates appear in notification messages and
// activity entries.
const dateFormat = "Jan 2, 2006"

// Engine applies mutations to projects and tasks
type Engine struct {
	store *store.Store
	log   *slog.Logger
}

// New creates a mutation engine
func New(st *store.Store, log *slog.Logger) *Engine {
	return &Engine{store: st, log: log}
}

// CreateProject creates a project with a fresh id. Admin gating and
// required-field checks are the caller's responsibility.
func (e *Engine) CreateProject(p models.Project, actor models.User) (*models.Project, error) {
	p.ID = uuid.NewString()
	if err := e.store.CreateProject(p); err != nil {
		return nil, err
	}

	e.log.Info("project created", "project_id", p.ID, "name", p.Name, "user_id", actor.ID)
	return &p, nil
}

// CreateTask creates a task with a fresh id, the actor as creator, and
// ToDo as the default status. Creation logs an activity entry but no
// notification; only updates notify.
func (e *Engine) CreateTask(t models.Task, actor models.User) (*models.Task, error) {
	t.ID = uuid.NewString()
	t.CreatorID = actor.ID
	if t.Status == "" {
		t.Status = models.StatusToDo
	}
	if t.Duration < 1 {
		t.Duration = 1
	}

	if err := e.store.CreateTask(t); err != nil {
		return nil, err
	}

	if err := e.store.AddActivity(models.Activity{
		ID:        uuid.NewString(),
		Type:      models.ActivityTaskCreate,
		Timestamp: time.Now(),
		UserID:    actor.ID,
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
		TaskTitle: t.Title,
	}); err != nil {
		return nil, err
	}

	e.log.Info("task created", "task_id", t.ID, "project_id", t.ProjectID, "user_id", actor.ID)
	return &t, nil
}

// diff is the comparison context for one update call
type diff struct {
	old *models.Task
	new *models.Task

	// Resolved only when the assignee changed. A nil newAssignee means
	// the requested assignee does not exist.
	newAssignee     *models.User
	oldAssigneeName string
}

// trackedField is one row of the diff table: a field whose change emits
// a notification and an activity entry. Rows are processed in order.
type trackedField struct {
	activity models.ActivityType
	changed  func(d *diff) bool
	// skipped drops the records for a change that still gets written to
	// the task. Only the assignee rule uses it.
	skipped func(d *diff) bool
	message func(d *diff) string
	values  func(d *diff) (from, to string)
}

var trackedFields = []trackedField{
	{
		activity: models.ActivityTaskUpdateStatus,
		changed:  func(d *diff) bool { return d.old.Status != d.new.Status },
		message:  func(d *diff) string { return fmt.Sprintf("changed status to %s", d.new.Status) },
		values:   func(d *diff) (string, string) { return string(d.old.Status), string(d.new.Status) },
	},
	{
		activity: models.ActivityTaskUpdatePriority,
		changed:  func(d *diff) bool { return d.old.Priority != d.new.Priority },
		message:  func(d *diff) string { return fmt.Sprintf("set priority to %s", d.new.Priority) },
		values:   func(d *diff) (string, string) { return string(d.old.Priority), string(d.new.Priority) },
	},
	{
		activity: models.ActivityTaskUpdateDueDate,
		changed:  func(d *diff) bool { return !sameDay(d.old.DueDate, d.new.DueDate) },
		message:  func(d *diff) string { return fmt.Sprintf("updated due date to %s", d.new.DueDate.Format(dateFormat)) },
		values: func(d *diff) (string, string) {
			return d.old.DueDate.Format(dateFormat), d.new.DueDate.Format(dateFormat)
		},
	},
	{
		activity: models.ActivityTaskUpdateAssignee,
		changed:  func(d *diff) bool { return d.old.AssigneeID != d.new.AssigneeID },
		skipped:  func(d *diff) bool { return d.newAssignee == nil },
		message:  func(d *diff) string { return fmt.Sprintf("reassigned task to %s", d.newAssignee.Name) },
		values:   func(d *diff) (string, string) { return d.oldAssigneeName, d.newAssignee.Name },
	},
}

// UpdateTask diffs the tracked fields of a task against its stored
// version, emits a notification/activity pair per changed field, then
// replaces the record wholesale. Updating an unknown task is a no-op.
func (e *Engine) UpdateTask(updated models.Task, actor models.User) error {
	old, err := e.store.GetTask(updated.ID)
	if err != nil {
		return err
	}
	if old == nil {
		return nil
	}

	// Identity fields never change on update
	updated.CreatorID = old.CreatorID
	updated.ProjectID = old.ProjectID

	d := &diff{old: old, new: &updated}
	if old.AssigneeID != updated.AssigneeID {
		if d.newAssignee, err = e.store.GetUser(updated.AssigneeID); err != nil {
			return err
		}
		prev, err := e.store.GetUser(old.AssigneeID)
		if err != nil {
			return err
		}
		d.oldAssigneeName = "Unassigned"
		if prev != nil {
			d.oldAssigneeName = prev.Name
		}
	}

	// All records from one call share a timestamp
	now := time.Now()
	for _, f := range trackedFields {
		if !f.changed(d) {
			continue
		}
		if f.skipped != nil && f.skipped(d) {
			// The change still lands on the task below; it just leaves
			// no trace in the feeds.
			e.log.Warn("task change skipped", "task_id", updated.ID, "activity_type", f.activity)
			continue
		}

		from, to := f.values(d)
		if err := e.store.AddNotification(models.Notification{
			ID:            uuid.NewString(),
			Type:          models.NotificationUpdate,
			Message:       f.message(d),
			UserName:      actor.Name,
			UserAvatarURL: actor.AvatarURL,
			Timestamp:     now,
		}); err != nil {
			return err
		}
		if err := e.store.AddActivity(models.Activity{
			ID:        uuid.NewString(),
			Type:      f.activity,
			Timestamp: now,
			UserID:    actor.ID,
			ProjectID: old.ProjectID,
			TaskID:    old.ID,
			TaskTitle: updated.Title,
			From:      from,
			To:        to,
		}); err != nil {
			return err
		}

		e.log.Info("task field changed", "task_id", updated.ID, "activity_type", f.activity, "from", from, "to", to)
	}

	return e.store.ReplaceTask(updated)
}

// DeleteTask removes a task and records one delete activity capturing
// its title. Deleting an unknown task is a no-op.
func (e *Engine) DeleteTask(taskID string, actor models.User) error {
	t, err := e.store.GetTask(taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}

	if err := e.store.AddActivity(models.Activity{
		ID:        uuid.NewString(),
		Type:      models.ActivityTaskDelete,
		Timestamp: time.Now(),
		UserID:    actor.ID,
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
		TaskTitle: t.Title,
	}); err != nil {
		return err
	}

	if err := e.store.DeleteTask(taskID); err != nil {
		return err
	}

	e.log.Info("task deleted", "task_id", taskID, "user_id", actor.ID)
	return nil
}

// sameDay compares two timestamps at day granularity
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
