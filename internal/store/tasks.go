package store

import (
	"database/sql"

	"teamsync/internal/models"
)

// CreateTask inserts a new task
func (s *Store) CreateTask(t models.Task) error {
	_, err := s.Exec(`
		INSERT INTO tasks (id, project_id, title, description, status, priority,
			assignee_id, creator_id, due_date, duration, is_blocked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		t.AssigneeID, t.CreatorID, t.DueDate, t.Duration, t.IsBlocked)
	return err
}

// GetTask retrieves a task by ID, or nil if no such task exists
func (s *Store) GetTask(id string) (*models.Task, error) {
	t := &models.Task{}
	err := s.QueryRow(`
		SELECT id, project_id, title, description, status, priority,
			assignee_id, creator_id, due_date, duration, is_blocked
		FROM tasks WHERE id = ?
	`, id).Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssigneeID, &t.CreatorID, &t.DueDate, &t.Duration, &t.IsBlocked)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns all tasks, ordered by due date
func (s *Store) ListTasks() ([]models.Task, error) {
	return s.queryTasks(`
		SELECT id, project_id, title, description, status, priority,
			assignee_id, creator_id, due_date, duration, is_blocked
		FROM tasks ORDER BY due_date ASC
	`)
}

// ListProjectTasks returns all tasks belonging to a project, ordered by
// due date
func (s *Store) ListProjectTasks(projectID string) ([]models.Task, error) {
	return s.queryTasks(`
		SELECT id, project_id, title, description, status, priority,
			assignee_id, creator_id, due_date, duration, is_blocked
		FROM tasks WHERE project_id = ? ORDER BY due_date ASC
	`, projectID)
}

func (s *Store) queryTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.AssigneeID, &t.CreatorID, &t.DueDate, &t.Duration, &t.IsBlocked); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ReplaceTask replaces a task record wholesale. The id, creator and
// project of a task never change.
func (s *Store) ReplaceTask(t models.Task) error {
	_, err := s.Exec(`
		UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
			assignee_id = ?, due_date = ?, duration = ?, is_blocked = ?
		WHERE id = ?
	`, t.Title, t.Description, t.Status, t.Priority,
		t.AssigneeID, t.DueDate, t.Duration, t.IsBlocked, t.ID)
	return err
}

// DeleteTask deletes a task
func (s *Store) DeleteTask(id string) error {
	_, err := s.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}
