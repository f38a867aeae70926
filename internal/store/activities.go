package store

import (
	"teamsync/internal/models"
)

// AddActivity appends an entry to the activity feed. Entries are
// immutable once written.
func (s *Store) AddActivity(a models.Activity) error {
	_, err := s.Exec(`
		INSERT INTO activities (id, type, timestamp, user_id, project_id, task_id, task_title, from_value, to_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Type, a.Timestamp, a.UserID, a.ProjectID, a.TaskID, a.TaskTitle, a.From, a.To)
	return err
}

// ListActivities returns the whole activity feed, newest first
func (s *Store) ListActivities() ([]models.Activity, error) {
	return s.queryActivities(`
		SELECT id, type, timestamp, user_id, project_id, task_id, task_title, from_value, to_value
		FROM activities ORDER BY timestamp DESC, rowid DESC
	`)
}

// ListProjectActivities returns the activity feed for one project,
// newest first
func (s *Store) ListProjectActivities(projectID string) ([]models.Activity, error) {
	return s.queryActivities(`
		SELECT id, type, timestamp, user_id, project_id, task_id, task_title, from_value, to_value
		FROM activities WHERE project_id = ? ORDER BY timestamp DESC, rowid DESC
	`, projectID)
}

func (s *Store) queryActivities(query string, args ...any) ([]models.Activity, error) {
	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Timestamp, &a.UserID, &a.ProjectID, &a.TaskID, &a.TaskTitle, &a.From, &a.To); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
