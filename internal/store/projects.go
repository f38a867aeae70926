package store

import (
	"database/sql"

	"teamsync/internal/models"
)

// CreateProject inserts a new project and its member list
func (s *Store) CreateProject(p models.Project) error {
	_, err := s.Exec(`
		INSERT INTO projects (id, name, description, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.StartDate, p.EndDate)
	if err != nil {
		return err
	}

	for _, userID := range p.Members {
		if _, err := s.Exec(`
			INSERT OR IGNORE INTO project_members (project_id, user_id) VALUES (?, ?)
		`, p.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

// GetProject retrieves a project by ID with its members, or nil if no
// such project exists
func (s *Store) GetProject(id string) (*models.Project, error) {
	p := &models.Project{}
	err := s.QueryRow(`
		SELECT id, name, description, start_date, end_date
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	members, err := s.getProjectMembers(id)
	if err != nil {
		return nil, err
	}
	p.Members = members

	return p, nil
}

// ListProjects returns all projects with their member lists
func (s *Store) ListProjects() ([]models.Project, error) {
	rows, err := s.Query(`
		SELECT id, name, description, start_date, end_date
		FROM projects ORDER BY start_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load members for each project
	for i := range projects {
		members, err := s.getProjectMembers(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Members = members
	}

	return projects, nil
}

// getProjectMembers returns the member user IDs of a project
func (s *Store) getProjectMembers(projectID string) ([]string, error) {
	rows, err := s.Query(`
		SELECT user_id FROM project_members WHERE project_id = ?
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}
	return members, rows.Err()
}
