package store

import (
	"database/sql"

	"teamsync/internal/models"
)

// CreateUser inserts a new user
func (s *Store) CreateUser(u models.User) error {
	_, err := s.Exec(`
		INSERT INTO users (id, name, username, password_hash, avatar_url, is_admin)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Username, u.PasswordHash, u.AvatarURL, u.IsAdmin)
	return err
}

// GetUser retrieves a user by ID, or nil if no such user exists
func (s *Store) GetUser(id string) (*models.User, error) {
	u := &models.User{}
	err := s.QueryRow(`
		SELECT id, name, username, password_hash, avatar_url, is_admin
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.AvatarURL, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username (case-sensitive exact
// match), or nil if no such user exists
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := s.QueryRow(`
		SELECT id, name, username, password_hash, avatar_url, is_admin
		FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.AvatarURL, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns all users in the roster
func (s *Store) ListUsers() ([]models.User, error) {
	rows, err := s.Query(`
		SELECT id, name, username, password_hash, avatar_url, is_admin
		FROM users ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.AvatarURL, &u.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser replaces a user record. The id and username never change.
func (s *Store) UpdateUser(u models.User) error {
	_, err := s.Exec(`
		UPDATE users SET name = ?, password_hash = ?, avatar_url = ?, is_admin = ?
		WHERE id = ?
	`, u.Name, u.PasswordHash, u.AvatarURL, u.IsAdmin, u.ID)
	return err
}

// UsernameTaken reports whether any user already has the given username
func (s *Store) UsernameTaken(username string) (bool, error) {
	var count int
	err := s.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	return count > 0, err
}
