package store

import (
	"teamsync/internal/models"
)

// AddNotification appends a notification. Records are never mutated
// afterwards except for the read flag.
func (s *Store) AddNotification(n models.Notification) error {
	_, err := s.Exec(`
		INSERT INTO notifications (id, type, message, user_name, user_avatar_url, timestamp, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.Type, n.Message, n.UserName, n.UserAvatarURL, n.Timestamp, n.IsRead)
	return err
}

// ListNotifications returns all notifications, newest first
func (s *Store) ListNotifications() ([]models.Notification, error) {
	rows, err := s.Query(`
		SELECT id, type, message, user_name, user_avatar_url, timestamp, is_read
		FROM notifications ORDER BY timestamp DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.UserName, &n.UserAvatarURL, &n.Timestamp, &n.IsRead); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead sets the read flag on a notification
func (s *Store) MarkNotificationRead(id string) error {
	_, err := s.Exec("UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	return err
}

// UnreadNotificationCount returns the number of unread notifications
func (s *Store) UnreadNotificationCount() (int, error) {
	var count int
	err := s.QueryRow("SELECT COUNT(*) FROM notifications WHERE is_read = 0").Scan(&count)
	return count, err
}
