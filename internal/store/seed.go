package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"teamsync/internal/models"
)

// Seed loads the fixture dataset: a fixed roster of users, two projects
// and their tasks, and a few historical notifications. Dates are
// relative to the current day so the dashboard always has live-looking
// data.
func Seed(s *Store) error {
	now := time.Now()
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	users := []struct {
		user     models.User
		password string
	}{
		{models.User{ID: "u1", Name: "Alex Morgan", Username: "headofman", AvatarURL: "https://picsum.photos/id/1005/100/100", IsAdmin: true}, "admin123456"},
		{models.User{ID: "u2", Name: "Jordan Lee", Username: "jordan", AvatarURL: "https://picsum.photos/id/1011/100/100"}, "password123"},
		{models.User{ID: "u3", Name: "Casey Smith", Username: "casey", AvatarURL: "https://picsum.photos/id/1012/100/100"}, "password123"},
		{models.User{ID: "u4", Name: "Riley Jones", Username: "riley", AvatarURL: "https://picsum.photos/id/1025/100/100"}, "password123"},
	}
	for _, entry := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		entry.user.PasswordHash = string(hash)
		if err := s.CreateUser(entry.user); err != nil {
			return err
		}
	}

	projects := []models.Project{
		{
			ID:          "p1",
			Name:        "QuantumLeap CRM",
			Description: "A next-generation CRM platform to revolutionize customer interactions.",
			Members:     []string{"u1", "u2", "u3"},
			StartDate:   day(-30),
			EndDate:     day(60),
		},
		{
			ID:          "p2",
			Name:        "Odyssey Website Redesign",
			Description: "A complete overhaul of the public-facing website with a new design system.",
			Members:     []string{"u1", "u4"},
			StartDate:   day(-90),
			EndDate:     day(-10),
		},
	}
	for _, p := range projects {
		if err := s.CreateProject(p); err != nil {
			return err
		}
	}

	tasks := []models.Task{
		{ID: "t1", Title: "Design Database Schema", Description: "Define all tables, columns, and relationships for the CRM.", Status: models.StatusDone, Priority: models.PriorityHigh, AssigneeID: "u2", ProjectID: "p1", CreatorID: "u1", DueDate: day(-10), Duration: 7},
		{ID: "t2", Title: "Develop Authentication Service", Description: "Implement user login, registration, and session management.", Status: models.StatusInProgress, Priority: models.PriorityHigh, AssigneeID: "u2", ProjectID: "p1", CreatorID: "u1", DueDate: day(5), Duration: 10},
		{ID: "t3", Title: "Create Dashboard UI Mockups", Description: "Design the main dashboard view in Figma.", Status: models.StatusInProgress, Priority: models.PriorityMedium, AssigneeID: "u3", ProjectID: "p1", CreatorID: "u1", DueDate: day(8), Duration: 5},
		{ID: "t4", Title: "Setup CI/CD Pipeline", Description: "Configure automated testing and deployment.", Status: models.StatusToDo, Priority: models.PriorityMedium, AssigneeID: "u1", ProjectID: "p1", CreatorID: "u1", DueDate: day(15), Duration: 3},
		{ID: "t5", Title: "Build Contact Management API", Description: "Develop endpoints for creating, reading, updating, and deleting contacts.", Status: models.StatusToDo, Priority: models.PriorityHigh, AssigneeID: "u2", ProjectID: "p1", CreatorID: "u1", DueDate: day(20), Duration: 14, IsBlocked: true},

		{ID: "t6", Title: "User Research & Personas", Description: "Identify target audience and user needs.", Status: models.StatusDone, Priority: models.PriorityMedium, AssigneeID: "u4", ProjectID: "p2", CreatorID: "u1", DueDate: day(-80), Duration: 7},
		{ID: "t7", Title: "Create Wireframes", Description: "Low-fidelity layouts for all key pages.", Status: models.StatusDone, Priority: models.PriorityHigh, AssigneeID: "u4", ProjectID: "p2", CreatorID: "u1", DueDate: day(-70), Duration: 10},
		{ID: "t8", Title: "Finalize Logo & Brand Guide", Description: "Create final branding assets.", Status: models.StatusDone, Priority: models.PriorityHigh, AssigneeID: "u1", ProjectID: "p2", CreatorID: "u1", DueDate: day(-60), Duration: 5},
		{ID: "t9", Title: "Develop Homepage", Description: "Build the main landing page with responsive design.", Status: models.StatusDone, Priority: models.PriorityHigh, AssigneeID: "u4", ProjectID: "p2", CreatorID: "u1", DueDate: day(-40), Duration: 21},
		{ID: "t10", Title: "Deploy to Production", Description: "Final launch of the new website.", Status: models.StatusDone, Priority: models.PriorityHigh, AssigneeID: "u1", ProjectID: "p2", CreatorID: "u1", DueDate: day(-15), Duration: 2},
	}
	for _, t := range tasks {
		if err := s.CreateTask(t); err != nil {
			return err
		}
	}

	notifications := []models.Notification{
		{
			ID:            "n1",
			Type:          models.NotificationCompletion,
			Message:       `completed the task "Finalize Logo & Brand Guide"`,
			UserName:      "Alex Morgan",
			UserAvatarURL: "https://picsum.photos/id/1005/100/100",
			Timestamp:     day(-1),
		},
		{
			ID:            "n2",
			Type:          models.NotificationComment,
			Message:       `commented on "Develop Authentication Service"`,
			UserName:      "Casey Smith",
			UserAvatarURL: "https://picsum.photos/id/1012/100/100",
			Timestamp:     now.Add(-3 * time.Hour),
		},
		{
			ID:            "n3",
			Type:          models.NotificationAssignment,
			Message:       `assigned you to "Build Contact Management API"`,
			UserName:      "Alex Morgan",
			UserAvatarURL: "https://picsum.photos/id/1005/100/100",
			Timestamp:     now.Add(-8 * time.Hour),
			IsRead:        true,
		},
	}
	for _, n := range notifications {
		if err := s.AddNotification(n); err != nil {
			return err
		}
	}

	return nil
}
