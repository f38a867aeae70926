// Package query holds the read-only computations the views are built
// from. Everything here is a pure function over the current collections.
package query

import (
	"math"
	"time"

	"teamsync/internal/models"
)

// Progress returns the completion percentage of a task set, rounded to
// the nearest whole percent (halves round up). An empty set is 0%.
func Progress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	done := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// StatusCounts tallies tasks by workflow state for the overview chart
func StatusCounts(tasks []models.Task) map[models.TaskStatus]int {
	counts := make(map[models.TaskStatus]int, 3)
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// AssignedTo filters tasks down to one assignee
func AssignedTo(tasks []models.Task, userID string) []models.Task {
	var mine []models.Task
	for _, t := range tasks {
		if t.AssigneeID == userID {
			mine = append(mine, t)
		}
	}
	return mine
}

// MemberProjects filters projects down to those a user belongs to
func MemberProjects(projects []models.Project, userID string) []models.Project {
	var mine []models.Project
	for _, p := range projects {
		for _, m := range p.Members {
			if m == userID {
				mine = append(mine, p)
				break
			}
		}
	}
	return mine
}

// OverdueCount returns how many tasks are past due and not done
func OverdueCount(tasks []models.Task, now time.Time) int {
	overdue := 0
	for _, t := range tasks {
		if t.DueDate.Before(now) && t.Status != models.StatusDone {
			overdue++
		}
	}
	return overdue
}

// DoneCount returns how many tasks are done
func DoneCount(tasks []models.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done++
		}
	}
	return done
}
