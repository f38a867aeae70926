package query

import (
	"strings"

	"teamsync/internal/models"
)

// SearchResult holds search matches grouped by entity
type SearchResult struct {
	Projects []models.Project
	Tasks    []models.Task
}

// Search matches the query case-insensitively as a substring of project
// names and task titles. An empty query matches nothing.
func Search(query string, projects []models.Project, tasks []models.Task) SearchResult {
	var r SearchResult
	if query == "" {
		return r
	}

	q := strings.ToLower(query)
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), q) {
			r.Projects = append(r.Projects, p)
		}
	}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) {
			r.Tasks = append(r.Tasks, t)
		}
	}
	return r
}
