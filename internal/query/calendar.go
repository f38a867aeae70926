package query

import (
	"time"

	"teamsync/internal/models"
)

// EventKind distinguishes task deadlines from project spans
type EventKind int

const (
	// EventTask is a point event on a task's due date
	EventTask EventKind = iota
	// EventProject is an interval event spanning a project's dates,
	// inclusive on both ends
	EventProject
)

// Event is a calendar entry projected from a task or a project
type Event struct {
	ID    string
	Title string
	Kind  EventKind
	Date  time.Time // task events
	Start time.Time // project events
	End   time.Time
}

// Events projects every task and project into calendar events
func Events(projects []models.Project, tasks []models.Task) []Event {
	events := make([]Event, 0, len(tasks)+len(projects))
	for _, t := range tasks {
		events = append(events, Event{ID: t.ID, Title: t.Title, Kind: EventTask, Date: t.DueDate})
	}
	for _, p := range projects {
		events = append(events, Event{ID: p.ID, Title: p.Name, Kind: EventProject, Start: p.StartDate, End: p.EndDate})
	}
	return events
}

// On returns the events falling on the given day: task events due that
// day, and project events whose span contains it.
func On(events []Event, day time.Time) []Event {
	d := startOfDay(day)

	var hits []Event
	for _, e := range events {
		switch e.Kind {
		case EventTask:
			if SameDay(e.Date, day) {
				hits = append(hits, e)
			}
		case EventProject:
			if !d.Before(startOfDay(e.Start)) && !d.After(startOfDay(e.End)) {
				hits = append(hits, e)
			}
		}
	}
	return hits
}

// MonthGrid returns every day shown on a month calendar: whole weeks,
// Sunday through Saturday, covering the month that contains ref.
func MonthGrid(ref time.Time) []time.Time {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	var days []time.Time
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
