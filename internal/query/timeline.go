package query

import (
	"math"
	"time"

	"teamsync/internal/models"
)

// Bar is the horizontal geometry of a task bar on its project's
// timeline, expressed as fractions of the project span.
type Bar struct {
	Offset float64
	Width  float64
}

// TaskBar positions a task within its project's date span. The offset
// is where the due date falls, the width covers the task's duration,
// and both are clamped so the bar never leaves the span.
func TaskBar(p models.Project, t models.Task) Bar {
	span := float64(SpanDays(p))

	offset := float64(daysBetween(p.StartDate, t.DueDate)) / span
	width := float64(t.Duration) / span

	if offset < 0 {
		offset = 0
	}
	if offset > 1 {
		offset = 1
	}
	if width > 1-offset {
		width = 1 - offset
	}
	return Bar{Offset: offset, Width: width}
}

// TodayMarker returns the fractional position of today within the
// project span, or false when today is outside [start, end].
func TodayMarker(p models.Project, today time.Time) (float64, bool) {
	d := startOfDay(today)
	if d.Before(startOfDay(p.StartDate)) || d.After(startOfDay(p.EndDate)) {
		return 0, false
	}
	return float64(daysBetween(p.StartDate, today)) / float64(SpanDays(p)), true
}

// SpanDays returns a project's duration in days, counting both the
// start and end day.
func SpanDays(p models.Project) int {
	return daysBetween(p.StartDate, p.EndDate) + 1
}

// daysBetween counts calendar days from a to b at day granularity.
// Rounding absorbs DST-shortened and -lengthened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(startOfDay(b).Sub(startOfDay(a)).Hours() / 24))
}
