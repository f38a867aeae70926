package views

import "teamsync/internal/models"

// Messages emitted by views for the app model to act on.

// LoggedIn is emitted after a successful login or registration
type LoggedIn struct {
	User models.User
}

// LoggedOut is emitted when the user logs out
type LoggedOut struct{}

// OpenProject asks the app to switch to the project view
type OpenProject struct {
	Project models.Project
}

// ShowDashboard asks the app to return to the dashboard
type ShowDashboard struct{}

// ShowCalendar asks the app to open the calendar view
type ShowCalendar struct{}

// ShowTeam asks the app to open the team view
type ShowTeam struct{}

// ShowProfile asks the app to open the profile view
type ShowProfile struct{}

// ShowLogin asks the app to open the login screen
type ShowLogin struct{}
