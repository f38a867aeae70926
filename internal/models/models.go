package models

import "time"

// TaskStatus is the workflow state of a task. Values double as display
// labels.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// TaskPriority is the urgency label of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// NotificationType categorizes a notification. Only "update" is produced
// by the mutation engine; the others appear in seed data.
type NotificationType string

const (
	NotificationComment    NotificationType = "comment"
	NotificationCompletion NotificationType = "completion"
	NotificationAssignment NotificationType = "assignment"
	NotificationUpdate     NotificationType = "update"
)

// ActivityType identifies what a feed entry records.
type ActivityType string

const (
	ActivityTaskCreate         ActivityType = "TASK_CREATE"
	ActivityTaskDelete         ActivityType = "TASK_DELETE"
	ActivityTaskUpdateStatus   ActivityType = "TASK_UPDATE_STATUS"
	ActivityTaskUpdatePriority ActivityType = "TASK_UPDATE_PRIORITY"
	ActivityTaskUpdateDueDate  ActivityType = "TASK_UPDATE_DUEDATE"
	ActivityTaskUpdateAssignee ActivityType = "TASK_UPDATE_ASSIGNEE"
)

// User represents a member of the team roster. Username is immutable
// after creation.
type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	AvatarURL    string
	IsAdmin      bool
}

// Project represents a project with a date span and a member list
type Project struct {
	ID          string
	Name        string
	Description string
	Members     []string // user IDs
	StartDate   time.Time
	EndDate     time.Time
}

// Task represents a single unit of work inside a project
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  string
	ProjectID   string
	CreatorID   string
	DueDate     time.Time
	Duration    int // whole days, at least 1
	IsBlocked   bool
}

// Notification is a message shown in the notification panel. The acting
// user's name and avatar are snapshotted at event time, not referenced.
type Notification struct {
	ID            string
	Type          NotificationType
	Message       string
	UserName      string
	UserAvatarURL string
	Timestamp     time.Time
	IsRead        bool
}

// Activity is one entry in the append-only activity feed.
type Activity struct {
	ID        string
	Type      ActivityType
	Timestamp time.Time
	UserID    string
	ProjectID string
	TaskID    string
	TaskTitle string
	From      string
	To        string
}
