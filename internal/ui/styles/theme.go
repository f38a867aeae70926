package styles

import (
	"github.com/charmbracelet/lipgloss"

	"teamsync/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

// Current holds the active theme
var Current = TokyoNight

// MaxWidth is the maximum content width for the app
const MaxWidth = 100

// ContentWidth returns the actual content width to use (min of terminal
// width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if the terminal
// is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Titles
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Status and priority badges
	StatusToDo       lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusDone       lipgloss.Style
	PriorityLow      lipgloss.Style
	PriorityMedium   lipgloss.Style
	PriorityHigh     lipgloss.Style
	Blocked          lipgloss.Style

	// Progress bars
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style

	// Calendar cells
	CalendarDay     lipgloss.Style
	CalendarDim     lipgloss.Style
	CalendarToday   lipgloss.Style
	CalendarTaskDot lipgloss.Style
	CalendarProjDot lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	// Feedback
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Padding(0, 2).
			Bold(true).
			Underline(true),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		StatusToDo: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusInProgress: lipgloss.NewStyle().
			Foreground(t.Info),

		StatusDone: lipgloss.NewStyle().
			Foreground(t.Success),

		PriorityLow: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		PriorityMedium: lipgloss.NewStyle().
			Foreground(t.Warning),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Blocked: lipgloss.NewStyle().
			Foreground(t.Error),

		ProgressFilled: lipgloss.NewStyle().
			Foreground(t.Primary),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(t.Border),

		CalendarDay: lipgloss.NewStyle().
			Foreground(t.Foreground),

		CalendarDim: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		CalendarToday: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true),

		CalendarTaskDot: lipgloss.NewStyle().
			Foreground(t.Info),

		CalendarProjDot: lipgloss.NewStyle().
			Foreground(t.Success),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		ErrorText: lipgloss.NewStyle().
			Foreground(t.Error),

		SuccessText: lipgloss.NewStyle().
			Foreground(t.Success),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),
	}
}

// StatusStyle returns the badge style for a task status
func (s *Styles) StatusStyle(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusDone:
		return s.StatusDone
	case models.StatusInProgress:
		return s.StatusInProgress
	default:
		return s.StatusToDo
	}
}

// PriorityStyle returns the badge style for a task priority
func (s *Styles) PriorityStyle(priority models.TaskPriority) lipgloss.Style {
	switch priority {
	case models.PriorityHigh:
		return s.PriorityHigh
	case models.PriorityMedium:
		return s.PriorityMedium
	default:
		return s.PriorityLow
	}
}
