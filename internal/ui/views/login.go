package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamsync/internal/auth"
	"teamsync/internal/ui/keys"
	"teamsync/internal/ui/styles"
)

// LoginView is the combined login / registration screen
type LoginView struct {
	auth   *auth.Service
	styles *styles.Styles
	keys   keys.KeyMap

	registering bool
	name        textinput.Model
	username    textinput.Model
	password    textinput.Model
	focusIdx    int
	errMsg      string

	width  int
	height int
}

// NewLoginView creates the login screen
func NewLoginView(authSvc *auth.Service) *LoginView {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 100

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 50
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginView{
		auth:     authSvc,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		name:     name,
		username: username,
		password: password,
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return ShowDashboard{} }

		case msg.String() == "ctrl+r":
			v.registering = !v.registering
			v.errMsg = ""
			v.focusIdx = 0
			v.updateFocus()
			return v, textinput.Blink

		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + v.fieldCount() - 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < v.fieldCount()-1 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v.submit()
		}
	}

	var cmd tea.Cmd
	switch {
	case v.registering && v.focusIdx == 0:
		v.name, cmd = v.name.Update(msg)
	case v.focusIdx == v.fieldCount()-2:
		v.username, cmd = v.username.Update(msg)
	case v.focusIdx == v.fieldCount()-1:
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// fieldCount is 2 for login, 3 when registering
func (v *LoginView) fieldCount() int {
	if v.registering {
		return 3
	}
	return 2
}

func (v *LoginView) updateFocus() {
	v.name.Blur()
	v.username.Blur()
	v.password.Blur()
	switch {
	case v.registering && v.focusIdx == 0:
		v.name.Focus()
	case v.focusIdx == v.fieldCount()-2:
		v.username.Focus()
	default:
		v.password.Focus()
	}
}

func (v *LoginView) submit() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()

	if v.registering {
		name := strings.TrimSpace(v.name.Value())
		if name == "" || username == "" || password == "" {
			v.errMsg = "All fields are required."
			return v, nil
		}
		user, err := v.auth.Register(name, username, password)
		if err != nil {
			v.errMsg = err.Error()
			return v, nil
		}
		return v, func() tea.Msg { return LoggedIn{User: *user} }
	}

	user, err := v.auth.Login(username, password)
	if err != nil {
		v.errMsg = err.Error()
		return v, nil
	}
	return v, func() tea.Msg { return LoggedIn{User: *user} }
}

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-8, 24, 40)

	title := "Sign In"
	if v.registering {
		title = "Create Account"
	}

	fields := []string{s.Title.Render(title), ""}

	if v.registering {
		fields = append(fields,
			"Name:",
			v.inputStyle(0).Width(inputWidth).Render(v.name.View()),
			"",
		)
	}
	fields = append(fields,
		"Username:",
		v.inputStyle(v.fieldCount()-2).Width(inputWidth).Render(v.username.View()),
		"",
		"Password:",
		v.inputStyle(v.fieldCount()-1).Width(inputWidth).Render(v.password.View()),
	)

	if v.errMsg != "" {
		fields = append(fields, "", s.ErrorText.Render(v.errMsg))
	}

	toggle := "Ctrl+R: create an account"
	if v.registering {
		toggle = "Ctrl+R: back to sign in"
	}
	fields = append(fields, "",
		s.TitleMuted.Render("↵: submit • Tab: next field • "+toggle),
		s.TitleMuted.Render("Esc: browse as guest"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, fields...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *LoginView) inputStyle(idx int) lipgloss.Style {
	if idx == v.focusIdx {
		return v.styles.InputFocused
	}
	return v.styles.Input
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
