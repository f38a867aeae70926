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

// ProfileView lets the signed-in user change their display name and
// password. Password changes require the current password.
type ProfileView struct {
	auth   *auth.Service
	styles *styles.Styles
	keys   keys.KeyMap

	name            textinput.Model
	password        textinput.Model
	currentPassword textinput.Model
	focusIdx        int
	errMsg          string
	okMsg           string

	width  int
	height int
}

// NewProfileView creates the profile form pre-filled from the session
func NewProfileView(authSvc *auth.Service) *ProfileView {
	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 100
	name.Focus()
	if u := authSvc.Current(); u != nil {
		name.SetValue(u.Name)
	}

	password := textinput.New()
	password.Placeholder = "New password (blank to keep)"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	current := textinput.New()
	current.Placeholder = "Current password"
	current.CharLimit = 100
	current.EchoMode = textinput.EchoPassword
	current.EchoCharacter = '•'

	return &ProfileView{
		auth:            authSvc,
		styles:          styles.NewStyles(),
		keys:            keys.DefaultKeyMap(),
		name:            name,
		password:        password,
		currentPassword: current,
	}
}

func (v *ProfileView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *ProfileView) inputs() []*textinput.Model {
	return []*textinput.Model{&v.name, &v.password, &v.currentPassword}
}

func (v *ProfileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + 2) % 3
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % 3
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < 2 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v.submit()
		}
	}

	var cmd tea.Cmd
	in := v.inputs()[v.focusIdx]
	*in, cmd = in.Update(msg)
	return v, cmd
}

func (v *ProfileView) updateFocus() {
	for i, in := range v.inputs() {
		if i == v.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (v *ProfileView) submit() (tea.Model, tea.Cmd) {
	user := v.auth.Current()
	if user == nil {
		return v, func() tea.Msg { return ShowDashboard{} }
	}

	v.errMsg = ""
	v.okMsg = ""

	name := strings.TrimSpace(v.name.Value())
	if name == "" {
		v.errMsg = "Name cannot be empty."
		return v, nil
	}

	update := auth.ProfileUpdate{
		Name:            name,
		Password:        v.password.Value(),
		CurrentPassword: v.currentPassword.Value(),
	}
	if err := v.auth.UpdateProfile(user.ID, update); err != nil {
		v.errMsg = err.Error()
		return v, nil
	}

	v.okMsg = "Profile updated."
	v.password.Reset()
	v.currentPassword.Reset()
	return v, nil
}

func (v *ProfileView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-8, 24, 40)

	user := v.auth.Current()
	subtitle := ""
	if user != nil {
		subtitle = "@" + user.Username
	}

	fields := []string{
		s.Title.Render("Profile"),
		s.TitleMuted.Render(subtitle),
		"",
		"Name:",
		v.inputStyle(0).Width(inputWidth).Render(v.name.View()),
		"",
		"New password:",
		v.inputStyle(1).Width(inputWidth).Render(v.password.View()),
		"",
		"Current password:",
		v.inputStyle(2).Width(inputWidth).Render(v.currentPassword.View()),
	}

	if v.errMsg != "" {
		fields = append(fields, "", s.ErrorText.Render(v.errMsg))
	}
	if v.okMsg != "" {
		fields = append(fields, "", s.SuccessText.Render(v.okMsg))
	}
	fields = append(fields, "",
		s.TitleMuted.Render("↵: save • Tab: next field • Esc: back"))

	form := lipgloss.JoinVertical(lipgloss.Left, fields...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProfileView) inputStyle(idx int) lipgloss.Style {
	if idx == v.focusIdx {
		return v.styles.InputFocused
	}
	return v.styles.Input
}
