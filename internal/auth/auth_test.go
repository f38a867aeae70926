package auth

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamsync/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	st, err := store.Open()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil))), st
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register("Dana Fox", "dana", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Dana Fox", user.Name)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, user.AvatarURL)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	// Registration signs the user in
	require.NotNil(t, svc.Current())
	assert.Equal(t, user.ID, svc.Current().ID)

	svc.Logout()
	assert.Nil(t, svc.Current())

	got, err := svc.Login("dana", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.ID, svc.Current().ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register("Dana Fox", "dana", "hunter2hunter2")
	require.NoError(t, err)
	svc.Logout()

	_, err = svc.Login("dana", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("no-such-user", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Nil(t, svc.Current())
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register("Dana Fox", "dana", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register("Another Dana", "dana", "different-pw")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateProfilePasswordRequiresCurrent(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register("Dana Fox", "dana", "oldpassword")
	require.NoError(t, err)

	err = svc.UpdateProfile(user.ID, ProfileUpdate{
		Password:        "newpassword",
		CurrentPassword: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	// Old password still works after the rejected change
	svc.Logout()
	_, err = svc.Login("dana", "oldpassword")
	require.NoError(t, err)

	err = svc.UpdateProfile(user.ID, ProfileUpdate{
		Password:        "newpassword",
		CurrentPassword: "oldpassword",
	})
	require.NoError(t, err)

	svc.Logout()
	_, err = svc.Login("dana", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("dana", "newpassword")
	require.NoError(t, err)
}

func TestUpdateProfileNameOnly(t *testing.T) {
	svc, st := newTestService(t)

	user, err := svc.Register("Dana Fox", "dana", "hunter2hunter2")
	require.NoError(t, err)

	// A name-only change needs no current password
	require.NoError(t, svc.UpdateProfile(user.ID, ProfileUpdate{Name: "Dana Fox-Miller"}))

	got, err := st.GetUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dana Fox-Miller", got.Name)
	assert.Equal(t, "dana", got.Username)

	// The session snapshot follows the change
	assert.Equal(t, "Dana Fox-Miller", svc.Current().Name)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateProfile("no-such-id", ProfileUpdate{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
