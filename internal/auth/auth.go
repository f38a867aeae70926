// Package auth validates credentials against the user roster and tracks
// the current identity for the session.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"teamsync/internal/models"
	"teamsync/internal/store"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("incorrect current password")
)

// Service performs authentication and profile updates. It is the only
// holder of the current identity; everything else receives the acting
// user explicitly.
type Service struct {
	store   *store.Store
	log     *slog.Logger
	current *models.User
}

// NewService creates an authentication service with no identity set
func NewService(st *store.Store, log *slog.Logger) *Service {
	return &Service{store: st, log: log}
}

// Current returns the authenticated user, or nil when anonymous
func (s *Service) Current() *models.User {
	return s.current
}

// Login authenticates a username/password pair against the roster and
// establishes the matching user as the current identity.
func (s *Service) Login(username, password string) (*models.User, error) {
	u, err := s.store.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	s.current = u
	s.log.Info("user logged in", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Register creates a new non-admin user and establishes it as the
// current identity. Fails when the username is already taken.
func (s *Service) Register(name, username, password string) (*models.User, error) {
	taken, err := s.store.UsernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
		AvatarURL:    placeholderAvatar(),
	}
	if err := s.store.CreateUser(u); err != nil {
		return nil, err
	}

	s.current = &u
	s.log.Info("user registered", "user_id", u.ID, "username", u.Username)
	return &u, nil
}

// Logout clears the current identity
func (s *Service) Logout() {
	if s.current != nil {
		s.log.Info("user logged out", "user_id", s.current.ID)
	}
	s.current = nil
}

// ProfileUpdate carries self-service profile changes. A zero field is
// left unchanged. Password changes must be accompanied by the correct
// CurrentPassword, which is compared and then discarded.
type ProfileUpdate struct {
	Name            string
	Password        string
	CurrentPassword string
}

// UpdateProfile applies a profile update to the given user. When the
// current identity is the same user, the identity snapshot is refreshed.
func (s *Service) UpdateProfile(userID string, upd ProfileUpdate) error {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	if upd.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(upd.CurrentPassword)) != nil {
			return ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}

	if err := s.store.UpdateUser(*u); err != nil {
		return err
	}
	if s.current != nil && s.current.ID == userID {
		s.current = u
	}

	s.log.Info("profile updated", "user_id", userID, "password_changed", upd.Password != "")
	return nil
}

// placeholderAvatar generates an avatar URL for a freshly registered
// user
func placeholderAvatar() string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/100/100", time.Now().UnixMilli())
}
