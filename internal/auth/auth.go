// Package auth supplies the identity collaborator: registration, login
// sessions, and profile maintenance. The course core only ever consumes the
// resolved user identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/internal/database"
	"github.com/example/ctcourse/pkg/models"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

var (
	// ErrEmailTaken is returned when registering or changing to an email
	// already held by another account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordTooShort is returned for passwords under MinPasswordLen.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrPasswordMismatch is returned when a new password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrUnauthenticated is returned for a missing, unknown, or expired
	// session token.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidInput is returned for blank required registration fields.
	ErrInvalidInput = errors.New("name and email are required")
)

// Service implements registration, sessions, and profile updates.
type Service struct {
	users    *database.UserRepository
	sessions *database.SessionRepository
	progress *database.ProgressRepository
	answers  *database.AnswerRepository
	catalog  *course.Catalog
	ttl      time.Duration
}

// NewService creates an auth service. Sessions issued by Login live for ttl.
func NewService(
	users *database.UserRepository,
	sessions *database.SessionRepository,
	progress *database.ProgressRepository,
	answers *database.AnswerRepository,
	catalog *course.Catalog,
	ttl time.Duration,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		progress: progress,
		answers:  answers,
		catalog:  catalog,
		ttl:      ttl,
	}
}

// Register creates a new account together with its all-false progress record
// and empty project-answer record.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "Teacher",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.progress.Init(ctx, user.ID, s.catalog.CompletionFields()); err != nil {
		return nil, fmt.Errorf("init progress record: %w", err)
	}
	if err := s.answers.Init(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("init answer record: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Logout discards a session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// UserFromToken resolves a session token to its user, rejecting missing and
// expired sessions with ErrUnauthenticated.
func (s *Service) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the editable account fields. Password fields are
// applied only when NewPassword is non-empty.
type ProfileUpdate struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Institution     string `json:"institution"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdateProfile applies a profile update, re-checking email uniqueness and
// password rules.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(update.Email))
	if email != "" && email != user.Email {
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		user.Email = email
	}

	if update.NewPassword != "" {
		if update.NewPassword != update.ConfirmPassword {
			return nil, ErrPasswordMismatch
		}
		if len(update.NewPassword) < MinPasswordLen {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(update.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if name := strings.TrimSpace(update.Name); name != "" {
		user.Name = name
	}
	user.Phone = update.Phone
	user.Institution = update.Institution

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
