package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	docs := database.NewDocumentStore(db)
	return NewService(
		database.NewUserRepository(db),
		database.NewSessionRepository(db),
		database.NewProgressRepository(docs),
		database.NewAnswerRepository(docs),
		course.DefaultCatalog(),
		time.Hour,
	)
}

func TestRegisterCreatesRecords(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada Teacher", "Ada@Example.edu", "secret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.edu", user.Email, "email is normalized")
	assert.Equal(t, "Teacher", user.Role)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "ada@example.edu", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "Ada", "ada@example.edu", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ada", "ada@example.edu", "another-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginAndToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)

	session, user, err := svc.Login(ctx, "ada@example.edu", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, session.Token)

	resolved, err := svc.UserFromToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.edu", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.edu", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)
	session, _, err := svc.Login(ctx, "ada@example.edu", "secret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.UserFromToken(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserFromTokenRejectsEmpty(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UserFromToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
		Name:        "Ada Lovelace",
		Email:       "ada@example.edu",
		Institution: "Analytical Engine Academy",
		Phone:       "555-0101",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "Analytical Engine Academy", updated.Institution)
}

func TestUpdateProfilePasswordRules(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
		NewPassword:     "new-secret",
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
		NewPassword:     "tiny",
		ConfirmPassword: "tiny",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
		NewPassword:     "new-secret",
		ConfirmPassword: "new-secret",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.edu", "new-secret")
	assert.NoError(t, err)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.edu", "secret-pass")
	require.NoError(t, err)
	second, err := svc.Register(ctx, "Grace", "grace@example.edu", "secret-pass")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, second.ID, ProfileUpdate{Email: "ada@example.edu"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
