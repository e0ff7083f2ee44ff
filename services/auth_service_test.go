package services

import (
	"testing"

	"restaurant-api/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, svc *AuthService, username, email string) {
	t.Helper()
	_, err := svc.Register(RegisterInput{Username: username, Email: email, Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"})
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(RegisterInput{
		Username: "alice", Email: "Alice@Example.com",
		Password: "s3cret-pass", PasswordConfirm: "s3cret-pass",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin())
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	_, err = svc.Register(RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.Register(RegisterInput{Username: "alice", Email: "other@example.com", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.Register(RegisterInput{Username: "carol", Email: "carol@example.com", Password: "s3cret-pass", PasswordConfirm: "different"})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.Register(RegisterInput{Username: "carol", Email: "carol@example.com", Password: "short", PasswordConfirm: "short"})
	requireKind(t, err, apperr.KindValidation)

	got, err := svc.Login("ALICE@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login("alice@example.com", "wrong")
	requireKind(t, err, apperr.KindUnauthorized)
	_, err = svc.Login("nobody@example.com", "s3cret-pass")
	requireKind(t, err, apperr.KindUnauthorized)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	_, err = svc.Login("alice@example.com", "s3cret-pass")
	requireKind(t, err, apperr.KindUnauthorized)
}

func TestAdminLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	register(t, svc, "alice", "alice@example.com")
	register(t, svc, "boss", "boss@example.com")
	require.NoError(t, db.Exec("UPDATE users SET is_staff = ? WHERE username = ?", true, "boss").Error)

	_, err := svc.AdminLogin("alice@example.com", "s3cret-pass")
	requireKind(t, err, apperr.KindForbidden)

	boss, err := svc.AdminLogin("boss@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, boss.IsStaff)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	register(t, svc, "alice", "alice@example.com")
	register(t, svc, "bob", "bob@example.com")
	alice, err := svc.Login("alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	taken := "bob"
	_, err = svc.UpdateProfile(alice.ID, UpdateProfileInput{Username: &taken})
	requireKind(t, err, apperr.KindValidation)

	name, first := "ally", "Alice"
	updated, err := svc.UpdateProfile(alice.ID, UpdateProfileInput{Username: &name, FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "ally", updated.Username)
	assert.Equal(t, "Alice", updated.FullName())

	_, err = svc.UpdateProfile(9999, UpdateProfileInput{FirstName: &first})
	requireKind(t, err, apperr.KindNotFound)
}
