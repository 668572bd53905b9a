package services

import (
	"testing"

	"github.com/looklush/storefront/pkg/auth"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*Auth, *Users) {
	store := kvstore.NewMemory()
	users := NewUsers(store)
	return NewAuth(users, store), users
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	svc, users := newAuthFixture()

	sess, token, ok := svc.Login(sid, "admin@looklush.com", "admin123")
	require.True(t, ok)

	assert.Equal(t, "1", sess.ID)
	assert.Equal(t, "admin@looklush.com", sess.Email)
	assert.True(t, sess.IsAdmin)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.True(t, claims.IsAdmin)

	admin, _ := users.GetByID("1")
	assert.NotNil(t, admin.LastLogin, "successful login is stamped")
}

func TestLoginFailsWithWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, ok := svc.Login(sid, "admin@looklush.com", "nope")
	assert.False(t, ok)

	_, ok = svc.CurrentUser(sid)
	assert.False(t, ok, "no session is written on failure")
}

func TestLoginFailsForUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, ok := svc.Login(sid, "ghost@example.com", "admin123")
	assert.False(t, ok)
}

func TestLoginFailsForDeactivatedAccount(t *testing.T) {
	svc, users := newAuthFixture()

	_, err := users.ToggleStatus("2")
	require.NoError(t, err)

	_, _, ok := svc.Login(sid, "user@example.com", "user123")
	assert.False(t, ok, "deactivated accounts cannot sign in even with the right password")
}

func TestCurrentUserRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, ok := svc.Login(sid, "user@example.com", "user123")
	require.True(t, ok)

	sess, ok := svc.CurrentUser(sid)
	require.True(t, ok)
	assert.Equal(t, "2", sess.ID)
	assert.False(t, sess.IsAdmin)
}

func TestLogoutEndsSession(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, ok := svc.Login(sid, "user@example.com", "user123")
	require.True(t, ok)

	svc.Logout(sid)

	_, ok = svc.CurrentUser(sid)
	assert.False(t, ok)
}

func TestSessionRecordIsEncryptedAtRest(t *testing.T) {
	store := kvstore.NewMemory()
	users := NewUsers(store)
	svc := NewAuth(users, store)

	_, _, ok := svc.Login(sid, "user@example.com", "user123")
	require.True(t, ok)

	var raw string
	require.True(t, store.Get("session:"+sid, &raw))
	assert.NotContains(t, raw, "user@example.com", "the stored record is ciphertext")
}

func TestCorruptSessionIsTreatedAsAnonymous(t *testing.T) {
	store := kvstore.NewMemory()
	users := NewUsers(store)
	svc := NewAuth(users, store)

	require.NoError(t, store.Put("session:"+sid, "not-a-ciphertext"))

	_, ok := svc.CurrentUser(sid)
	assert.False(t, ok)
}
