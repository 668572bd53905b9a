package services

import (
	"testing"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/auth"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersSeedOnFirstRun(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	all := users.All()
	require.Len(t, all, 2)

	admin, ok := users.FindByEmail("admin@looklush.com")
	require.True(t, ok)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsActive)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))
	assert.NotEqual(t, "admin123", admin.PasswordHash, "nothing plaintext is stored")

	regular, ok := users.FindByEmail("user@example.com")
	require.True(t, ok)
	assert.False(t, regular.IsAdmin)
	assert.True(t, auth.CheckPassword(regular.PasswordHash, "user123"))
}

func TestUsersAddHashesPassword(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	usr, err := users.Add(models.UserInput{
		Email:    "New@Example.COM",
		Password: "secret99",
		IsActive: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", usr.Email, "emails are normalized")
	assert.True(t, auth.CheckPassword(usr.PasswordHash, "secret99"))
	assert.False(t, auth.CheckPassword(usr.PasswordHash, "wrong"))
}

func TestUsersDuplicateEmailRejected(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	_, err := users.Add(models.UserInput{Email: "ADMIN@looklush.com", Password: "whatever", IsActive: true})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUsersUpdateMergesPatch(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	newEmail := "renamed@example.com"
	isAdmin := true
	usr, err := users.Update("2", UserPatch{Email: &newEmail, IsAdmin: &isAdmin})
	require.NoError(t, err)

	assert.Equal(t, "renamed@example.com", usr.Email)
	assert.True(t, usr.IsAdmin)
	assert.True(t, usr.IsActive, "untouched fields survive")
}

func TestUsersUpdateRehashesPassword(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	newPassword := "rotated1"
	usr, err := users.Update("2", UserPatch{Password: &newPassword})
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(usr.PasswordHash, "rotated1"))
	assert.False(t, auth.CheckPassword(usr.PasswordHash, "user123"))
}

func TestUsersSeedAdminIsProtected(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	err := users.Delete("1")
	assert.ErrorIs(t, err, ErrProtectedUser)

	_, ok := users.GetByID("1")
	assert.True(t, ok)
}

func TestUsersDeleteRegularAccount(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	require.NoError(t, users.Delete("2"))
	_, ok := users.GetByID("2")
	assert.False(t, ok)

	assert.ErrorIs(t, users.Delete("2"), ErrNotFound)
}

func TestUsersToggleStatus(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	usr, err := users.ToggleStatus("2")
	require.NoError(t, err)
	assert.False(t, usr.IsActive)

	usr, err = users.ToggleStatus("2")
	require.NoError(t, err)
	assert.True(t, usr.IsActive)
}

func TestUsersAllHidesCredentials(t *testing.T) {
	users := NewUsers(kvstore.NewMemory())

	for _, pub := range users.All() {
		assert.NotEmpty(t, pub.Email)
	}
}

func TestUsersPersistAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	users := NewUsers(store)

	_, err := users.Add(models.UserInput{Email: "persisted@example.com", Password: "secret99", IsActive: true})
	require.NoError(t, err)

	reloaded := NewUsers(store)
	_, ok := reloaded.FindByEmail("persisted@example.com")
	assert.True(t, ok)
	assert.Len(t, reloaded.All(), 3)
}
