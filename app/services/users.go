package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/auth"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/logger"
)

const usersKey = "systemUsers"

// seedAdminID is the built-in administrator; it cannot be deleted.
const seedAdminID = "1"

// Users manages the account records. Passwords are bcrypt-hashed before
// they ever reach the store.
type Users struct {
	mu    sync.Mutex
	store kvstore.Store
	users []models.User
}

// NewUsers restores the account list, falling back to the two built-in
// seed accounts on first run.
func NewUsers(store kvstore.Store) *Users {
	u := &Users{store: store}

	if !store.Get(usersKey, &u.users) {
		u.users = seedUsers()
		_ = store.Put(usersKey, u.users)
	}
	return u
}

// All returns the credential-free view of every account.
func (u *Users) All() []models.PublicUser {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]models.PublicUser, len(u.users))
	for i, usr := range u.users {
		out[i] = usr.Public()
	}
	return out
}

// GetByID returns a single account.
func (u *Users) GetByID(id string) (models.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.find(id)
}

// FindByEmail returns the account with the given email.
func (u *Users) FindByEmail(email string) (models.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, usr := range u.users {
		if usr.Email == email {
			return usr, true
		}
	}
	return models.User{}, false
}

// Add creates an account with a hashed password. Emails are unique.
func (u *Users) Add(in models.UserInput) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	email := strings.TrimSpace(strings.ToLower(in.Email))
	for _, usr := range u.users {
		if strings.EqualFold(usr.Email, email) {
			return models.User{}, fmt.Errorf("add user: %w", ErrDuplicateEmail)
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("add user: hash password: %w", err)
	}

	usr := models.User{
		ID:           timeID(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		IsActive:     in.IsActive,
		CreatedAt:    time.Now(),
	}
	u.users = append(u.users, usr)
	u.persist()
	return usr, nil
}

// UserPatch is a partial account update. A non-nil Password is re-hashed.
type UserPatch struct {
	Email    *string `json:"email"    validate:"nullable,email"`
	Password *string `json:"password" validate:"nullable,min=6"`
	IsAdmin  *bool   `json:"isAdmin"`
	IsActive *bool   `json:"isActive"`
}

// Update merges the patch into an existing account.
func (u *Users) Update(id string, patch UserPatch) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	idx := u.indexOf(id)
	if idx < 0 {
		return models.User{}, fmt.Errorf("update user %s: %w", id, ErrNotFound)
	}

	usr := u.users[idx]
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		for _, other := range u.users {
			if other.ID != id && strings.EqualFold(other.Email, email) {
				return models.User{}, fmt.Errorf("update user %s: %w", id, ErrDuplicateEmail)
			}
		}
		usr.Email = email
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("update user %s: hash password: %w", id, err)
		}
		usr.PasswordHash = hash
	}
	if patch.IsAdmin != nil {
		usr.IsAdmin = *patch.IsAdmin
	}
	if patch.IsActive != nil {
		usr.IsActive = *patch.IsActive
	}

	u.users[idx] = usr
	u.persist()
	return usr, nil
}

// Delete removes an account. The seed admin is protected.
func (u *Users) Delete(id string) error {
	if id == seedAdminID {
		return fmt.Errorf("delete user %s: %w", id, ErrProtectedUser)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	idx := u.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete user %s: %w", id, ErrNotFound)
	}

	u.users = append(u.users[:idx], u.users[idx+1:]...)
	u.persist()
	return nil
}

// ToggleStatus flips the active flag.
func (u *Users) ToggleStatus(id string) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	idx := u.indexOf(id)
	if idx < 0 {
		return models.User{}, fmt.Errorf("toggle user %s: %w", id, ErrNotFound)
	}

	u.users[idx].IsActive = !u.users[idx].IsActive
	u.persist()
	return u.users[idx], nil
}

// StampLastLogin records a successful login time.
func (u *Users) StampLastLogin(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	idx := u.indexOf(id)
	if idx < 0 {
		return
	}

	now := time.Now()
	u.users[idx].LastLogin = &now
	u.persist()
}

func (u *Users) find(id string) (models.User, bool) {
	idx := u.indexOf(id)
	if idx < 0 {
		return models.User{}, false
	}
	return u.users[idx], true
}

func (u *Users) indexOf(id string) int {
	for i, usr := range u.users {
		if usr.ID == id {
			return i
		}
	}
	return -1
}

func (u *Users) persist() {
	_ = u.store.Put(usersKey, u.users)
}

// seedUsers builds the two built-in accounts. Seed passwords are hashed at
// creation; nothing plaintext is persisted.
func seedUsers() []models.User {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		logger.Error("seed users: hash admin password", "err", err)
	}
	userHash, err := auth.HashPassword("user123")
	if err != nil {
		logger.Error("seed users: hash user password", "err", err)
	}

	now := time.Now()
	return []models.User{
		{
			ID:           seedAdminID,
			Email:        "admin@looklush.com",
			PasswordHash: adminHash,
			IsAdmin:      true,
			IsActive:     true,
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Email:        "user@example.com",
			PasswordHash: userHash,
			IsAdmin:      false,
			IsActive:     true,
			CreatedAt:    now,
		},
	}
}
