package services

import (
	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/auth"
	"github.com/looklush/storefront/pkg/crypt"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/logger"
)

// Auth authenticates accounts and manages the persisted session identity.
// The minimal session record (id, email, admin flag) is AES-GCM encrypted
// before it reaches the store.
type Auth struct {
	users *Users
	store kvstore.Store
}

// NewAuth returns an auth service over the given user list and store.
func NewAuth(users *Users, store kvstore.Store) *Auth {
	return &Auth{users: users, store: store}
}

func sessionKey(sessionID string) string { return "session:" + sessionID }

// Login matches email, password and the active flag. On success it stamps
// LastLogin, persists the session record and issues a signed token for the
// HTTP surface. A deactivated account fails even with correct credentials.
func (a *Auth) Login(sessionID, email, password string) (models.SessionUser, string, bool) {
	usr, ok := a.users.FindByEmail(email)
	if !ok || !usr.IsActive || !auth.CheckPassword(usr.PasswordHash, password) {
		return models.SessionUser{}, "", false
	}

	a.users.StampLastLogin(usr.ID)

	sess := models.SessionUser{ID: usr.ID, Email: usr.Email, IsAdmin: usr.IsAdmin}

	enc, err := crypt.EncryptJSON(sess)
	if err != nil {
		logger.Error("login: encrypt session", "err", err)
	} else if err := a.store.Put(sessionKey(sessionID), enc); err != nil {
		logger.Error("login: persist session", "err", err)
	}

	token, err := auth.GenerateToken(usr.ID, usr.Email, usr.IsAdmin)
	if err != nil {
		logger.Error("login: sign token", "err", err)
		return models.SessionUser{}, "", false
	}

	return sess, token, true
}

// Logout clears the persisted session record.
func (a *Auth) Logout(sessionID string) {
	_ = a.store.Delete(sessionKey(sessionID))
}

// CurrentUser restores the session identity persisted by Login.
func (a *Auth) CurrentUser(sessionID string) (models.SessionUser, bool) {
	var enc string
	if !a.store.Get(sessionKey(sessionID), &enc) {
		return models.SessionUser{}, false
	}

	var sess models.SessionUser
	if err := crypt.DecryptJSON(enc, &sess); err != nil {
		// A malformed or re-keyed record is treated as no session.
		return models.SessionUser{}, false
	}
	return sess, true
}
