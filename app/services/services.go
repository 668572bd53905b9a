// Package services holds the storefront state containers re-architected as
// explicit service objects: catalogue, carts, checkout, orders, audit log,
// users/auth, contact info and contact messages. Each service is constructed
// once at startup with an injected kvstore.Store and persists its full
// snapshot synchronously after every mutation.
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// Validation and lookup failures are typed so controllers can map them to
// user-facing notifications without string matching.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateSKU      = errors.New("sku already in use")
	ErrPriceOutOfBand    = errors.New("price outside the declared min/max band")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrProtectedUser     = errors.New("the seed admin account cannot be deleted")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCheckout     = errors.New("no items to check out")
)

var (
	idMu   sync.Mutex
	lastID int64
)

// timeID returns a millisecond-derived identifier, strictly increasing even
// when two IDs are requested within the same millisecond.
func timeID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

// randomSuffix returns n base-36 characters, used to disambiguate audit
// entry identifiers.
func randomSuffix(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// entryID builds an audit-entry identifier: time component plus a random
// base-36 tail.
func entryID() string {
	return fmt.Sprintf("%s%s", timeID(), randomSuffix(9))
}
