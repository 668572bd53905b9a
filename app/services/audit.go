package services

import (
	"sync"
	"time"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/collection"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/logger"
)

const (
	auditKey = "auditLogs"

	// maxAuditEntries caps the log; the oldest entries are evicted beyond it.
	maxAuditEntries = 1000
)

// Audit is the append-only record of administrative mutations, newest
// first. It performs no authorization itself; callers are already-gated
// admin flows.
type Audit struct {
	mu      sync.Mutex
	store   kvstore.Store
	entries []models.AuditEntry
}

// NewAudit restores the log from the store.
func NewAudit(store kvstore.Store) *Audit {
	a := &Audit{store: store}
	store.Get(auditKey, &a.entries)
	return a
}

// Add stamps identifier and timestamp, prepends the entry, evicts beyond
// the cap and persists. The entry is also mirrored through the structured
// logger, which lands in Mongo when the sink is enabled.
func (a *Audit) Add(entry models.AuditEntry) models.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry.ID = entryID()
	entry.Timestamp = time.Now()

	a.entries = append([]models.AuditEntry{entry}, a.entries...)
	if len(a.entries) > maxAuditEntries {
		a.entries = a.entries[:maxAuditEntries]
	}
	_ = a.store.Put(auditKey, a.entries)

	logger.Info("audit",
		"action", entry.Action,
		"category", string(entry.Category),
		"admin", entry.AdminEmail,
		"item", entry.Details.ItemName,
		"description", entry.Details.Description,
	)
	return entry
}

// All returns a copy of the log, newest first.
func (a *Audit) All() []models.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.AuditEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Clear empties the log and removes the persisted copy.
func (a *Audit) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = nil
	return a.store.Delete(auditKey)
}

// ByCategory filters by exact category match.
func (a *Audit) ByCategory(category models.AuditCategory) []models.AuditEntry {
	return collection.Filter(a.All(), func(e models.AuditEntry) bool {
		return e.Category == category
	})
}

// ByAdmin filters by acting admin identity.
func (a *Audit) ByAdmin(adminID string) []models.AuditEntry {
	return collection.Filter(a.All(), func(e models.AuditEntry) bool {
		return e.AdminID == adminID
	})
}
