package services

import (
	"fmt"
	"testing"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditEntry(action string, category models.AuditCategory) models.AuditEntry {
	return models.AuditEntry{
		AdminID:    "1",
		AdminEmail: "admin@looklush.com",
		Action:     action,
		Category:   category,
		Details:    models.AuditDetails{Description: action},
	}
}

func TestAuditPrependsNewestFirst(t *testing.T) {
	audit := NewAudit(kvstore.NewMemory())

	audit.Add(auditEntry("first", models.AuditCategoryProduct))
	audit.Add(auditEntry("second", models.AuditCategoryProduct))

	entries := audit.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Action)
	assert.Equal(t, "first", entries[1].Action)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAuditCapEvictsOldest(t *testing.T) {
	audit := NewAudit(kvstore.NewMemory())

	for i := 0; i < maxAuditEntries+5; i++ {
		audit.Add(auditEntry(fmt.Sprintf("action-%d", i), models.AuditCategorySystem))
	}

	entries := audit.All()
	require.Len(t, entries, maxAuditEntries)
	assert.Equal(t, fmt.Sprintf("action-%d", maxAuditEntries+4), entries[0].Action)
	assert.Equal(t, "action-5", entries[maxAuditEntries-1].Action, "the five oldest were evicted")
}

func TestAuditClear(t *testing.T) {
	store := kvstore.NewMemory()
	audit := NewAudit(store)

	audit.Add(auditEntry("something", models.AuditCategoryUser))
	require.NoError(t, audit.Clear())

	assert.Empty(t, audit.All())

	var persisted []models.AuditEntry
	assert.False(t, store.Get("auditLogs", &persisted), "persisted copy removed too")
}

func TestAuditFilters(t *testing.T) {
	audit := NewAudit(kvstore.NewMemory())

	audit.Add(auditEntry("product created", models.AuditCategoryProduct))
	audit.Add(auditEntry("stock updated", models.AuditCategoryStock))
	other := auditEntry("user deactivated", models.AuditCategoryUser)
	other.AdminID = "2"
	other.AdminEmail = "user@example.com"
	audit.Add(other)

	byCategory := audit.ByCategory(models.AuditCategoryStock)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "stock updated", byCategory[0].Action)

	byAdmin := audit.ByAdmin("1")
	assert.Len(t, byAdmin, 2)
}

func TestAuditPersistsAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	audit := NewAudit(store)
	audit.Add(auditEntry("survives", models.AuditCategorySystem))

	reloaded := NewAudit(store)
	entries := reloaded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "survives", entries[0].Action)
}
