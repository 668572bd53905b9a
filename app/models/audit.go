package models

import "time"

// AuditCategory classifies administrative actions.
type AuditCategory string

const (
	AuditCategoryProduct AuditCategory = "product"
	AuditCategoryContact AuditCategory = "contact"
	AuditCategoryUser    AuditCategory = "user"
	AuditCategoryStock   AuditCategory = "stock"
	AuditCategoryMessage AuditCategory = "message"
	AuditCategorySystem  AuditCategory = "system"
)

// FieldChange records one field-level (old, new) pair inside an audit entry.
type FieldChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"oldValue"`
	NewValue interface{} `json:"newValue"`
}

// AuditDetails is the structured payload of an audit entry.
type AuditDetails struct {
	ItemID      string        `json:"itemId,omitempty"`
	ItemName    string        `json:"itemName,omitempty"`
	Changes     []FieldChange `json:"changes,omitempty"`
	Description string        `json:"description"`
}

// AuditEntry is one append-only record of an administrative mutation.
// The log keeps the most recent 1000 entries, newest first.
type AuditEntry struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	AdminID    string        `json:"adminId"`
	AdminEmail string        `json:"adminEmail"`
	Action     string        `json:"action"`
	Category   AuditCategory `json:"category"`
	Details    AuditDetails  `json:"details"`
}
