package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/looklush/storefront/pkg/metrics"
)

// Record is one row of the entity kv table. The whole entity snapshot lives
// in Value as a JSON string, mirroring the one-key-per-entity layout the
// storefront has always used.
type Record struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable across GORM naming strategies.
func (Record) TableName() string { return "kv_records" }

// Database is a Store backed by a relational kv table through GORM.
// Any driver pkg/database supports (sqlite, postgres, mysql, sqlserver)
// works unchanged.
type Database struct {
	db *gorm.DB
}

// NewDatabase wraps an open *gorm.DB. The kv table must already be
// migrated (database/migrations registers it).
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Get(key string, dest interface{}) bool {
	start := time.Now()
	var rec Record
	err := d.db.First(&rec, "key = ?", key).Error
	metrics.ObserveDBQuery("get", start)
	if err != nil {
		metrics.StoreMisses.WithLabelValues("database").Inc()
		return false
	}
	metrics.StoreHits.WithLabelValues("database").Inc()
	return json.Unmarshal([]byte(rec.Value), dest) == nil
}

func (d *Database) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: marshal %q: %w", key, err)
	}

	start := time.Now()
	rec := Record{Key: key, Value: string(data), UpdatedAt: time.Now()}
	err = d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	metrics.ObserveDBQuery("put", start)
	if err != nil {
		return fmt.Errorf("kvstore: put %q: %w", key, err)
	}
	return nil
}

func (d *Database) Delete(key string) error {
	start := time.Now()
	err := d.db.Delete(&Record{}, "key = ?", key).Error
	metrics.ObserveDBQuery("delete", start)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}

var _ Store = (*Database)(nil)
