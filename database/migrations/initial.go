package migrations

import (
	"gorm.io/gorm"

	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_kv_records_table", &CreateKVRecordsTable{})
}

// CreateKVRecordsTable creates the single table backing the database
// store driver. Every entity snapshot lives in it as one keyed JSON row.
type CreateKVRecordsTable struct{}

func (m *CreateKVRecordsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&kvstore.Record{})
}

func (m *CreateKVRecordsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(kvstore.Record{}.TableName())
}
