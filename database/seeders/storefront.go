package seeders

import (
	"gorm.io/gorm"

	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/kvstore"
)

func init() {
	Register("storefront", SeedStorefront)
}

// SeedStorefront materialises the first-run data: the sample catalogue,
// the built-in accounts and the contact card. Constructing each service
// over an empty store writes its seed snapshot; on re-runs the existing
// snapshots are left alone.
func SeedStorefront(db *gorm.DB) error {
	store := kvstore.NewDatabase(db)

	services.NewCatalog(store)
	services.NewUsers(store)
	services.NewContact(store)
	return nil
}
