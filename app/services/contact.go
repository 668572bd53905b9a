package services

import (
	"sync"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
)

const contactInfoKey = "contactInfo"

// Contact holds the store's public contact card.
type Contact struct {
	mu    sync.Mutex
	store kvstore.Store
	info  models.ContactInfo
}

// NewContact restores the contact card, writing the built-in defaults on
// first run so the seeded card survives a restart on a shared store.
func NewContact(store kvstore.Store) *Contact {
	c := &Contact{store: store}
	if !store.Get(contactInfoKey, &c.info) {
		c.info = defaultContactInfo()
		_ = store.Put(contactInfoKey, c.info)
	}
	return c
}

// Info returns the current contact card.
func (c *Contact) Info() models.ContactInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Update merges the patch, persists, and returns the field-level changes so
// the admin surface can write them to the audit log.
func (c *Contact) Update(patch models.ContactInfoPatch) (models.ContactInfo, []models.FieldChange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var changes []models.FieldChange
	record := func(field string, old, new interface{}) {
		changes = append(changes, models.FieldChange{Field: field, OldValue: old, NewValue: new})
	}

	if patch.Email != nil && *patch.Email != c.info.Email {
		record("email", c.info.Email, *patch.Email)
		c.info.Email = *patch.Email
	}
	if patch.Phone != nil && *patch.Phone != c.info.Phone {
		record("phone", c.info.Phone, *patch.Phone)
		c.info.Phone = *patch.Phone
	}
	if patch.Address != nil && *patch.Address != c.info.Address {
		record("address", c.info.Address, *patch.Address)
		c.info.Address = *patch.Address
	}
	if patch.City != nil && *patch.City != c.info.City {
		record("city", c.info.City, *patch.City)
		c.info.City = *patch.City
	}
	if patch.State != nil && *patch.State != c.info.State {
		record("state", c.info.State, *patch.State)
		c.info.State = *patch.State
	}
	if patch.ZipCode != nil && *patch.ZipCode != c.info.ZipCode {
		record("zipCode", c.info.ZipCode, *patch.ZipCode)
		c.info.ZipCode = *patch.ZipCode
	}
	if patch.SocialMedia != nil && *patch.SocialMedia != c.info.SocialMedia {
		record("socialMedia", c.info.SocialMedia, *patch.SocialMedia)
		c.info.SocialMedia = *patch.SocialMedia
	}
	if patch.BusinessHours != nil && *patch.BusinessHours != c.info.BusinessHours {
		record("businessHours", c.info.BusinessHours, *patch.BusinessHours)
		c.info.BusinessHours = *patch.BusinessHours
	}

	if len(changes) > 0 {
		_ = c.store.Put(contactInfoKey, c.info)
	}
	return c.info, changes
}

func defaultContactInfo() models.ContactInfo {
	return models.ContactInfo{
		Email:   "hello@looklush.com",
		Phone:   "+1 (555) 123-4567",
		Address: "123 Fashion Avenue",
		City:    "New York",
		State:   "NY",
		ZipCode: "10001",
		SocialMedia: models.SocialMedia{
			Instagram: "@looklush",
			Twitter:   "@looklush",
			Facebook:  "LookLushOfficial",
		},
		BusinessHours: models.BusinessHours{
			Weekdays: "9:00 AM - 8:00 PM",
			Weekends: "10:00 AM - 6:00 PM",
		},
	}
}
