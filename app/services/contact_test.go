package services

import (
	"testing"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactDefaultsOnFirstRun(t *testing.T) {
	contact := NewContact(kvstore.NewMemory())

	info := contact.Info()
	assert.Equal(t, "hello@looklush.com", info.Email)
	assert.Equal(t, "New York", info.City)
	assert.Equal(t, "@looklush", info.SocialMedia.Instagram)
}

func TestContactSeedsOnFirstRun(t *testing.T) {
	store := kvstore.NewMemory()
	NewContact(store)

	// The default card is written immediately, not deferred to the first
	// admin update.
	var persisted models.ContactInfo
	require.True(t, store.Get("contactInfo", &persisted))
	assert.Equal(t, "hello@looklush.com", persisted.Email)
}

func TestContactUpdateReportsFieldChanges(t *testing.T) {
	contact := NewContact(kvstore.NewMemory())

	phone := "+1 (555) 999-0000"
	city := "Brooklyn"
	info, changes := contact.Update(models.ContactInfoPatch{Phone: &phone, City: &city})

	assert.Equal(t, phone, info.Phone)
	assert.Equal(t, "Brooklyn", info.City)

	require.Len(t, changes, 2)
	assert.Equal(t, "phone", changes[0].Field)
	assert.Equal(t, "+1 (555) 123-4567", changes[0].OldValue)
	assert.Equal(t, phone, changes[0].NewValue)
}

func TestContactUpdateNoOpYieldsNoChanges(t *testing.T) {
	contact := NewContact(kvstore.NewMemory())

	same := "hello@looklush.com"
	_, changes := contact.Update(models.ContactInfoPatch{Email: &same})
	assert.Empty(t, changes, "setting a field to its current value is not a change")
}

func TestContactPersistsAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	contact := NewContact(store)

	email := "support@looklush.com"
	_, changes := contact.Update(models.ContactInfoPatch{Email: &email})
	require.NotEmpty(t, changes)

	reloaded := NewContact(store)
	assert.Equal(t, "support@looklush.com", reloaded.Info().Email)
}

func TestMessagesInboxFlow(t *testing.T) {
	messages := NewMessages(kvstore.NewMemory())

	first := messages.Add(models.ContactMessageInput{
		Name: "Jane Doe", Email: "jane@example.com",
		Subject: "Sizing", Message: "Does the blazer run small?",
	})
	messages.Add(models.ContactMessageInput{
		Name: "John Roe", Email: "john@example.com",
		Subject: "Returns", Message: "How do I start a return?",
	})

	assert.Equal(t, 2, messages.UnreadCount())
	assert.False(t, first.IsRead)
	assert.NotEmpty(t, first.ID)

	read, err := messages.MarkRead(first.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.Equal(t, 1, messages.UnreadCount())

	_, err = messages.Delete(first.ID)
	require.NoError(t, err)
	assert.Len(t, messages.All(), 1)

	_, err = messages.MarkRead(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessagesPersistAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	messages := NewMessages(store)

	messages.Add(models.ContactMessageInput{
		Name: "Jane Doe", Email: "jane@example.com",
		Subject: "Hi", Message: "Just saying hello",
	})

	reloaded := NewMessages(store)
	require.Len(t, reloaded.All(), 1)
	assert.Equal(t, "Hi", reloaded.All()[0].Subject)
}
