package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/collection"
	"github.com/looklush/storefront/pkg/event"
	"github.com/looklush/storefront/pkg/kvstore"
)

const messagesKey = "contactMessages"

// Messages stores contact-form submissions for the admin inbox.
type Messages struct {
	mu       sync.Mutex
	store    kvstore.Store
	messages []models.ContactMessage
}

// NewMessages restores the inbox from the store.
func NewMessages(store kvstore.Store) *Messages {
	m := &Messages{store: store}
	store.Get(messagesKey, &m.messages)
	return m
}

// Add appends a new unread message from the public contact form.
func (m *Messages) Add(in models.ContactMessageInput) models.ContactMessage {
	m.mu.Lock()

	msg := models.ContactMessage{
		ID:        timeID(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Timestamp: time.Now(),
	}
	m.messages = append(m.messages, msg)
	m.persist()
	m.mu.Unlock()

	event.Fire("message.received", msg)
	return msg
}

// All returns a copy of every message.
func (m *Messages) All() []models.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ContactMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// MarkRead flags a message as read.
func (m *Messages) MarkRead(id string) (models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, msg := range m.messages {
		if msg.ID == id {
			m.messages[i].IsRead = true
			m.persist()
			return m.messages[i], nil
		}
	}
	return models.ContactMessage{}, fmt.Errorf("mark read %s: %w", id, ErrNotFound)
}

// Delete removes a message.
func (m *Messages) Delete(id string) (models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, msg := range m.messages {
		if msg.ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			m.persist()
			return msg, nil
		}
	}
	return models.ContactMessage{}, fmt.Errorf("delete message %s: %w", id, ErrNotFound)
}

// UnreadCount returns how many messages are still unread.
func (m *Messages) UnreadCount() int {
	return len(collection.Filter(m.All(), func(msg models.ContactMessage) bool {
		return !msg.IsRead
	}))
}

func (m *Messages) persist() {
	_ = m.store.Put(messagesKey, m.messages)
}
