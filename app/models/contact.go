package models

import "time"

// SocialMedia holds the store's social handles.
type SocialMedia struct {
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
}

// BusinessHours holds the store's opening hours.
type BusinessHours struct {
	Weekdays string `json:"weekdays"`
	Weekends string `json:"weekends"`
}

// ContactInfo is the storefront's public contact card. A single instance is
// persisted under the "contactInfo" key.
type ContactInfo struct {
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	ZipCode       string        `json:"zipCode"`
	SocialMedia   SocialMedia   `json:"socialMedia"`
	BusinessHours BusinessHours `json:"businessHours"`
}

// ContactInfoPatch is a partial contact-info update; nil fields are kept.
type ContactInfoPatch struct {
	Email         *string        `json:"email"`
	Phone         *string        `json:"phone"`
	Address       *string        `json:"address"`
	City          *string        `json:"city"`
	State         *string        `json:"state"`
	ZipCode       *string        `json:"zipCode"`
	SocialMedia   *SocialMedia   `json:"socialMedia"`
	BusinessHours *BusinessHours `json:"businessHours"`
}

// ContactMessage is one submission from the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
}

// ContactMessageInput is the contact form payload.
type ContactMessageInput struct {
	Name    string `json:"name"    validate:"required,min=2,max=140"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=5"`
}
