package dto

import (
	"time"

	"github.com/google/uuid"
)

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ReservationRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	PartySize int    `json:"party_size" validate:"required,min=1,max=20"`
	Notes     string `json:"notes" validate:"max=500"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

type BookingRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Service string `json:"service" validate:"required,max=120"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"omitempty,datetime=15:04"`
	Notes   string `json:"notes" validate:"max=500"`
}

type SubmissionResponse struct {
	Id          uuid.UUID  `json:"id"`
	SiteSlug    string     `json:"site"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	Reference   string     `json:"reference,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}
