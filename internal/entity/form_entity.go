package entity

import (
	"time"

	"github.com/google/uuid"
)

type FormStatus string

const (
	FormIdle       FormStatus = "idle"
	FormSubmitting FormStatus = "submitting"
	FormSuccess    FormStatus = "success"
	FormError      FormStatus = "error"
)

type FormSubmission struct {
	Id          uuid.UUID
	SiteSlug    string
	Kind        string
	Fields      map[string]interface{}
	Status      FormStatus
	Reason      string
	Reference   string
	SubmittedAt time.Time
	SettledAt   *time.Time
}

type FormConfirmation struct {
	Reference string
	Message   string
}
