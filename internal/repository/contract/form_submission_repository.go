package contract

import (
	"time"

	"site-gallery-be/internal/entity"

	"github.com/google/uuid"
)

type FormSubmissionRepository interface {
	Save(submission *entity.FormSubmission, ttl time.Duration)
	Get(id uuid.UUID) (*entity.FormSubmission, bool)
}
