package memory

import (
	"time"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type FormSubmissionRepository struct {
	cache *cache.Cache
}

func NewFormSubmissionRepository() contract.FormSubmissionRepository {
	// Entries carry their own TTL; purge expired items every minute
	return &FormSubmissionRepository{
		cache: cache.New(cache.NoExpiration, time.Minute),
	}
}

// Save stores a copy; ttl <= 0 keeps the entry until overwritten.
func (r *FormSubmissionRepository) Save(submission *entity.FormSubmission, ttl time.Duration) {
	cp := *submission
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	r.cache.Set(submission.Id.String(), &cp, ttl)
}

func (r *FormSubmissionRepository) Get(id uuid.UUID) (*entity.FormSubmission, bool) {
	if x, found := r.cache.Get(id.String()); found {
		cp := *x.(*entity.FormSubmission)
		return &cp, true
	}
	return nil, false
}
