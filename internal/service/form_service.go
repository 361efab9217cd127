package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/repository/contract"
	galleryEvents "site-gallery-be/pkg/gallery/events"

	"github.com/google/uuid"
)

// FormSubmitter is where a real booking or CRM backend would plug in.
type FormSubmitter interface {
	Submit(ctx context.Context, submission *entity.FormSubmission) (*entity.FormConfirmation, error)
}

// LogSubmitter records submissions in the log and always succeeds.
type LogSubmitter struct {
	logger logger.ILogger
}

func NewLogSubmitter(log logger.ILogger) *LogSubmitter {
	return &LogSubmitter{logger: log}
}

func (l *LogSubmitter) Submit(ctx context.Context, submission *entity.FormSubmission) (*entity.FormConfirmation, error) {
	l.logger.Info("FORMS", "Form submission received", map[string]interface{}{
		"submission_id": submission.Id.String(),
		"site":          submission.SiteSlug,
		"kind":          submission.Kind,
		"fields":        submission.Fields,
	})
	return &entity.FormConfirmation{
		Reference: strings.ToUpper(submission.Id.String()[:8]),
		Message:   "Thank you! We'll be in touch shortly.",
	}, nil
}

type IFormService interface {
	Submit(ctx context.Context, siteSlug, kind string, req interface{}) (*dto.SubmissionResponse, error)
	Status(ctx context.Context, id uuid.UUID) *dto.SubmissionResponse
	Wait()
}

type FormOptions struct {
	SubmitDelay time.Duration
	ResetAfter  time.Duration
}

const submitTimeout = 10 * time.Second

type formService struct {
	catalog   *catalog.Catalog
	repo      contract.FormSubmissionRepository
	submitter FormSubmitter
	events    galleryEvents.Publisher
	logger    logger.ILogger
	opts      FormOptions
	inflight  sync.WaitGroup
}

func NewFormService(
	cat *catalog.Catalog,
	repo contract.FormSubmissionRepository,
	submitter FormSubmitter,
	events galleryEvents.Publisher,
	log logger.ILogger,
	opts FormOptions,
) IFormService {
	return &formService{
		catalog:   cat,
		repo:      repo,
		submitter: submitter,
		events:    events,
		logger:    log,
		opts:      opts,
	}
}

// Submit accepts an already validated request and settles it in the
// background after the configured delay.
func (s *formService) Submit(ctx context.Context, siteSlug, kind string, req interface{}) (*dto.SubmissionResponse, error) {
	site, ok := s.catalog.Get(siteSlug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSiteNotFound, siteSlug)
	}
	if !site.AcceptsForm(kind) {
		return nil, fmt.Errorf("%w: %s", entity.ErrFormNotAccepted, kind)
	}

	fields, err := toFields(req)
	if err != nil {
		return nil, err
	}

	submission := &entity.FormSubmission{
		Id:          uuid.New(),
		SiteSlug:    site.Slug,
		Kind:        kind,
		Fields:      fields,
		Status:      entity.FormSubmitting,
		SubmittedAt: time.Now(),
	}
	s.repo.Save(submission, s.opts.SubmitDelay+s.opts.ResetAfter+submitTimeout)

	s.inflight.Add(1)
	go s.settle(*submission)

	return toSubmissionResponse(submission), nil
}

func (s *formService) settle(submission entity.FormSubmission) {
	defer s.inflight.Done()

	if s.opts.SubmitDelay > 0 {
		time.Sleep(s.opts.SubmitDelay)
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	confirmation, err := s.submitter.Submit(ctx, &submission)
	settledAt := time.Now()
	submission.SettledAt = &settledAt
	if err != nil {
		submission.Status = entity.FormError
		submission.Reason = err.Error()
		s.logger.Error("FORMS", "Form submission failed", map[string]interface{}{
			"submission_id": submission.Id.String(),
			"site":          submission.SiteSlug,
			"kind":          submission.Kind,
			"error":         err.Error(),
		})
	} else {
		submission.Status = entity.FormSuccess
		if confirmation != nil {
			submission.Reference = confirmation.Reference
		}
	}

	// Expiry is the reset to idle.
	s.repo.Save(&submission, s.opts.ResetAfter)

	if s.events != nil {
		s.events.PublishFormSubmitted(ctx, &submission)
	}
}

// Status reports a submission's lifecycle. Unknown ids read as idle since an
// expired entry and one that never existed are indistinguishable.
func (s *formService) Status(ctx context.Context, id uuid.UUID) *dto.SubmissionResponse {
	submission, ok := s.repo.Get(id)
	if !ok {
		return &dto.SubmissionResponse{Id: id, Status: string(entity.FormIdle)}
	}
	return toSubmissionResponse(submission)
}

// Wait blocks until background submissions have settled.
func (s *formService) Wait() {
	s.inflight.Wait()
}

func toFields(req interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedBody, err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedBody, err)
	}
	return fields, nil
}

func toSubmissionResponse(s *entity.FormSubmission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		Id:          s.Id,
		SiteSlug:    s.SiteSlug,
		Kind:        s.Kind,
		Status:      string(s.Status),
		Reason:      s.Reason,
		Reference:   s.Reference,
		SubmittedAt: s.SubmittedAt,
		SettledAt:   s.SettledAt,
	}
}
