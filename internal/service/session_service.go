package service

import (
	"context"

	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/entity"
)

type ISessionService interface {
	Resolve(ctx context.Context, userId string) entity.Session
	Describe(ctx context.Context, userId string) *dto.SessionResponse
}

type sessionService struct {
	adminUserId string
}

// NewSessionService derives roles from the authenticated user id. Only
// adminUserId may manage galleries; an empty adminUserId disables admin mode.
func NewSessionService(adminUserId string) ISessionService {
	return &sessionService{adminUserId: adminUserId}
}

// Resolve never fails: a missing or unverifiable token already arrives here
// as an empty id and becomes an anonymous session.
func (s *sessionService) Resolve(ctx context.Context, userId string) entity.Session {
	switch {
	case userId == "":
		return entity.Session{State: entity.SessionAnonymous}
	case s.adminUserId != "" && userId == s.adminUserId:
		return entity.Session{State: entity.SessionAdmin, UserId: userId}
	default:
		return entity.Session{State: entity.SessionViewer, UserId: userId}
	}
}

func (s *sessionService) Describe(ctx context.Context, userId string) *dto.SessionResponse {
	session := s.Resolve(ctx, userId)
	return &dto.SessionResponse{
		State:  string(session.State),
		UserId: session.UserId,
		Admin:  session.IsAdmin(),
	}
}
