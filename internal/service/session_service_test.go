package service

import (
	"context"
	"testing"

	"site-gallery-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestSessionService_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		adminId string
		userId  string
		want    entity.SessionState
	}{
		{"no user", "admin-1", "", entity.SessionAnonymous},
		{"admin", "admin-1", "admin-1", entity.SessionAdmin},
		{"other user", "admin-1", "user-2", entity.SessionViewer},
		{"admin not configured", "", "admin-1", entity.SessionViewer},
		{"admin not configured, no user", "", "", entity.SessionAnonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSessionService(tt.adminId)
			got := svc.Resolve(context.Background(), tt.userId)
			assert.Equal(t, tt.want, got.State)
			assert.Equal(t, tt.want == entity.SessionAdmin, got.IsAdmin())
			assert.Equal(t, tt.userId, got.UserId)
		})
	}
}

func TestSessionService_Describe(t *testing.T) {
	svc := NewSessionService("admin-1")

	res := svc.Describe(context.Background(), "admin-1")
	assert.Equal(t, "admin", res.State)
	assert.True(t, res.Admin)
	assert.Equal(t, "admin-1", res.UserId)

	res = svc.Describe(context.Background(), "")
	assert.Equal(t, "anonymous", res.State)
	assert.False(t, res.Admin)
}
