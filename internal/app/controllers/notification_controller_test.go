package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
)

type stubNotificationService struct {
	unread int64
}

func (s *stubNotificationService) GetNotifications(_ context.Context, _ int64, _ bool, _, _ int) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}

func (s *stubNotificationService) GetUnreadCount(_ context.Context, _ int64) (int64, error) {
	return s.unread, nil
}

func (s *stubNotificationService) MarkRead(_ context.Context, _, _ int64) error { return nil }

func (s *stubNotificationService) MarkAllRead(_ context.Context, _ int64) error { return nil }

func TestGetUnreadNotificationCountPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewNotificationController(&stubNotificationService{unread: 4})
	router := gin.New()
	router.GET("/notifications/unread-count", func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, int64(7))
		controller.GetUnreadCount(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                    `json:"success"`
		Data    dto.UnreadCountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(4), body.Data.UnreadCount)
}
