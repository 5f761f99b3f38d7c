package handlers

import (
	"context"
	"net/http"
	"testing"

	"livestock-service/internal/models"
	"livestock-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubNotificationService struct {
	summary    *models.BadgeSummary
	lastBypass bool
}

func (s *stubNotificationService) Badge(ctx context.Context, userID string, bypassCache bool) (*models.BadgeSummary, error) {
	s.lastBypass = bypassCache
	return s.summary, nil
}

func newBadgeRouter(t *testing.T, stub *stubNotificationService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := services.NewJWTService("test-secret")
	sessionService := services.NewSessionService(newMemSessionRepo())
	token, err := jwtService.GenerateNewToken("user-1", "")
	assert.NoError(t, err)
	_, err = sessionService.CreateSession(context.Background(), "user-1", token, nil, nil)
	assert.NoError(t, err)

	handler := NewNotificationHandler(stub, NewAuthMiddleware(jwtService, sessionService))
	router := gin.New()
	handler.RegisterRoutes(router)
	return router, token
}

func TestGetBadge_Envelope(t *testing.T) {
	stub := &stubNotificationService{
		summary: &models.BadgeSummary{
			BadgeCount: 5,
			Breakdown:  models.BadgeBreakdown{Pending: 3, Overdue: 2},
			FarmCounts: []models.FarmBadgeCount{},
		},
	}
	router, token := newBadgeRouter(t, stub)

	w := doJSON(router, http.MethodGet, "/api/notifications/badge", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"badgeCount":5`)
	assert.Contains(t, w.Body.String(), `"pending":3`)
	assert.Contains(t, w.Body.String(), `"overdue":2`)
	assert.False(t, stub.lastBypass, "plain GET uses the cache")
}

func TestGetBadge_RefreshBypassesCache(t *testing.T) {
	stub := &stubNotificationService{summary: &models.BadgeSummary{}}
	router, token := newBadgeRouter(t, stub)

	w := doJSON(router, http.MethodGet, "/api/notifications/badge?refresh=true", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.lastBypass)
}
