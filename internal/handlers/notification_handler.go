package handlers

import (
	"net/http"

	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.INotificationService
	auth                *AuthMiddleware
}

func NewNotificationHandler(notificationService services.INotificationService, auth *AuthMiddleware) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		auth:                auth,
	}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.Engine) {
	notifications := router.Group("/api/notifications")
	notifications.Use(h.auth.RequireSession())
	{
		notifications.GET("/badge", h.GetBadge)
	}
}

// GetBadge returns the actionable-activity counters shown on the bell icon.
// refresh=true skips the short cache for pull-to-refresh.
func (h *NotificationHandler) GetBadge(c *gin.Context) {
	bypassCache := c.Query("refresh") == "true"

	summary, err := h.notificationService.Badge(c.Request.Context(), currentUserID(c), bypassCache)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(summary))
}
