package handlers

import (
	"net/http"

	"livestock-service/internal/models"
	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activityService services.IActivityService
	auth            *AuthMiddleware
}

func NewActivityHandler(activityService services.IActivityService, auth *AuthMiddleware) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		auth:            auth,
	}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.Engine) {
	activities := router.Group("/api/activities")
	activities.Use(h.auth.RequireSession())
	{
		activities.GET("", h.ListActivities)
		activities.POST("", h.CreateActivity)
		activities.PUT("/:id", h.UpdateActivityStatus)
	}
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	page, err := utils.GetQueryParamAsInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "หมายเลขหน้าไม่ถูกต้อง"))
		return
	}
	limit, err := utils.GetQueryParamAsInt(c, "limit", 20)
	if err != nil || limit > 100 {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "ขนาดหน้าไม่ถูกต้อง"))
		return
	}

	query := services.ActivityListQuery{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
	}
	if raw := c.Query("animalId"); raw != "" {
		animalID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รหัสสัตว์ไม่ถูกต้อง"))
			return
		}
		query.AnimalID = &animalID
	}

	result, err := h.activityService.List(c.Request.Context(), currentUserID(c), query)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}

func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	if result := models.ValidateCreateActivity(&req); !result.Valid {
		c.JSON(http.StatusBadRequest, utils.CreateValidationErrorResponse("ข้อมูลไม่ถูกต้อง", result.Issues))
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponseWithMessage(activity, "เพิ่มกิจกรรมสำเร็จ"))
}

func (h *ActivityHandler) UpdateActivityStatus(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รหัสกิจกรรมไม่ถูกต้อง"))
		return
	}

	var req models.UpdateActivityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	if result := models.ValidateUpdateActivityStatus(&req); !result.Valid {
		c.JSON(http.StatusBadRequest, utils.CreateValidationErrorResponse("ข้อมูลไม่ถูกต้อง", result.Issues))
		return
	}

	activity, err := h.activityService.UpdateStatus(c.Request.Context(), currentUserID(c), activityID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponseWithMessage(activity, "อัปเดตสถานะกิจกรรมสำเร็จ"))
}
