package handlers

import (
	"net/http"

	"livestock-service/internal/models"
	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
)

type FarmHandler struct {
	farmService services.IFarmService
	auth        *AuthMiddleware
}

func NewFarmHandler(farmService services.IFarmService, auth *AuthMiddleware) *FarmHandler {
	return &FarmHandler{
		farmService: farmService,
		auth:        auth,
	}
}

func (h *FarmHandler) RegisterRoutes(router *gin.Engine) {
	farm := router.Group("/api/farm")
	farm.Use(h.auth.RequireSession())
	{
		farm.GET("", h.GetFarm)
		farm.POST("", h.CreateFarm)
	}
}

// GetFarm returns the caller's farm, provisioning the default one on first
// visit so the app never sees an empty profile.
func (h *FarmHandler) GetFarm(c *gin.Context) {
	farm, err := h.farmService.GetOrCreateFarm(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(farm))
}

func (h *FarmHandler) CreateFarm(c *gin.Context) {
	var req models.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	if result := models.ValidateCreateFarm(&req); !result.Valid {
		c.JSON(http.StatusBadRequest, utils.CreateValidationErrorResponse("ข้อมูลไม่ถูกต้อง", result.Issues))
		return
	}

	farm, err := h.farmService.CreateFarm(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponseWithMessage(farm, "สร้างฟาร์มสำเร็จ"))
}
