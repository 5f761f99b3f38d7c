package handlers

import (
	"net/http"
	"strings"

	"livestock-service/internal/models"
	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	auth        *AuthMiddleware
}

func NewAuthHandler(authService *services.AuthService, auth *AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auth:        auth,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", h.StaffLogin)
		authGroup.POST("/line", h.LineLogin)
		authGroup.POST("/register", h.RegisterStaff)
		authGroup.POST("/logout", h.auth.RequireSession(), h.Logout)
	}
}

func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var req models.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	if result := models.ValidateCreateStaff(&req); !result.Valid {
		c.JSON(http.StatusBadRequest, utils.CreateValidationErrorResponse("ข้อมูลไม่ถูกต้อง", result.Issues))
		return
	}

	staff, err := h.authService.RegisterStaff(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponseWithMessage(staff, "สร้างบัญชีเจ้าหน้าที่สำเร็จ"))
}

func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req models.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "กรุณากรอกชื่อผู้ใช้และรหัสผ่าน"))
		return
	}

	login, err := h.authService.StaffLogin(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponseWithMessage(login, "เข้าสู่ระบบสำเร็จ"))
}

func (h *AuthHandler) LineLogin(c *gin.Context) {
	var req models.LineLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	login, err := h.authService.LineLogin(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponseWithMessage(login, "เข้าสู่ระบบสำเร็จ"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := h.authService.Logout(c.Request.Context(), currentUserID(c), token); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponseWithMessage(nil, "ออกจากระบบสำเร็จ"))
}
