package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"livestock-service/internal/models"
	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type AnimalHandler struct {
	animalService services.IAnimalService
	exportService *services.ExportService
	auth          *AuthMiddleware
}

func NewAnimalHandler(animalService services.IAnimalService, exportService *services.ExportService, auth *AuthMiddleware) *AnimalHandler {
	return &AnimalHandler{
		animalService: animalService,
		exportService: exportService,
		auth:          auth,
	}
}

func (h *AnimalHandler) RegisterRoutes(router *gin.Engine) {
	animals := router.Group("/api/animals")
	animals.Use(h.auth.RequireSession())
	{
		animals.GET("", h.ListAnimals)
		animals.GET("/export", h.ExportHerdRegister)
		animals.GET("/:id", h.GetAnimal)
		animals.POST("", h.CreateAnimal)
		animals.PUT("/:id", h.UpdateAnimal)
		animals.POST("/:id/photo", h.UploadPhoto)
	}
}

// ListAnimals returns one page of the caller's herd. The payload is the page
// shape itself rather than the success envelope; the mobile list screen binds
// to it directly.
func (h *AnimalHandler) ListAnimals(c *gin.Context) {
	query := services.AnimalListQuery{
		Cursor: c.Query("cursor"),
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
	}

	result, err := h.animalService.List(c.Request.Context(), currentUserID(c), query)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รหัสสัตว์ไม่ถูกต้อง"))
		return
	}

	animal, err := h.animalService.Get(c.Request.Context(), currentUserID(c), animalID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(animal))
}

func (h *AnimalHandler) CreateAnimal(c *gin.Context) {
	var req models.CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	if result := models.ValidateCreateAnimal(&req); !result.Valid {
		c.JSON(http.StatusBadRequest, utils.CreateValidationErrorResponse("ข้อมูลไม่ถูกต้อง", result.Issues))
		return
	}

	animal, err := h.animalService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponseWithMessage(animal, "เพิ่มข้อมูลสัตว์สำเร็จ"))
}

func (h *AnimalHandler) UpdateAnimal(c *gin.Context) {
	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รหัสสัตว์ไม่ถูกต้อง"))
		return
	}

	var req models.UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รูปแบบข้อมูลไม่ถูกต้อง"))
		return
	}

	if result := models.ValidateUpdateAnimal(&req); !result.Valid {
		c.JSON(http.StatusBadRequest, utils.CreateValidationErrorResponse("ข้อมูลไม่ถูกต้อง", result.Issues))
		return
	}

	animal, err := h.animalService.Update(c.Request.Context(), currentUserID(c), animalID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponseWithMessage(animal, "บันทึกข้อมูลสำเร็จ"))
}

func (h *AnimalHandler) UploadPhoto(c *gin.Context) {
	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รหัสสัตว์ไม่ถูกต้อง"))
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "กรุณาแนบรูปภาพ"))
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "ขนาดรูปภาพต้องไม่เกิน 10MB"))
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "รองรับเฉพาะไฟล์ jpg, png และ webp"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.animalService.AttachPhoto(c.Request.Context(), currentUserID(c), animalID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponseWithMessage(gin.H{"imageUrl": url}, "อัปโหลดรูปภาพสำเร็จ"))
}

// ExportHerdRegister streams the herd register workbook as an attachment.
func (h *AnimalHandler) ExportHerdRegister(c *gin.Context) {
	content, filename, err := h.exportService.HerdRegister(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
