package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"livestock-service/internal/repository"
	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
)

// RespondError maps a service error to its HTTP status and stable envelope
// code. Codes are what tests and clients key off; messages are the localized
// strings shown in the UI. Unrecognized errors are logged and collapsed to a
// generic 500 so internals never leak.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, utils.CreateErrorResponse("FORBIDDEN", "ไม่มีสิทธิ์เข้าถึงข้อมูลนี้"))
	case errors.Is(err, services.ErrAnimalNotFound):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse("ANIMAL_NOT_FOUND", "ไม่พบข้อมูลสัตว์"))
	case errors.Is(err, services.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse("ACTIVITY_NOT_FOUND", "ไม่พบกิจกรรม"))
	case errors.Is(err, services.ErrFarmNotFound):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse("FARM_NOT_FOUND", "ไม่พบฟาร์ม"))
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"))
	case errors.Is(err, services.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "ตำแหน่งหน้าที่ระบุไม่ถูกต้อง"))
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_STATUS_TRANSITION", "ไม่สามารถเปลี่ยนสถานะกิจกรรมนี้ได้"))
	case errors.Is(err, repository.ErrDuplicateTag):
		c.JSON(http.StatusConflict, utils.CreateErrorResponse("DUPLICATE_TAG", "หมายเลขแท็กนี้มีอยู่แล้วในฟาร์ม"))
	case errors.Is(err, repository.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, utils.CreateErrorResponse("DUPLICATE_USERNAME", "ชื่อผู้ใช้นี้ถูกใช้งานแล้ว"))
	case errors.Is(err, repository.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REFERENCE", "ข้อมูลอ้างอิงไม่ถูกต้อง"))
	default:
		slog.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse("INTERNAL_ERROR", "เกิดข้อผิดพลาดภายในระบบ"))
	}
}
