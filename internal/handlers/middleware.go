package handlers

import (
	"net/http"
	"strings"

	"livestock-service/internal/services"
	"livestock-service/utils"

	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "userID"

type AuthMiddleware struct {
	jwtService     *services.JWTService
	sessionService *services.SessionService
}

func NewAuthMiddleware(jwtService *services.JWTService, sessionService *services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		sessionService: sessionService,
	}
}

// RequireSession validates the bearer token and checks it belongs to a live
// session. A revoked session rejects the request even if the JWT itself has
// not expired yet.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", "กรุณาเข้าสู่ระบบ"))
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := m.jwtService.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", "กรุณาเข้าสู่ระบบ"))
			return
		}

		sessions, err := m.sessionService.GetUserSessions(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", "กรุณาเข้าสู่ระบบ"))
			return
		}
		active := false
		for _, s := range sessions {
			if s.TokenHash == token && s.IsActive {
				active = true
				break
			}
		}
		if !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", "กรุณาเข้าสู่ระบบ"))
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}
