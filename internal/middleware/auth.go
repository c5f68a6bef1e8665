package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/pkg/jwt"
	"github.com/safespace/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
)

// Auth returns a middleware that enforces JWT authentication. Suspended and
// deactivated accounts are rejected even with a valid token.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := validateRequest(db, c)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyRole, user.Role)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := validateRequest(db, c); err == nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyRole, user.Role)
		}
		c.Next()
	}
}

// RequireModerator blocks requests from accounts below moderator role. Must
// run after Auth.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if role != models.RoleModerator && role != models.RoleAdmin {
			response.ForbiddenMsg(c, "moderator access required")
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks requests from non-admin accounts. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleAdmin {
			response.ForbiddenMsg(c, "admin access required")
			return
		}
		c.Next()
	}
}

func validateRequest(db *gorm.DB, c *gin.Context) (*models.UserModel, error) {
	token := extractToken(c)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	if err := db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}
	if user.SuspendedAt != nil {
		return nil, errors.New("account is suspended")
	}
	return &user, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentRole extracts the authenticated user's role from context.
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get(ContextKeyRole)
	role, _ := v.(string)
	return role
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
