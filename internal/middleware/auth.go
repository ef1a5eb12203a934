package middleware

import (
	"context"
	"net/http"
	"strings"

	"ecommerce-api/internal/user/model"
	"ecommerce-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	UsernameKey    = "username"
	CurrentUserKey = "currentUser"
)

// UserFinder resolves a token subject to a stored user.
type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// AuthMiddleware validates the bearer token and resolves its subject against
// the user store, so a token for a deleted user is rejected. Every failure
// mode gets the same generic 401.
func AuthMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		claims, err := utils.ValidateToken(parts[1], secret)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.GetUserByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(UsernameKey, user.Username)
		c.Set(CurrentUserKey, user)

		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

func unauthorized(c *gin.Context) {
	utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
	c.Abort()
}
