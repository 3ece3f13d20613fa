package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the authenticated user is stored on the gin context.
const ContextUserKey = "currentUser"

// AuthMiddleware validates the JWT and puts the current user on the context.
func AuthMiddleware(jwtSecret string, users *repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) ?token=xxx, for downloads where headers cannot be set
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) cookie fallback
		if tokenStr == "" {
			if cookie, err := c.Cookie("mc_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to look up user")
			c.Abort()
			return
		}
		if user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentUserID returns the authenticated user's id, or "" when absent.
func CurrentUserID(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}
