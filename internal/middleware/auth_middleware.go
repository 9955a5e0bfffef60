package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// CachedUserData is the per-user payload kept in Redis so every
// authenticated request does not hit the database.
type CachedUserData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// AuthMiddleware validates the JWT from the auth cookie or the
// Authorization header and loads user data, Redis first, database second.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})

		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Invalid token claims")
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			handleAuthError(c, "Invalid user ID format in token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := fmt.Sprintf("user:%d:data", userID)
		if config.RDB != nil {
			cachedData, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cachedData), &userData) == nil {
					setContextAndProceed(c, &userData)
					return
				}
				slog.Warn("Failed to unmarshal cached user data", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Redis GET command failed", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := config.DB.First(&dbUser, userID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "User from token not found in DB")
			return
		}

		userData := CachedUserData{
			UserID:   dbUser.ID,
			Username: dbUser.Username,
			Email:    dbUser.Email,
			FullName: dbUser.FullName(),
			IsAdmin:  dbUser.IsAdmin,
		}

		if config.RDB != nil {
			jsonData, err := json.Marshal(userData)
			if err != nil {
				slog.Error("Failed to marshal user data for caching", "error", err, "user_id", userID)
			} else if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, 10*time.Minute).Err(); err != nil {
				slog.Error("Failed to SET user data to cache", "error", err, "user_id", userID)
			}
		}

		setContextAndProceed(c, &userData)
	}
}

func setContextAndProceed(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("username", userData.Username)
	c.Set("is_admin", userData.IsAdmin)
	c.Next()
}

// AdminMiddleware gates the dashboard and export endpoints.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// InvalidateUserCache drops the cached payload after profile updates.
func InvalidateUserCache(userID uint) {
	if config.RDB == nil {
		return
	}
	if err := config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", userID)).Err(); err != nil {
		slog.Error("Failed to invalidate user cache", "error", err, "user_id", userID)
	}
}

func handleAuthError(c *gin.Context, message string) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	}
	c.Abort()
}
