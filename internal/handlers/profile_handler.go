package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/internal/middleware"
	"github.com/doganiot/mywordismyword/models"
)

// GetProfileHandler returns the current user with profile and counters.
func GetProfileHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := config.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"full_name":  user.FullName(),
		"is_admin":   user.IsAdmin,
	}
	if p := user.Profile; p != nil {
		resp["profile"] = gin.H{
			"phone":               p.Phone,
			"address":             p.Address,
			"birth_date":          p.BirthDate,
			"age":                 p.Age(),
			"gender":              p.Gender,
			"email_notifications": p.EmailNotifications,
			"push_notifications":  p.PushNotifications,
			"contracts_created":   p.TotalContractsCreated,
			"contracts_signed":    p.TotalContractsSigned,
		}
	}
	c.JSON(http.StatusOK, resp)
}

type updateProfileRequest struct {
	FirstName          *string    `json:"first_name"`
	LastName           *string    `json:"last_name"`
	Phone              *string    `json:"phone"`
	Address            *string    `json:"address"`
	BirthDate          *time.Time `json:"birth_date"`
	Gender             *string    `json:"gender"`
	EmailNotifications *bool      `json:"email_notifications"`
	PushNotifications  *bool      `json:"push_notifications"`
	OldPassword        string     `json:"old_password"`
	NewPassword        string     `json:"new_password"`
}

// UpdateProfileHandler updates name, profile fields and optionally the
// password. Password change requires the old one.
func UpdateProfileHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := config.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if req.NewPassword != "" {
		if req.OldPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is required to change the password"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash new password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if user.Profile == nil {
		user.Profile = &models.UserProfile{UserID: user.ID}
	}
	if req.Phone != nil {
		user.Profile.Phone = req.Phone
	}
	if req.Address != nil {
		user.Profile.Address = req.Address
	}
	if req.BirthDate != nil {
		user.Profile.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		user.Profile.Gender = *req.Gender
	}
	if req.EmailNotifications != nil {
		user.Profile.EmailNotifications = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		user.Profile.PushNotifications = *req.PushNotifications
	}

	if err := config.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	middleware.InvalidateUserCache(user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
