package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/models"
)

type signupRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupHandler registers a new account with an empty profile.
func SignupHandler(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Profile:      &models.UserProfile{},
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// New accounts start on the free plan when it is seeded.
	var freePlan models.SubscriptionPlan
	if err := config.DB.Where("plan_type = ? AND is_active = ?", "free", true).First(&freePlan).Error; err == nil {
		config.DB.Create(&models.UserSubscription{
			UserID:    user.ID,
			PlanID:    freePlan.ID,
			StartedAt: time.Now(),
			IsActive:  true,
		})
	}

	issueToken(c, &user)
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// LoginHandler accepts a username or an email as the login.
func LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	login := strings.ToLower(strings.TrimSpace(req.Login))
	var user models.User
	err := config.DB.Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	issueToken(c, &user)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "is_admin": user.IsAdmin})
}

// LogoutHandler clears the auth cookie.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func issueToken(c *gin.Context, user *models.User) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.JwtKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}
	c.SetCookie("auth_token", signed, int((72 * time.Hour).Seconds()), "/", "", false, true)
	c.Header("Authorization", "Bearer "+signed)
}
