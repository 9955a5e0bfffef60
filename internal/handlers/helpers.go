package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/internal/lifecycle"
	"github.com/doganiot/mywordismyword/internal/notify"
	"github.com/doganiot/mywordismyword/models"
)

var (
	ctrl     *lifecycle.Controller
	notifier *notify.Emitter
)

// Init wires the handlers to the lifecycle controller and the
// notification emitter. Called once from route setup.
func Init(c *lifecycle.Controller, n *notify.Emitter) {
	ctrl = c
	notifier = n
}

// currentUser loads the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return nil, false
	}
	userID, _ := userIDVal.(uint)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// contractID parses the :id route parameter.
func contractID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract id"})
		return uuid.Nil, false
	}
	return id, true
}

// statusFor maps controller errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrNotOwner),
		errors.Is(err, lifecycle.ErrNotParty),
		errors.Is(err, lifecycle.ErrNoAccess),
		errors.Is(err, notify.ErrNotRecipient):
		return http.StatusForbidden
	case errors.Is(err, lifecycle.ErrIntegrityViolation),
		errors.Is(err, lifecycle.ErrContractClosed),
		errors.Is(err, lifecycle.ErrNotEditable),
		errors.Is(err, lifecycle.ErrPartyNotRemovable),
		errors.Is(err, lifecycle.ErrNotDeclined),
		errors.Is(err, lifecycle.ErrCreatorCannotDecline):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrDuplicateParty):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrInvalidSignatureCode),
		errors.Is(err, lifecycle.ErrInvalidDuration),
		errors.Is(err, lifecycle.ErrPastStartDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
