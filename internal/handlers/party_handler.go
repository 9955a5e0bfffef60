package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/internal/lifecycle"
	"github.com/doganiot/mywordismyword/models"
)

type addPartyRequest struct {
	UserID *uint  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// AddPartyHandler invites a registered user or records a manual party.
func AddPartyHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req addPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == nil && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either user_id or email is required"})
		return
	}

	party, err := ctrl.Invite(id, user, lifecycle.InviteInput{
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Role:   models.PartyRole(req.Role),
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, party)
}

// RemovePartyHandler removes a party from a draft contract.
func RemovePartyHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}
	partyID, err := strconv.ParseUint(c.Param("partyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid party id"})
		return
	}

	if err := ctrl.RemoveParty(id, user, uint(partyID)); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Party removed"})
}

// SearchUsersHandler finds registered users by username or email
// fragment for the invite picker.
func SearchUsersHandler(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}

	q := c.Query("q")
	if len(q) < 2 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	var users []models.User
	if err := config.DB.
		Where("(username LIKE ? OR email LIKE ?) AND id <> ?", "%"+q+"%", "%"+q+"%", me.ID).
		Limit(10).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, u := range users {
		results = append(results, gin.H{
			"id":        u.ID,
			"username":  u.Username,
			"full_name": u.FullName(),
		})
	}
	c.JSON(http.StatusOK, results)
}
