package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/models"
)

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddCommentHandler posts a comment on a contract the caller can view.
func AddCommentHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := ctrl.Comment(id, user, req.Content)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListCommentsHandler returns a contract's comments, oldest first.
func ListCommentsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	contract, err := ctrl.Get(id)
	if err != nil {
		abortWith(c, err)
		return
	}
	if !ctrl.CanView(contract, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this contract"})
		return
	}

	var comments []models.ContractComment
	if err := config.DB.Preload("User").
		Where("contract_id = ?", contract.ID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
