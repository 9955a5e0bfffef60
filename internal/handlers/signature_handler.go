package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestCodeHandler regenerates the caller's signature code and emails
// it again.
func RequestCodeHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	sent, err := ctrl.IssueCode(id, user)
	if err != nil {
		abortWith(c, err)
		return
	}
	if !sent {
		c.JSON(http.StatusConflict, gin.H{"error": "Contract already signed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signature code sent"})
}
