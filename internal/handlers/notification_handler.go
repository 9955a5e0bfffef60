package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func notificationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return uuid.Nil, false
	}
	return id, true
}

// ListNotificationsHandler returns the caller's notifications, unread
// first.
func ListNotificationsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	items, err := notifier.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// RecentNotificationsHandler returns the latest few for the dropdown.
func RecentNotificationsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	items, err := notifier.Recent(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// UnreadCountHandler returns the badge counter.
func UnreadCountHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	count, err := notifier.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationReadHandler marks one notification read.
func MarkNotificationReadHandler(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := notificationID(c)
	if !ok {
		return
	}

	if err := notifier.MarkRead(id, userID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsReadHandler marks everything read at once.
func MarkAllNotificationsReadHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	updated, err := notifier.MarkAllRead(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteNotificationHandler removes one of the caller's notifications.
func DeleteNotificationHandler(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := notificationID(c)
	if !ok {
		return
	}

	if err := notifier.Delete(id, userID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
