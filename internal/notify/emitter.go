package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/models"
)

// ErrNotRecipient is returned when a user touches someone else's
// notification.
var ErrNotRecipient = errors.New("notification does not belong to this user")

// Event is one lifecycle occurrence to be recorded as a notification.
type Event struct {
	Type      models.NotificationType
	Recipient uint
	Sender    *uint
	Contract  *models.Contract
	Title     string
	Message   string
	Priority  models.NotificationPriority
	Metadata  map[string]any
}

// Emitter turns lifecycle events into notification rows. It creates
// exactly one row per event: no batching, no deduplication, no retries.
type Emitter struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewEmitter(db *gorm.DB, rdb *redis.Client) *Emitter {
	return &Emitter{db: db, rdb: rdb}
}

// WithTx returns an Emitter writing through the given transaction.
func (e *Emitter) WithTx(tx *gorm.DB) *Emitter {
	return &Emitter{db: tx, rdb: e.rdb}
}

// Emit persists the event. The caller decides whether a failed emit
// matters; lifecycle code treats notifications as part of the transition.
func (e *Emitter) Emit(ev Event) (*models.Notification, error) {
	n := models.Notification{
		RecipientID: ev.Recipient,
		SenderID:    ev.Sender,
		Type:        ev.Type,
		Priority:    ev.Priority,
		Title:       ev.Title,
		Message:     ev.Message,
	}
	if n.Priority == "" {
		n.Priority = models.PriorityNormal
	}
	if ev.Contract != nil {
		id := ev.Contract.ID
		n.ContractID = &id
	}
	if len(ev.Metadata) > 0 {
		raw, err := json.Marshal(ev.Metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal notification metadata: %w", err)
		}
		n.Metadata = raw
	}

	if err := e.db.Create(&n).Error; err != nil {
		return nil, err
	}
	e.invalidateUnreadCount(ev.Recipient)
	return &n, nil
}

// MarkRead flips a notification to read. The transition is monotonic:
// marking an already-read notification again leaves ReadAt untouched.
func (e *Emitter) MarkRead(id uuid.UUID, userID uint) error {
	var n models.Notification
	if err := e.db.First(&n, "id = ?", id).Error; err != nil {
		return err
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	if n.IsRead {
		return nil
	}
	now := time.Now()
	if err := e.db.Model(&n).Updates(map[string]any{
		"is_read": true,
		"read_at": now,
	}).Error; err != nil {
		return err
	}
	e.invalidateUnreadCount(userID)
	return nil
}

// MarkAllRead marks every unread notification of the user, returning how
// many were flipped.
func (e *Emitter) MarkAllRead(userID uint) (int64, error) {
	res := e.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return 0, res.Error
	}
	e.invalidateUnreadCount(userID)
	return res.RowsAffected, nil
}

// MarkSent stamps the delivery flag after the email adapter reported
// success. Best effort, like delivery itself.
func (e *Emitter) MarkSent(id uuid.UUID) {
	if err := e.db.Model(&models.Notification{}).
		Where("id = ? AND is_sent = ?", id, false).
		Updates(map[string]any{"is_sent": true, "sent_at": time.Now()}).Error; err != nil {
		slog.Warn("failed to stamp notification as sent", "notification_id", id, "error", err)
	}
}

// Delete removes a notification from the recipient's list.
func (e *Emitter) Delete(id uuid.UUID, userID uint) error {
	var n models.Notification
	if err := e.db.First(&n, "id = ?", id).Error; err != nil {
		return err
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	if err := e.db.Delete(&n).Error; err != nil {
		return err
	}
	e.invalidateUnreadCount(userID)
	return nil
}

// UnreadCount returns the user's unread total, cached briefly in Redis
// because the navbar polls it.
func (e *Emitter) UnreadCount(userID uint) (int64, error) {
	key := unreadCountKey(userID)
	if e.rdb != nil {
		if cached, err := e.rdb.Get(config.Ctx, key).Int64(); err == nil {
			return cached, nil
		} else if err != redis.Nil {
			slog.Warn("redis unread-count lookup failed", "error", err, "user_id", userID)
		}
	}

	var count int64
	if err := e.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}

	if e.rdb != nil {
		if err := e.rdb.Set(config.Ctx, key, count, time.Minute).Err(); err != nil {
			slog.Warn("redis unread-count store failed", "error", err, "user_id", userID)
		}
	}
	return count, nil
}

// Recent returns the newest notifications for the polling endpoint.
func (e *Emitter) Recent(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []models.Notification
	err := e.db.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// List returns the user's notifications, unread first.
func (e *Emitter) List(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := e.db.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("is_read ASC, created_at DESC").
		Find(&out).Error
	return out, err
}

func (e *Emitter) invalidateUnreadCount(userID uint) {
	if e.rdb == nil {
		return
	}
	if err := e.rdb.Del(config.Ctx, unreadCountKey(userID)).Err(); err != nil {
		slog.Warn("redis unread-count invalidation failed", "error", err, "user_id", userID)
	}
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}
