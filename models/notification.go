package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType is the closed set of lifecycle events that produce a
// notification.
type NotificationType string

const (
	NotifyContractInvitation NotificationType = "contract_invitation"
	NotifyContractSigned     NotificationType = "contract_signed"
	NotifyContractDeclined   NotificationType = "contract_declined"
	NotifyContractCompleted  NotificationType = "contract_completed"
	NotifyPartyAdded         NotificationType = "party_added"
	NotifyPartyRemoved       NotificationType = "party_removed"
	NotifyCommentAdded       NotificationType = "comment_added"
	NotifySystem             NotificationType = "system"
)

// NotificationPriority orders notifications in the UI.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is created by lifecycle mutations and only ever mutated to
// flip its read/sent flags.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	RecipientID uint  `gorm:"column:recipient_id;index:idx_notifications_recipient_read" json:"recipientId"`
	Recipient   *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`

	SenderID *uint `gorm:"column:sender_id" json:"senderId,omitempty"`
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	ContractID *uuid.UUID `gorm:"type:uuid;index" json:"contractId,omitempty"`
	Contract   *Contract  `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"contract,omitempty"`

	Type     NotificationType     `gorm:"column:notification_type;size:20;index"  json:"type"`
	Priority NotificationPriority `gorm:"column:priority;size:10;default:normal"  json:"priority"`
	Title    string               `gorm:"column:title;size:200"                   json:"title"`
	Message  string               `gorm:"column:message;type:text"                json:"message"`

	IsRead bool       `gorm:"column:is_read;index:idx_notifications_recipient_read" json:"isRead"`
	ReadAt *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`
	IsSent bool       `gorm:"column:is_sent" json:"isSent"`
	SentAt *time.Time `gorm:"column:sent_at" json:"sentAt,omitempty"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
