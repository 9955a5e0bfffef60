package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractComment is a remark on a contract by a user with access,
// ordered by creation time. IsPublic=false hides it from non-parties.
type ContractComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ContractID uuid.UUID `gorm:"type:uuid;index" json:"contractId"`
	UserID     uint      `gorm:"column:user_id"  json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Content  string `gorm:"column:content;type:text"         json:"content"`
	IsPublic bool   `gorm:"column:is_public;default:true"    json:"isPublic"`
}

func (ContractComment) TableName() string { return "contract_comments" }
