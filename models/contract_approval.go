package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractApproval is the legacy approval ledger: one row per
// (contract, user). Earlier revisions gated completion on an approval
// count; the current lifecycle records approvals but completes on
// signatures alone.
type ContractApproval struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ContractID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_contract_approval_user" json:"contractId"`
	UserID     uint      `gorm:"column:user_id;uniqueIndex:uq_contract_approval_user"  json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	IsApproved bool       `gorm:"column:is_approved"        json:"isApproved"`
	ApprovedAt *time.Time `gorm:"column:approved_at"        json:"approvedAt,omitempty"`
	Note       string     `gorm:"column:note;type:text"     json:"note,omitempty"`
	IPAddress  string     `gorm:"column:ip_address;size:45" json:"ipAddress,omitempty"`
}

func (ContractApproval) TableName() string { return "contract_approvals" }
