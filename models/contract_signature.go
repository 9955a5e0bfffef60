package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractSignature is one row per (contract, party). The signature code
// is delivered out of band; IsSigned flips to true exactly once, when the
// party submits the matching code, and never reverses.
type ContractSignature struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ContractID uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:uq_contract_signature_party" json:"contractId"`
	PartyID    uint           `gorm:"column:party_id;uniqueIndex:uq_contract_signature_party" json:"partyId"`
	Party      *ContractParty `gorm:"foreignKey:PartyID;constraint:OnDelete:CASCADE" json:"party,omitempty"`

	UserID *uint `gorm:"column:user_id;index" json:"userId,omitempty"`
	User   *User `gorm:"foreignKey:UserID"    json:"user,omitempty"`

	SignatureCode string     `gorm:"column:signature_code;size:12" json:"-"`
	IsSigned      bool       `gorm:"column:is_signed"              json:"isSigned"`
	SignedAt      *time.Time `gorm:"column:signed_at"              json:"signedAt,omitempty"`
	IPAddress     string     `gorm:"column:ip_address;size:45"     json:"ipAddress,omitempty"`
}

func (ContractSignature) TableName() string { return "contract_signatures" }
