package models

import (
	"time"

	"github.com/google/uuid"
)

// PartyRole is what a participant is on the contract.
type PartyRole string

const (
	RoleParty    PartyRole = "party"
	RoleWitness  PartyRole = "witness"
	RoleApprover PartyRole = "approver"
)

// InvitationStatus tracks a party's answer to their invitation.
// pending may move to accepted or declined; declined is terminal.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// ContractParty binds a participant to a contract. The participant is
// either a registered user (UserID set) or a manually entered name/email
// pair; DisplayName and DisplayEmail are the only places that resolve
// between the two.
type ContractParty struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ContractID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_contract_party_user" json:"contractId"`
	UserID     *uint     `gorm:"column:user_id;uniqueIndex:uq_contract_party_user"  json:"userId,omitempty"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Manual identity, used only when UserID is nil.
	Name  string `gorm:"column:name;size:200"  json:"name,omitempty"`
	Email string `gorm:"column:email;size:254" json:"email,omitempty"`

	Role             PartyRole        `gorm:"column:role;size:10;default:party"                 json:"role"`
	InvitationStatus InvitationStatus `gorm:"column:invitation_status;size:20;default:pending"  json:"invitationStatus"`
	DeclineReason    string           `gorm:"column:decline_reason;type:text"                   json:"declineReason,omitempty"`

	InvitedAt  time.Time  `gorm:"column:invited_at;autoCreateTime" json:"invitedAt"`
	JoinedAt   *time.Time `gorm:"column:joined_at"                 json:"joinedAt,omitempty"`
	DeclinedAt *time.Time `gorm:"column:declined_at"               json:"declinedAt,omitempty"`
}

func (ContractParty) TableName() string { return "contract_parties" }

// IsRegistered reports whether the party is backed by a user account.
func (p *ContractParty) IsRegistered() bool { return p.UserID != nil }

// DisplayName resolves the shown name: user account first, then the
// manual entry, then a literal placeholder.
func (p *ContractParty) DisplayName() string {
	if p.User != nil {
		return p.User.FullName()
	}
	if p.Name != "" {
		return p.Name
	}
	return "unknown"
}

// DisplayEmail resolves the contact address the same way as DisplayName.
func (p *ContractParty) DisplayEmail() string {
	if p.User != nil {
		return p.User.Email
	}
	return p.Email
}
