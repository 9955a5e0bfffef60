package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContractStatus enumerates the lifecycle states of a contract.
type ContractStatus string

const (
	StatusDraft             ContractStatus = "draft"
	StatusPendingSignatures ContractStatus = "pending_signatures"
	StatusSigned            ContractStatus = "signed"
	StatusApproved          ContractStatus = "approved"
	StatusCompleted         ContractStatus = "completed"
	StatusCancelled         ContractStatus = "cancelled"
	StatusArchived          ContractStatus = "archived"
)

// ContractVisibility controls who may view a contract.
type ContractVisibility string

const (
	VisibilityPrivate ContractVisibility = "private"
	VisibilityPublic  ContractVisibility = "public"
)

// MaxDurationMonths caps a fixed-term contract at 100 years.
const MaxDurationMonths = 1200

// FirstContractNumber is the human-facing sequence start.
const FirstContractNumber = 1000

// Contract is the central entity: an agreement between parties that is
// drafted, signed with one-time codes and permanently locked once the
// required number of signatures is collected.
type Contract struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"                  json:"id"`
	ContractNumber int       `gorm:"column:contract_number;uniqueIndex"    json:"contractNumber"`

	Title   string `gorm:"column:title;size:200"  json:"title"`
	Content string `gorm:"column:content;type:text" json:"content"`

	TemplateID *uint             `gorm:"column:template_id" json:"templateId,omitempty"`
	Template   *ContractTemplate `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL" json:"template,omitempty"`

	CreatorID uint  `gorm:"column:creator_id;index" json:"creatorId"`
	Creator   *User `gorm:"foreignKey:CreatorID"    json:"creator,omitempty"`

	Status       ContractStatus     `gorm:"column:status;size:20;default:draft"        json:"status"`
	Visibility   ContractVisibility `gorm:"column:visibility;size:10;default:private"  json:"visibility"`
	ContractType string             `gorm:"column:contract_type;size:20"               json:"contractType"`

	IsSelfContract bool `gorm:"column:is_self_contract"          json:"isSelfContract"`
	IsEditable     bool `gorm:"column:is_editable;default:true"  json:"isEditable"`
	SystemApproved bool `gorm:"column:system_approved"           json:"systemApproved"`

	StartDate      time.Time `gorm:"column:start_date"       json:"startDate"`
	DurationMonths *int      `gorm:"column:duration_months"  json:"durationMonths,omitempty"`
	IsIndefinite   bool      `gorm:"column:is_indefinite"    json:"isIndefinite"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`

	Parties    []ContractParty     `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"parties,omitempty"`
	Signatures []ContractSignature `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"signatures,omitempty"`
	Approvals  []ContractApproval  `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"approvals,omitempty"`
	Comments   []ContractComment   `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TotalParties counts the parties loaded on the contract.
func (c *Contract) TotalParties() int { return len(c.Parties) }

// SignedParties counts verified signatures.
func (c *Contract) SignedParties() int {
	n := 0
	for i := range c.Signatures {
		if c.Signatures[i].IsSigned {
			n++
		}
	}
	return n
}

// ApprovedParties counts approvals on the legacy approval ledger.
func (c *Contract) ApprovedParties() int {
	n := 0
	for i := range c.Approvals {
		if c.Approvals[i].IsApproved {
			n++
		}
	}
	return n
}

// RequiredSignatures is the completion quorum: a self-contract needs only
// the creator's signature, anything else needs two.
func (c *Contract) RequiredSignatures() int {
	if c.IsSelfContract {
		return 1
	}
	return 2
}

// CanBeCompleted reports whether the signature quorum has been reached.
func (c *Contract) CanBeCompleted() bool {
	return c.SignedParties() >= c.RequiredSignatures()
}

// IsLocked reports whether the contract has entered its terminal,
// immutable state.
func (c *Contract) IsLocked() bool { return c.Status == StatusCompleted }

// CanBeDeleted: completed contracts can never be deleted, everything else
// can (by its creator).
func (c *Contract) CanBeDeleted() bool { return c.Status != StatusCompleted }

// HasSignedSignatures reports whether at least one party already signed.
func (c *Contract) HasSignedSignatures() bool { return c.SignedParties() > 0 }

// HasDeclinedParties reports whether any invitation was declined.
func (c *Contract) HasDeclinedParties() bool {
	for i := range c.Parties {
		if c.Parties[i].InvitationStatus == InvitationDeclined {
			return true
		}
	}
	return false
}

// DeclinedParties returns the parties that declined their invitation.
func (c *Contract) DeclinedParties() []ContractParty {
	var out []ContractParty
	for i := range c.Parties {
		if c.Parties[i].InvitationStatus == InvitationDeclined {
			out = append(out, c.Parties[i])
		}
	}
	return out
}

// IsEditableCheck implements the editing window: no edits after completion
// or after the first real signature, except that a declined contract opens
// up again so the creator can fix it and resend.
func (c *Contract) IsEditableCheck() bool {
	if c.IsLocked() {
		return false
	}
	if c.HasDeclinedParties() {
		return true
	}
	return !c.HasSignedSignatures()
}

// DurationDisplay renders the term for emails and listings.
func (c *Contract) DurationDisplay() string {
	if c.IsIndefinite || c.DurationMonths == nil {
		return "indefinite"
	}
	months := *c.DurationMonths
	if months >= 12 && months%12 == 0 {
		years := months / 12
		if years == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", years)
	}
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

// EndDate is the scheduled end, or nil for indefinite contracts.
func (c *Contract) EndDate() *time.Time {
	if c.IsIndefinite || c.DurationMonths == nil {
		return nil
	}
	end := c.StartDate.AddDate(0, *c.DurationMonths, 0)
	return &end
}
