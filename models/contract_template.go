package models

import (
	"time"
)

// Template types mirror the kinds of agreements people actually make on
// the platform.
const (
	TemplateFriendship   = "friendship"
	TemplateMeeting      = "meeting"
	TemplateSports       = "sports"
	TemplateRelationship = "relationship"
	TemplateTravel       = "travel"
	TemplateDiet         = "diet"
	TemplateStudy        = "study"
	TemplateCooking      = "cooking"
	TemplateHousehold    = "household"
	TemplateDelivery     = "delivery"
	TemplateCustom       = "custom"
)

// ContractTemplate is a reusable content blueprint. Content may carry
// placeholder tokens such as [Full Name] which users fill in when they
// instantiate the template. A nil CreatorID marks a system template.
type ContractTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title        string `gorm:"column:title;size:200"        json:"title"`
	TemplateType string `gorm:"column:template_type;size:20" json:"templateType"`
	Description  string `gorm:"column:description;type:text" json:"description"`
	Content      string `gorm:"column:content;type:text"     json:"content"`
	Category     string `gorm:"column:category;size:100"     json:"category,omitempty"`
	Tags         string `gorm:"column:tags;size:500"         json:"tags,omitempty"`

	CreatorID *uint `gorm:"column:creator_id;index" json:"creatorId,omitempty"`
	Creator   *User `gorm:"foreignKey:CreatorID"    json:"creator,omitempty"`

	IsPublic   bool `gorm:"column:is_public"                json:"isPublic"`
	IsActive   bool `gorm:"column:is_active;default:true"   json:"isActive"`
	UsageCount uint `gorm:"column:usage_count"              json:"usageCount"`

	// Share link: a random code that lets non-owners instantiate the
	// template until it expires.
	IsShareable    bool       `gorm:"column:is_shareable"                     json:"isShareable"`
	ShareCode      *string    `gorm:"column:share_code;size:50;uniqueIndex"   json:"shareCode,omitempty"`
	ShareExpiresAt *time.Time `gorm:"column:share_expires_at"                 json:"shareExpiresAt,omitempty"`
}

func (ContractTemplate) TableName() string { return "contract_templates" }

// IsSystemTemplate reports whether the template ships with the platform.
func (t *ContractTemplate) IsSystemTemplate() bool { return t.CreatorID == nil }

// ShareLinkValid reports whether the share code can still be used.
func (t *ContractTemplate) ShareLinkValid() bool {
	if !t.IsShareable || t.ShareCode == nil {
		return false
	}
	return t.ShareExpiresAt == nil || time.Now().Before(*t.ShareExpiresAt)
}
