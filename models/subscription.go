package models

import (
	"time"
)

// SubscriptionPlan is a billing tier. Plans do not gate the contract
// lifecycle; they exist for seeding and the admin dashboard.
type SubscriptionPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PlanType     string  `gorm:"column:plan_type;size:20;uniqueIndex" json:"planType"`
	Name         string  `gorm:"column:name;size:100"                 json:"name"`
	MonthlyPrice float64 `gorm:"column:monthly_price"                 json:"monthlyPrice"`
	// ContractQuota of 0 means unlimited.
	ContractQuota int  `gorm:"column:contract_quota" json:"contractQuota"`
	IsActive      bool `gorm:"column:is_active;default:true" json:"isActive"`
}

func (SubscriptionPlan) TableName() string { return "subscription_plans" }

// UserSubscription links a user to their current plan.
type UserSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint              `gorm:"column:user_id;uniqueIndex" json:"userId"`
	User   *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PlanID uint              `gorm:"column:plan_id" json:"planId"`
	Plan   *SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`

	StartedAt time.Time  `gorm:"column:started_at" json:"startedAt"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expiresAt,omitempty"`
	IsActive  bool       `gorm:"column:is_active;default:true" json:"isActive"`
}

func (UserSubscription) TableName() string { return "user_subscriptions" }
