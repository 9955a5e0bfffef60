package models

import (
	"time"
)

// User is a registered account. Passwords are stored as bcrypt hashes and
// never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username     string `gorm:"column:username;size:150;uniqueIndex" json:"username"`
	Email        string `gorm:"column:email;size:254;uniqueIndex"    json:"email"`
	FirstName    string `gorm:"column:first_name;size:150"           json:"firstName"`
	LastName     string `gorm:"column:last_name;size:150"            json:"lastName"`
	PasswordHash string `gorm:"column:password_hash"                 json:"-"`
	IsAdmin      bool   `gorm:"column:is_admin"                      json:"isAdmin"`

	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (User) TableName() string { return "users" }

// FullName falls back to the username when first/last name are blank.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserProfile carries the optional per-user extras and the running
// contract counters shown on the profile page.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID    uint       `gorm:"column:user_id;uniqueIndex" json:"userId"`
	Phone     *string    `gorm:"column:phone;size:20"       json:"phone,omitempty"`
	Address   *string    `gorm:"column:address;type:text"   json:"address,omitempty"`
	BirthDate *time.Time `gorm:"column:birth_date"          json:"birthDate,omitempty"`
	Gender    string     `gorm:"column:gender;size:1"       json:"gender,omitempty"`

	EmailNotifications bool `gorm:"column:email_notifications;default:true" json:"emailNotifications"`
	PushNotifications  bool `gorm:"column:push_notifications;default:true"  json:"pushNotifications"`

	TotalContractsCreated uint `gorm:"column:total_contracts_created" json:"totalContractsCreated"`
	TotalContractsSigned  uint `gorm:"column:total_contracts_signed"  json:"totalContractsSigned"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Age computes full years since BirthDate, or -1 when it is unset.
func (p *UserProfile) Age() int {
	if p.BirthDate == nil {
		return -1
	}
	now := time.Now()
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
