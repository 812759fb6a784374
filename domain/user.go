package domain

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"column:password_hash" json:"-"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`

	Role    string `gorm:"column:role;default:member" json:"role"` // member, admin
	StoreID uint   `gorm:"column:store_id" json:"store_id"`

	ReportFrequency string `gorm:"column:report_frequency;default:weekly" json:"report_frequency"` // daily, weekly, monthly

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}
