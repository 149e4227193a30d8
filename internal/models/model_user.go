package models

import "time"

const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// User is the platform user record. Approval of an inscription promotes the
// applicant's role to the inscription's professional type.
type User struct {
	ID        string    `gorm:"column:id;primary_key;type:varchar(64)" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;index" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Role      string    `gorm:"column:role;type:varchar(64);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "app_user" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == UserRoleAdmin }
