package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID     int       `gorm:"not null;index" json:"role_id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsVerified bool      `gorm:"not null;default:false;index" json:"is_verified"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Pets []Pet `gorm:"foreignKey:OwnerID" json:"pets,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the user may act on behalf of other clients.
func (u *User) IsStaff() bool {
	return u.RoleID == RoleIDAdmin || u.RoleID == RoleIDVet
}
