package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMaxActiveAssignments caps how many PENDING/ACTIVE assignments a
// lawyer may hold across all cases when no explicit limit is set.
const DefaultMaxActiveAssignments = 10

// User role constants
const (
	RoleAdmin  = "admin"
	RoleLawyer = "lawyer"
	RoleStaff  = "staff"
)

// User is a member of the firm. Lawyers' workload is derived from their
// assignments and never stored on the user.
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Role     string `gorm:"not null;default:lawyer" json:"role"` // admin, lawyer, staff
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	MaxActiveAssignments int     `gorm:"not null;default:10" json:"max_active_assignments"`
	DefaultHourlyRate    float64 `gorm:"not null;default:0" json:"default_hourly_rate"`
}

// NewLawyer returns an active lawyer with explicit defaults.
func NewLawyer(name, email string, hourlyRate float64) *User {
	return &User{
		Name:                 name,
		Email:                email,
		Role:                 RoleLawyer,
		IsActive:             true,
		MaxActiveAssignments: DefaultMaxActiveAssignments,
		DefaultHourlyRate:    hourlyRate,
	}
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.MaxActiveAssignments == 0 {
		u.MaxActiveAssignments = DefaultMaxActiveAssignments
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// CanTakeWork reports whether the user may receive another assignment
// given their current PENDING/ACTIVE count.
func (u *User) CanTakeWork(activeAssignments int64) bool {
	return u.IsActive && activeAssignments < int64(u.MaxActiveAssignments)
}
