package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentStatus is the lifecycle state of a lawyer's assignment to a case.
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "PENDING"
	AssignmentStatusActive    AssignmentStatus = "ACTIVE"
	AssignmentStatusInactive  AssignmentStatus = "INACTIVE"
	AssignmentStatusCompleted AssignmentStatus = "COMPLETED"
	AssignmentStatusCancelled AssignmentStatus = "CANCELLED"
)

// CaseAssignment links one lawyer to one case.
type CaseAssignment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID   string `gorm:"type:uuid;not null;index:idx_assignment_case_status" json:"case_id"`
	LawyerID string `gorm:"type:uuid;not null;index:idx_assignment_lawyer_status" json:"lawyer_id"`

	Status AssignmentStatus `gorm:"type:varchar(20);not null;default:PENDING;index:idx_assignment_case_status;index:idx_assignment_lawyer_status" json:"status"`
	Role   string           `gorm:"size:100" json:"role"`

	EstimatedHours float64 `gorm:"not null;default:0" json:"estimated_hours"`
	ActualHours    float64 `gorm:"not null;default:0" json:"actual_hours"`

	AssignedDate time.Time  `gorm:"not null" json:"assigned_date"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *CaseAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseAssignment model
func (CaseAssignment) TableName() string {
	return "case_assignments"
}

// IsOvertime reports whether logged hours exceed the estimate.
func (a *CaseAssignment) IsOvertime() bool {
	return a.ActualHours > a.EstimatedHours
}

// IsValidAssignmentStatus checks if the status is valid
func IsValidAssignmentStatus(status AssignmentStatus) bool {
	switch status {
	case AssignmentStatusPending, AssignmentStatusActive, AssignmentStatusInactive,
		AssignmentStatusCompleted, AssignmentStatusCancelled:
		return true
	}
	return false
}
