package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseStatus is the lifecycle state of a legal case.
type CaseStatus string

const (
	CaseStatusOpen       CaseStatus = "OPEN"
	CaseStatusInProgress CaseStatus = "IN_PROGRESS"
	CaseStatusOnHold     CaseStatus = "ON_HOLD"
	CaseStatusCompleted  CaseStatus = "COMPLETED"
	CaseStatusClosed     CaseStatus = "CLOSED"
	CaseStatusCancelled  CaseStatus = "CANCELLED"
)

// Complexity is the case complexity tier that drives team size.
type Complexity string

const (
	ComplexitySimple      Complexity = "SIMPLE"
	ComplexityMedium      Complexity = "MEDIUM"
	ComplexityComplex     Complexity = "COMPLEX"
	ComplexityVeryComplex Complexity = "VERY_COMPLEX"
)

// LegalCase is a unit of legal work tracked through a status lifecycle.
// The case owns its assignment list; assignments never point back at the
// case struct.
type LegalCase struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Optimistic concurrency token, bumped on every save
	Version int `gorm:"not null;default:1" json:"version"`

	CaseNumber string  `gorm:"not null;uniqueIndex" json:"case_number"`
	Title      string  `gorm:"not null" json:"title"`
	ClientID   *string `gorm:"type:uuid;index" json:"client_id,omitempty"`

	Status     CaseStatus `gorm:"type:varchar(20);not null;default:OPEN;index" json:"status"`
	Complexity Complexity `gorm:"type:varchar(20);not null;default:MEDIUM" json:"complexity"`

	// Per-case overrides of the complexity table. Zero means "use the table".
	MinimumLawyersRequired int `gorm:"not null;default:0" json:"minimum_lawyers_required"`
	MaximumLawyersAllowed  int `gorm:"not null;default:0" json:"maximum_lawyers_allowed"`

	TeamAssigned bool `gorm:"not null;default:false;index" json:"team_assigned"`

	OpenedAt        time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`

	Assignments []CaseAssignment `gorm:"foreignKey:CaseID" json:"assignments,omitempty"`
}

// BeforeCreate hook to generate UUID and set OpenedAt
func (c *LegalCase) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.OpenedAt.IsZero() {
		c.OpenedAt = time.Now()
	}
	if c.Status == "" {
		c.Status = CaseStatusOpen
	}
	if c.Complexity == "" {
		c.Complexity = ComplexityMedium
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}

// TableName specifies the table name for LegalCase model
func (LegalCase) TableName() string {
	return "legal_cases"
}

// FindAssignment returns the case's assignment with the given ID.
func (c *LegalCase) FindAssignment(id string) *CaseAssignment {
	for i := range c.Assignments {
		if c.Assignments[i].ID == id {
			return &c.Assignments[i]
		}
	}
	return nil
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status CaseStatus) bool {
	switch status {
	case CaseStatusOpen, CaseStatusInProgress, CaseStatusOnHold,
		CaseStatusCompleted, CaseStatusClosed, CaseStatusCancelled:
		return true
	}
	return false
}

// IsValidComplexity checks if the complexity tier is valid
func IsValidComplexity(complexity Complexity) bool {
	switch complexity {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityVeryComplex:
		return true
	}
	return false
}
