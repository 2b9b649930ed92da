package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntryStatus is the approval state of a time entry.
type TimeEntryStatus string

const (
	TimeEntryStatusDraft     TimeEntryStatus = "DRAFT"
	TimeEntryStatusSubmitted TimeEntryStatus = "SUBMITTED"
	TimeEntryStatusApproved  TimeEntryStatus = "APPROVED"
	TimeEntryStatusBilled    TimeEntryStatus = "BILLED"
	TimeEntryStatusRejected  TimeEntryStatus = "REJECTED"
)

// TimeEntry is a block of work a lawyer logged against a case.
type TimeEntry struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Optimistic concurrency token, bumped on every save
	Version int `gorm:"not null;default:1" json:"version"`

	CaseID   string `gorm:"type:uuid;not null;index:idx_time_entry_case_date" json:"case_id"`
	LawyerID string `gorm:"type:uuid;not null;index:idx_time_entry_lawyer_date" json:"lawyer_id"`

	Status      TimeEntryStatus `gorm:"type:varchar(20);not null;default:DRAFT;index" json:"status"`
	WorkDate    time.Time       `gorm:"not null;index:idx_time_entry_case_date;index:idx_time_entry_lawyer_date" json:"work_date"`
	Description string          `gorm:"type:text" json:"description"`

	Hours      float64 `gorm:"not null;default:0" json:"hours"`
	Billable   bool    `gorm:"not null" json:"billable"`
	HourlyRate float64 `gorm:"not null;default:0" json:"hourly_rate"`
	Amount     float64 `gorm:"not null;default:0" json:"amount"`

	// Review workflow
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy      *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Invoicing
	Billed     bool       `gorm:"not null;default:false" json:"billed"`
	BilledAt   *time.Time `json:"billed_at,omitempty"`
	InvoiceRef *string    `gorm:"size:100;index" json:"invoice_ref,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = TimeEntryStatusDraft
	}
	if e.Version == 0 {
		e.Version = 1
	}
	return nil
}

// TableName specifies the table name for TimeEntry model
func (TimeEntry) TableName() string {
	return "time_entries"
}

// ComputeAmount returns hours x rate for billable entries and 0 otherwise.
func (e *TimeEntry) ComputeAmount() float64 {
	if !e.Billable || e.Hours <= 0 || e.HourlyRate <= 0 {
		return 0
	}
	return e.Hours * e.HourlyRate
}

// IsValidTimeEntryStatus checks if the status is valid
func IsValidTimeEntryStatus(status TimeEntryStatus) bool {
	switch status {
	case TimeEntryStatusDraft, TimeEntryStatusSubmitted, TimeEntryStatusApproved,
		TimeEntryStatusBilled, TimeEntryStatusRejected:
		return true
	}
	return false
}
