package services

import (
	"case_team_app_go/clock"
	"case_team_app_go/models"
	"fmt"
	"strings"
	"time"
)

// BillingSummary aggregates invoice-eligible time for a case.
type BillingSummary struct {
	EntryCount  int     `json:"entry_count"`
	TotalHours  float64 `json:"total_hours"`
	TotalAmount float64 `json:"total_amount"`
}

// TimeEntryInput carries the editable fields of a draft time entry.
type TimeEntryInput struct {
	WorkDate    time.Time
	Hours       float64
	HourlyRate  float64
	Billable    bool
	Description string
}

// BillingEngine governs the time-entry approval lifecycle and decides
// which entries may be invoiced. Like TeamEngine it performs no I/O.
type BillingEngine struct {
	clock clock.Clock
}

// NewBillingEngine creates a BillingEngine stamping times from clk.
func NewBillingEngine(clk clock.Clock) *BillingEngine {
	return &BillingEngine{clock: clk}
}

func validateInput(in TimeEntryInput) error {
	if in.Hours < 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidDuration, in.Hours)
	}
	if in.HourlyRate < 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidRate, in.HourlyRate)
	}
	return nil
}

// NewDraft creates a DRAFT entry for a lawyer on a case. Drafts may carry
// zero hours; submission requires a positive duration.
func (e *BillingEngine) NewDraft(c *models.LegalCase, lawyerID string, in TimeEntryInput) (*models.TimeEntry, error) {
	if err := ensureModifiable(c); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	workDate := in.WorkDate
	if workDate.IsZero() {
		workDate = e.clock.Now()
	}

	entry := &models.TimeEntry{
		CaseID:      c.ID,
		LawyerID:    lawyerID,
		Status:      models.TimeEntryStatusDraft,
		WorkDate:    workDate,
		Description: strings.TrimSpace(in.Description),
		Hours:       in.Hours,
		HourlyRate:  in.HourlyRate,
		Billable:    in.Billable,
	}
	entry.Amount = entry.ComputeAmount()
	return entry, nil
}

// UpdateDraft edits a DRAFT entry in place.
func (e *BillingEngine) UpdateDraft(entry *models.TimeEntry, in TimeEntryInput) error {
	if entry.Status != models.TimeEntryStatusDraft {
		return fmt.Errorf("%w: only DRAFT entries can be edited, got %s", ErrInvalidTransition, entry.Status)
	}
	if err := validateInput(in); err != nil {
		return err
	}
	if !in.WorkDate.IsZero() {
		entry.WorkDate = in.WorkDate
	}
	entry.Hours = in.Hours
	entry.HourlyRate = in.HourlyRate
	entry.Billable = in.Billable
	entry.Description = strings.TrimSpace(in.Description)
	entry.Amount = entry.ComputeAmount()
	return nil
}

func checkTransition(entry *models.TimeEntry, to models.TimeEntryStatus) error {
	if !CanTransitionTimeEntry(entry.Status, to) {
		return fmt.Errorf("%w: time entry %s -> %s", ErrInvalidTransition, entry.Status, to)
	}
	return nil
}

// Submit sends a DRAFT entry for review.
func (e *BillingEngine) Submit(entry *models.TimeEntry) error {
	if err := checkTransition(entry, models.TimeEntryStatusSubmitted); err != nil {
		return err
	}
	if entry.Hours <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidDuration, entry.Hours)
	}
	now := e.clock.Now()
	entry.Status = models.TimeEntryStatusSubmitted
	entry.SubmittedAt = &now
	entry.Amount = entry.ComputeAmount()
	return nil
}

// Approve accepts a SUBMITTED entry and records who reviewed it.
func (e *BillingEngine) Approve(entry *models.TimeEntry, reviewerID string) error {
	if err := checkTransition(entry, models.TimeEntryStatusApproved); err != nil {
		return err
	}
	now := e.clock.Now()
	entry.Status = models.TimeEntryStatusApproved
	entry.ReviewedBy = &reviewerID
	entry.ReviewedAt = &now
	entry.RejectionReason = nil
	return nil
}

// Reject sends a SUBMITTED entry back with a reason.
func (e *BillingEngine) Reject(entry *models.TimeEntry, reviewerID, reason string) error {
	reason = strings.TrimSpace(reason)
	if err := checkTransition(entry, models.TimeEntryStatusRejected); err != nil {
		return err
	}
	if reason == "" {
		return ErrMissingReason
	}
	now := e.clock.Now()
	entry.Status = models.TimeEntryStatusRejected
	entry.RejectionReason = &reason
	entry.ReviewedAt = &now
	if reviewerID != "" {
		entry.ReviewedBy = &reviewerID
	}
	return nil
}

// Reopen returns a REJECTED entry to DRAFT so it can be fixed and
// resubmitted. The rejection reason is kept until the next review.
func (e *BillingEngine) Reopen(entry *models.TimeEntry) error {
	if err := checkTransition(entry, models.TimeEntryStatusDraft); err != nil {
		return err
	}
	entry.Status = models.TimeEntryStatusDraft
	entry.SubmittedAt = nil
	entry.ReviewedBy = nil
	entry.ReviewedAt = nil
	return nil
}

// MarkBilled invoices a batch. Every entry must be APPROVED and billable;
// if any is not, ErrNotBillable is returned and no entry is touched.
func (e *BillingEngine) MarkBilled(entries []*models.TimeEntry, invoiceRef string) error {
	invoiceRef = strings.TrimSpace(invoiceRef)
	if invoiceRef == "" {
		return fmt.Errorf("%w: invoice reference is required", ErrNotBillable)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries to bill", ErrNotBillable)
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Status != models.TimeEntryStatusApproved || !entry.Billable || entry.Billed {
			return fmt.Errorf("%w: entry %s is %s (billable=%t)", ErrNotBillable, entry.ID, entry.Status, entry.Billable)
		}
		if entry.ID != "" && seen[entry.ID] {
			return fmt.Errorf("%w: entry %s appears twice in the batch", ErrNotBillable, entry.ID)
		}
		seen[entry.ID] = true
	}

	now := e.clock.Now()
	for _, entry := range entries {
		entry.Status = models.TimeEntryStatusBilled
		entry.Billed = true
		entry.BilledAt = &now
		entry.InvoiceRef = &invoiceRef
		entry.Amount = entry.ComputeAmount()
	}
	return nil
}

// IsInvoiceEligible reports whether an entry would be picked up by the
// next invoice: approved, billable and not yet billed.
func IsInvoiceEligible(entry *models.TimeEntry) bool {
	return entry.Status == models.TimeEntryStatusApproved && entry.Billable && !entry.Billed
}

// BillingSummary totals the invoice-eligible entries of a case whose work
// date falls inside the range. No match yields a zero summary.
func (e *BillingEngine) BillingSummary(caseID string, entries []models.TimeEntry, r DateRange) BillingSummary {
	var s BillingSummary
	for i := range entries {
		entry := &entries[i]
		if entry.CaseID != caseID || !IsInvoiceEligible(entry) || !r.Contains(entry.WorkDate) {
			continue
		}
		s.EntryCount++
		s.TotalHours += entry.Hours
		s.TotalAmount += entry.Hours * entry.HourlyRate
	}
	return s
}

// Utilization is billable hours over total logged hours for a lawyer in
// the range. Drafts and rejected entries are not logged time yet. Returns
// 0 when the lawyer logged nothing.
func (e *BillingEngine) Utilization(lawyerID string, entries []models.TimeEntry, r DateRange) float64 {
	var billable, total float64
	for i := range entries {
		entry := &entries[i]
		if entry.LawyerID != lawyerID || !r.Contains(entry.WorkDate) {
			continue
		}
		switch entry.Status {
		case models.TimeEntryStatusSubmitted, models.TimeEntryStatusApproved, models.TimeEntryStatusBilled:
		default:
			continue
		}
		total += entry.Hours
		if entry.Billable {
			billable += entry.Hours
		}
	}
	if total == 0 {
		return 0
	}
	return billable / total
}
