package services

import (
	"case_team_app_go/clock"
	"case_team_app_go/models"
	"fmt"
	"log"
)

// BillingService runs the time-entry workflow against stored entries.
type BillingService struct {
	repo     Repository
	engine   *BillingEngine
	audit    AuditRecorder
	notifier Notifier
}

// NewBillingService wires a BillingService. notifier may be nil.
func NewBillingService(repo Repository, clk clock.Clock, audit AuditRecorder, notifier Notifier) *BillingService {
	return &BillingService{
		repo:     repo,
		engine:   NewBillingEngine(clk),
		audit:    audit,
		notifier: notifier,
	}
}

func (s *BillingService) save(entries ...*models.TimeEntry) error {
	if err := s.repo.SaveTimeEntries(entries); err != nil {
		log.Printf("[BILLING] Failed to save %d time entries: %v", len(entries), err)
		return err
	}
	return nil
}

func (s *BillingService) recordStatusChange(actx AuditContext, entry *models.TimeEntry, from models.TimeEntryStatus, extra map[string]interface{}) {
	newValues := map[string]interface{}{"status": entry.Status}
	for k, v := range extra {
		newValues[k] = v
	}
	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionStatusChange,
		ResourceType: models.ResourceTypeTimeEntry,
		ResourceID:   entry.ID,
		Description:  fmt.Sprintf("Time entry %s -> %s", from, entry.Status),
		OldValues:    map[string]interface{}{"status": from},
		NewValues:    newValues,
	})
}

// CreateTimeEntry logs a DRAFT entry for a lawyer on a case. A zero rate
// falls back to the lawyer's default hourly rate.
func (s *BillingService) CreateTimeEntry(actx AuditContext, caseID, lawyerID string, in TimeEntryInput) (*models.TimeEntry, error) {
	c, err := s.repo.LoadCase(caseID)
	if err != nil {
		return nil, err
	}
	lawyer, err := s.repo.LoadLawyer(lawyerID)
	if err != nil {
		return nil, err
	}
	if in.HourlyRate == 0 {
		in.HourlyRate = lawyer.DefaultHourlyRate
	}
	in.Description = SanitizeText(in.Description)

	entry, err := s.engine.NewDraft(c, lawyer.ID, in)
	if err != nil {
		return nil, err
	}
	if err := s.save(entry); err != nil {
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionCreate,
		ResourceType: models.ResourceTypeTimeEntry,
		ResourceID:   entry.ID,
		ResourceName: c.CaseNumber,
		Description:  fmt.Sprintf("Logged %.2f hours", entry.Hours),
		NewValues: map[string]interface{}{
			"hours":    entry.Hours,
			"billable": entry.Billable,
			"amount":   entry.Amount,
		},
	})
	return entry, nil
}

// UpdateTimeEntry edits a DRAFT entry
func (s *BillingService) UpdateTimeEntry(actx AuditContext, entryID string, in TimeEntryInput) (*models.TimeEntry, error) {
	entry, err := s.repo.LoadTimeEntry(entryID)
	if err != nil {
		return nil, err
	}
	old := map[string]interface{}{"hours": entry.Hours, "billable": entry.Billable, "amount": entry.Amount}

	in.Description = SanitizeText(in.Description)
	if err := s.engine.UpdateDraft(entry, in); err != nil {
		return nil, err
	}
	if err := s.save(entry); err != nil {
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionUpdate,
		ResourceType: models.ResourceTypeTimeEntry,
		ResourceID:   entry.ID,
		Description:  "Draft time entry edited",
		OldValues:    old,
		NewValues:    map[string]interface{}{"hours": entry.Hours, "billable": entry.Billable, "amount": entry.Amount},
	})
	return entry, nil
}

// GetTimeEntry loads a single entry
func (s *BillingService) GetTimeEntry(entryID string) (*models.TimeEntry, error) {
	return s.repo.LoadTimeEntry(entryID)
}

// SubmitTimeEntry sends a draft for review
func (s *BillingService) SubmitTimeEntry(actx AuditContext, entryID string) (*models.TimeEntry, error) {
	entry, err := s.repo.LoadTimeEntry(entryID)
	if err != nil {
		return nil, err
	}
	from := entry.Status
	if err := s.engine.Submit(entry); err != nil {
		return nil, err
	}
	if err := s.save(entry); err != nil {
		return nil, err
	}
	s.recordStatusChange(actx, entry, from, nil)
	return entry, nil
}

// ApproveTimeEntry approves a submitted entry
func (s *BillingService) ApproveTimeEntry(actx AuditContext, entryID, reviewerID string) (*models.TimeEntry, error) {
	entry, err := s.repo.LoadTimeEntry(entryID)
	if err != nil {
		return nil, err
	}
	from := entry.Status
	if err := s.engine.Approve(entry, reviewerID); err != nil {
		return nil, err
	}
	if err := s.save(entry); err != nil {
		return nil, err
	}
	s.recordStatusChange(actx, entry, from, map[string]interface{}{"reviewed_by": reviewerID})
	return entry, nil
}

// RejectTimeEntry sends a submitted entry back to its author
func (s *BillingService) RejectTimeEntry(actx AuditContext, entryID, reviewerID, reason string) (*models.TimeEntry, error) {
	entry, err := s.repo.LoadTimeEntry(entryID)
	if err != nil {
		return nil, err
	}
	from := entry.Status
	if err := s.engine.Reject(entry, reviewerID, SanitizeText(reason)); err != nil {
		return nil, err
	}
	if err := s.save(entry); err != nil {
		return nil, err
	}
	s.recordStatusChange(actx, entry, from, map[string]interface{}{"rejection_reason": *entry.RejectionReason})

	if s.notifier != nil {
		s.notifyRejected(entry)
	}
	return entry, nil
}

func (s *BillingService) notifyRejected(entry *models.TimeEntry) {
	lawyer, err := s.repo.LoadLawyer(entry.LawyerID)
	if err != nil {
		log.Printf("[BILLING] Rejection not sent for entry %s: %v", entry.ID, err)
		return
	}
	c, err := s.repo.LoadCase(entry.CaseID)
	if err != nil {
		log.Printf("[BILLING] Rejection not sent for entry %s: %v", entry.ID, err)
		return
	}
	s.notifier.TimeEntryRejected(lawyer, c, entry)
}

// ReopenTimeEntry turns a rejected entry back into an editable draft
func (s *BillingService) ReopenTimeEntry(actx AuditContext, entryID string) (*models.TimeEntry, error) {
	entry, err := s.repo.LoadTimeEntry(entryID)
	if err != nil {
		return nil, err
	}
	from := entry.Status
	if err := s.engine.Reopen(entry); err != nil {
		return nil, err
	}
	if err := s.save(entry); err != nil {
		return nil, err
	}
	s.recordStatusChange(actx, entry, from, nil)
	return entry, nil
}

// MarkBilled invoices a batch of entries atomically
func (s *BillingService) MarkBilled(actx AuditContext, entryIDs []string, invoiceRef string) ([]*models.TimeEntry, error) {
	if len(entryIDs) == 0 {
		return nil, fmt.Errorf("%w: no entries to bill", ErrNotBillable)
	}
	entries, err := s.repo.LoadTimeEntries(entryIDs)
	if err != nil {
		return nil, err
	}
	if len(entries) != len(entryIDs) {
		return nil, fmt.Errorf("%w: duplicate entries in batch", ErrNotBillable)
	}
	if err := s.engine.MarkBilled(entries, invoiceRef); err != nil {
		return nil, err
	}
	if err := s.save(entries...); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		s.audit.Record(actx, AuditEvent{
			Action:       models.AuditActionBill,
			ResourceType: models.ResourceTypeTimeEntry,
			ResourceID:   entry.ID,
			ResourceName: *entry.InvoiceRef,
			Description:  fmt.Sprintf("Billed on invoice %s", *entry.InvoiceRef),
			OldValues:    map[string]interface{}{"status": models.TimeEntryStatusApproved},
			NewValues:    map[string]interface{}{"status": entry.Status, "amount": entry.Amount},
		})
	}
	log.Printf("[BILLING] Invoice %s: %d entries billed", *entries[0].InvoiceRef, len(entries))
	return entries, nil
}

// EligibleEntries lists the invoice-eligible entries of a case in a range
func (s *BillingService) EligibleEntries(caseID string, r DateRange) ([]*models.TimeEntry, error) {
	all, err := s.repo.ListTimeEntriesByCase(caseID, r)
	if err != nil {
		return nil, err
	}
	eligible := []*models.TimeEntry{}
	for i := range all {
		if IsInvoiceEligible(&all[i]) {
			eligible = append(eligible, &all[i])
		}
	}
	return eligible, nil
}

// BillCase invoices every eligible entry of a case in one batch. With
// dryRun set nothing is written and the would-be batch is returned.
func (s *BillingService) BillCase(actx AuditContext, caseID, invoiceRef string, r DateRange, dryRun bool) ([]*models.TimeEntry, error) {
	if _, err := s.repo.LoadCase(caseID); err != nil {
		return nil, err
	}
	eligible, err := s.EligibleEntries(caseID, r)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return eligible, nil
	}

	ids := make([]string, len(eligible))
	for i, e := range eligible {
		ids[i] = e.ID
	}
	return s.MarkBilled(actx, ids, invoiceRef)
}

// BillingSummary totals the invoice-eligible time of a case
func (s *BillingService) BillingSummary(caseID string, r DateRange) (BillingSummary, error) {
	if _, err := s.repo.LoadCase(caseID); err != nil {
		return BillingSummary{}, err
	}
	entries, err := s.repo.ListTimeEntriesByCase(caseID, r)
	if err != nil {
		return BillingSummary{}, err
	}
	return s.engine.BillingSummary(caseID, entries, r), nil
}

// Utilization returns a lawyer's billable share of logged hours
func (s *BillingService) Utilization(lawyerID string, r DateRange) (float64, error) {
	if _, err := s.repo.LoadLawyer(lawyerID); err != nil {
		return 0, err
	}
	entries, err := s.repo.ListTimeEntriesByLawyer(lawyerID, r)
	if err != nil {
		return 0, err
	}
	return s.engine.Utilization(lawyerID, entries, r), nil
}
