package services

import (
	"case_team_app_go/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository is the persistence collaborator of the team and billing
// services. Loads return ErrNotFound for missing rows. Saves are
// transactional and fail with ErrConcurrentModification when the stored
// version moved since the aggregate was loaded.
type Repository interface {
	LoadCase(id string) (*models.LegalCase, error)
	LoadCaseByAssignment(assignmentID string) (*models.LegalCase, error)
	LoadAssignment(id string) (*models.CaseAssignment, error)
	LoadTimeEntry(id string) (*models.TimeEntry, error)
	LoadTimeEntries(ids []string) ([]*models.TimeEntry, error)
	LoadLawyer(id string) (*models.User, error)

	ListTimeEntriesByCase(caseID string, r DateRange) ([]models.TimeEntry, error)
	ListTimeEntriesByLawyer(lawyerID string, r DateRange) ([]models.TimeEntry, error)
	ListCasesNeedingTeamSync() ([]models.LegalCase, error)
	LawyerWorkload(lawyerID string) (int64, error)

	CreateCase(c *models.LegalCase) error
	SaveCase(c *models.LegalCase) error
	SaveTimeEntry(entry *models.TimeEntry) error
	SaveTimeEntries(entries []*models.TimeEntry) error
}

// GormRepository implements Repository on top of gorm.
type GormRepository struct {
	db               *gorm.DB
	caseNumberPrefix string
}

// NewGormRepository creates a repository bound to db. New cases without a
// case number get one under caseNumberPrefix.
func NewGormRepository(db *gorm.DB, caseNumberPrefix string) *GormRepository {
	return &GormRepository{db: db, caseNumberPrefix: caseNumberPrefix}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return err
}

func preloadAssignments(db *gorm.DB) *gorm.DB {
	return db.Order("assigned_date ASC, id ASC")
}

// LoadCase retrieves a case with its assignments
func (r *GormRepository) LoadCase(id string) (*models.LegalCase, error) {
	var c models.LegalCase
	if err := r.db.Preload("Assignments", preloadAssignments).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "case", id)
	}
	return &c, nil
}

// LoadCaseByAssignment retrieves the case owning an assignment
func (r *GormRepository) LoadCaseByAssignment(assignmentID string) (*models.LegalCase, error) {
	a, err := r.LoadAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	return r.LoadCase(a.CaseID)
}

// LoadAssignment retrieves an assignment by ID
func (r *GormRepository) LoadAssignment(id string) (*models.CaseAssignment, error) {
	var a models.CaseAssignment
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "assignment", id)
	}
	return &a, nil
}

// LoadTimeEntry retrieves a time entry by ID
func (r *GormRepository) LoadTimeEntry(id string) (*models.TimeEntry, error) {
	var e models.TimeEntry
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "time entry", id)
	}
	return &e, nil
}

// LoadTimeEntries retrieves a batch of time entries; every ID must exist
func (r *GormRepository) LoadTimeEntries(ids []string) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	if len(ids) == 0 {
		return entries, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("work_date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(entries))
	for _, e := range entries {
		found[e.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, fmt.Errorf("%w: time entry %s", ErrNotFound, id)
		}
	}
	return entries, nil
}

// LoadLawyer retrieves a user by ID
func (r *GormRepository) LoadLawyer(id string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "lawyer", id)
	}
	return &u, nil
}

func applyDateRange(query *gorm.DB, dr DateRange) *gorm.DB {
	if !dr.From.IsZero() {
		query = query.Where("work_date >= ?", truncateDay(dr.From))
	}
	if !dr.To.IsZero() {
		// Include the entire last day
		query = query.Where("work_date < ?", truncateDay(dr.To).AddDate(0, 0, 1))
	}
	return query
}

// ListTimeEntriesByCase returns a case's entries with work dates in range
func (r *GormRepository) ListTimeEntriesByCase(caseID string, dr DateRange) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	query := applyDateRange(r.db.Where("case_id = ?", caseID), dr)
	err := query.Order("work_date ASC, id ASC").Find(&entries).Error
	return entries, err
}

// ListTimeEntriesByLawyer returns a lawyer's entries with work dates in range
func (r *GormRepository) ListTimeEntriesByLawyer(lawyerID string, dr DateRange) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	query := applyDateRange(r.db.Where("lawyer_id = ?", lawyerID), dr)
	err := query.Order("work_date ASC, id ASC").Find(&entries).Error
	return entries, err
}

// ListCasesNeedingTeamSync returns active cases not yet flagged as staffed
func (r *GormRepository) ListCasesNeedingTeamSync() ([]models.LegalCase, error) {
	var cases []models.LegalCase
	err := r.db.Preload("Assignments", preloadAssignments).
		Where("team_assigned = ?", false).
		Where("status IN ?", []models.CaseStatus{models.CaseStatusOpen, models.CaseStatusInProgress, models.CaseStatusOnHold}).
		Order("opened_at ASC").
		Find(&cases).Error
	return cases, err
}

// LawyerWorkload counts a lawyer's PENDING and ACTIVE assignments across all cases
func (r *GormRepository) LawyerWorkload(lawyerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CaseAssignment{}).
		Where("lawyer_id = ? AND status IN ?", lawyerID,
			[]models.AssignmentStatus{models.AssignmentStatusPending, models.AssignmentStatusActive}).
		Count(&count).Error
	return count, err
}

// CreateCase inserts a new case and any assignments it already carries
func (r *GormRepository) CreateCase(c *models.LegalCase) error {
	if c.OpenedAt.IsZero() {
		c.OpenedAt = time.Now()
	}
	if c.CaseNumber == "" {
		number, err := EnsureUniqueCaseNumber(r.db, r.caseNumberPrefix, c.OpenedAt.Year())
		if err != nil {
			return err
		}
		c.CaseNumber = number
	}
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// SaveCase writes the case and all of its assignments in one transaction.
func (r *GormRepository) SaveCase(c *models.LegalCase) error {
	nextVersion := c.Version + 1
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.LegalCase{}).
			Where("id = ? AND version = ?", c.ID, c.Version).
			Updates(map[string]interface{}{
				"version":                  nextVersion,
				"title":                    c.Title,
				"status":                   c.Status,
				"complexity":               c.Complexity,
				"minimum_lawyers_required": c.MinimumLawyersRequired,
				"maximum_lawyers_allowed":  c.MaximumLawyersAllowed,
				"team_assigned":            c.TeamAssigned,
				"closed_at":                c.ClosedAt,
				"status_changed_at":        c.StatusChangedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: case %s at version %d", ErrConcurrentModification, c.ID, c.Version)
		}

		for i := range c.Assignments {
			a := &c.Assignments[i]
			a.CaseID = c.ID
			if err := tx.Save(a).Error; err != nil {
				return fmt.Errorf("failed to save assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.Version = nextVersion
	return nil
}

// SaveTimeEntry writes a single entry
func (r *GormRepository) SaveTimeEntry(entry *models.TimeEntry) error {
	return r.SaveTimeEntries([]*models.TimeEntry{entry})
}

// SaveTimeEntries writes a batch atomically: either every entry is stored
// or none is. Entries without an ID are inserted.
func (r *GormRepository) SaveTimeEntries(entries []*models.TimeEntry) error {
	updated := make([]bool, len(entries))
	created := make([]bool, len(entries))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i, e := range entries {
			if e.ID == "" {
				created[i] = true
				if err := tx.Create(e).Error; err != nil {
					return fmt.Errorf("failed to create time entry: %w", err)
				}
				continue
			}
			updated[i] = true

			result := tx.Model(&models.TimeEntry{}).
				Where("id = ? AND version = ?", e.ID, e.Version).
				Updates(map[string]interface{}{
					"version":          e.Version + 1,
					"status":           e.Status,
					"work_date":        e.WorkDate,
					"description":      e.Description,
					"hours":            e.Hours,
					"billable":         e.Billable,
					"hourly_rate":      e.HourlyRate,
					"amount":           e.Amount,
					"submitted_at":     e.SubmittedAt,
					"reviewed_by":      e.ReviewedBy,
					"reviewed_at":      e.ReviewedAt,
					"rejection_reason": e.RejectionReason,
					"billed":           e.Billed,
					"billed_at":        e.BilledAt,
					"invoice_ref":      e.InvoiceRef,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: time entry %s at version %d", ErrConcurrentModification, e.ID, e.Version)
			}
		}
		return nil
	})
	if err != nil {
		// The rolled back inserts must be retried as inserts
		for i, e := range entries {
			if created[i] {
				e.ID = ""
			}
		}
		return err
	}
	// Versions only move once the batch is durable
	for i, e := range entries {
		if updated[i] {
			e.Version++
		}
	}
	return nil
}
