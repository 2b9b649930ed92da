package services

import (
	"case_team_app_go/clock"
	"case_team_app_go/models"
	"fmt"
	"log"
	"strings"
)

// CreateCaseInput carries the fields of a new case
type CreateCaseInput struct {
	CaseNumber             string            `json:"case_number"`
	Title                  string            `json:"title"`
	ClientID               *string           `json:"client_id"`
	Complexity             models.Complexity `json:"complexity"`
	MinimumLawyersRequired int               `json:"minimum_lawyers_required"`
	MaximumLawyersAllowed  int               `json:"maximum_lawyers_allowed"`
}

// TeamService runs team operations against stored cases: load, apply the
// engine, save, then record the audit trail and notify.
type TeamService struct {
	repo     Repository
	engine   *TeamEngine
	clock    clock.Clock
	audit    AuditRecorder
	notifier Notifier
}

// NewTeamService wires a TeamService. notifier may be nil.
func NewTeamService(repo Repository, clk clock.Clock, audit AuditRecorder, notifier Notifier) *TeamService {
	return &TeamService{
		repo:     repo,
		engine:   NewTeamEngine(clk),
		clock:    clk,
		audit:    audit,
		notifier: notifier,
	}
}

// CreateCase opens a new case. Zero bounds fall back to the complexity table.
func (s *TeamService) CreateCase(actx AuditContext, in CreateCaseInput) (*models.LegalCase, error) {
	title := SanitizeText(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	complexity := in.Complexity
	if complexity == "" {
		complexity = models.ComplexityMedium
	}
	if !models.IsValidComplexity(complexity) {
		return nil, fmt.Errorf("%w: unknown complexity %q", ErrInvalidInput, in.Complexity)
	}
	if err := ValidateBounds(complexity, in.MinimumLawyersRequired, in.MaximumLawyersAllowed); err != nil {
		return nil, err
	}

	c := &models.LegalCase{
		CaseNumber:             strings.TrimSpace(in.CaseNumber),
		Title:                  title,
		ClientID:               in.ClientID,
		Status:                 models.CaseStatusOpen,
		Complexity:             complexity,
		MinimumLawyersRequired: in.MinimumLawyersRequired,
		MaximumLawyersAllowed:  in.MaximumLawyersAllowed,
		OpenedAt:               s.clock.Now(),
	}
	if err := s.repo.CreateCase(c); err != nil {
		log.Printf("[TEAM] Failed to create case: %v", err)
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionCreate,
		ResourceType: models.ResourceTypeCase,
		ResourceID:   c.ID,
		ResourceName: c.CaseNumber,
		Description:  "Case opened",
		NewValues: map[string]interface{}{
			"status":     c.Status,
			"complexity": c.Complexity,
			"title":      c.Title,
		},
	})
	return c, nil
}

// GetCase loads a case with its team
func (s *TeamService) GetCase(caseID string) (*models.LegalCase, error) {
	return s.repo.LoadCase(caseID)
}

// GetAssignment loads a single assignment
func (s *TeamService) GetAssignment(assignmentID string) (*models.CaseAssignment, error) {
	return s.repo.LoadAssignment(assignmentID)
}

// TeamMetrics loads a case and computes its team figures
func (s *TeamService) TeamMetrics(caseID string) (TeamMetrics, error) {
	c, err := s.repo.LoadCase(caseID)
	if err != nil {
		return TeamMetrics{}, err
	}
	return s.engine.TeamMetrics(c), nil
}

// checkLawyerAvailable enforces the firm-wide assignment cap of a lawyer
func (s *TeamService) checkLawyerAvailable(lawyerID string) (*models.User, error) {
	lawyer, err := s.repo.LoadLawyer(lawyerID)
	if err != nil {
		return nil, err
	}
	workload, err := s.repo.LawyerWorkload(lawyerID)
	if err != nil {
		return nil, err
	}
	if !lawyer.CanTakeWork(workload) {
		return nil, fmt.Errorf("%w: %s holds %d of %d assignments (active=%t)",
			ErrLawyerUnavailable, lawyer.Name, workload, lawyer.MaxActiveAssignments, lawyer.IsActive)
	}
	return lawyer, nil
}

func (s *TeamService) save(c *models.LegalCase) error {
	if err := s.repo.SaveCase(c); err != nil {
		log.Printf("[TEAM] Failed to save case %s: %v", c.ID, err)
		return err
	}
	return nil
}

// AddAssignment proposes a lawyer for a case team
func (s *TeamService) AddAssignment(actx AuditContext, caseID, lawyerID, role string, estimatedHours float64) (*models.CaseAssignment, error) {
	c, err := s.repo.LoadCase(caseID)
	if err != nil {
		return nil, err
	}

	// Case rules first; the loaded aggregate is dropped if the lawyer check fails
	a, err := s.engine.AddAssignment(c, lawyerID, SanitizeText(role), estimatedHours)
	if err != nil {
		return nil, err
	}
	lawyer, err := s.checkLawyerAvailable(lawyerID)
	if err != nil {
		return nil, err
	}
	if err := s.save(c); err != nil {
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionAssign,
		ResourceType: models.ResourceTypeAssignment,
		ResourceID:   a.ID,
		ResourceName: c.CaseNumber,
		Description:  fmt.Sprintf("%s proposed for the case team", lawyer.Name),
		NewValues: map[string]interface{}{
			"lawyer_id": a.LawyerID,
			"role":      a.Role,
			"status":    a.Status,
		},
	})
	if s.notifier != nil {
		s.notifier.AssignmentProposed(lawyer, c, a)
	}
	return a, nil
}

// ActivateAssignment moves an assignment to ACTIVE
func (s *TeamService) ActivateAssignment(actx AuditContext, assignmentID string) (*models.CaseAssignment, error) {
	return s.TransitionAssignment(actx, assignmentID, models.AssignmentStatusActive)
}

// RemoveAssignment cancels an assignment
func (s *TeamService) RemoveAssignment(actx AuditContext, assignmentID string) (*models.CaseAssignment, error) {
	return s.TransitionAssignment(actx, assignmentID, models.AssignmentStatusCancelled)
}

// TransitionAssignment applies an assignment status change. A lawyer
// rejoining a team counts against their firm-wide cap again.
func (s *TeamService) TransitionAssignment(actx AuditContext, assignmentID string, to models.AssignmentStatus) (*models.CaseAssignment, error) {
	if !models.IsValidAssignmentStatus(to) {
		return nil, fmt.Errorf("%w: unknown assignment status %q", ErrInvalidTransition, to)
	}
	c, err := s.repo.LoadCaseByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	current := c.FindAssignment(assignmentID)
	if current == nil {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
	}
	from := current.Status

	a, err := s.engine.TransitionAssignment(c, assignmentID, to)
	if err != nil {
		return nil, err
	}
	if !CountsForWorkload(from) && CountsForWorkload(to) {
		if _, err := s.checkLawyerAvailable(a.LawyerID); err != nil {
			return nil, err
		}
	}
	if err := s.save(c); err != nil {
		return nil, err
	}

	action := models.AuditActionStatusChange
	if to == models.AssignmentStatusCancelled {
		action = models.AuditActionUnassign
	}
	s.audit.Record(actx, AuditEvent{
		Action:       action,
		ResourceType: models.ResourceTypeAssignment,
		ResourceID:   a.ID,
		ResourceName: c.CaseNumber,
		Description:  fmt.Sprintf("Assignment %s -> %s", from, to),
		OldValues:    map[string]interface{}{"status": from},
		NewValues:    map[string]interface{}{"status": a.Status},
	})
	return a, nil
}

// RecordHours adds worked hours to an ACTIVE assignment
func (s *TeamService) RecordHours(actx AuditContext, assignmentID string, hours float64) (*models.CaseAssignment, error) {
	c, err := s.repo.LoadCaseByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	before := 0.0
	if current := c.FindAssignment(assignmentID); current != nil {
		before = current.ActualHours
	}

	a, err := s.engine.RecordActualHours(c, assignmentID, hours)
	if err != nil {
		return nil, err
	}
	if err := s.save(c); err != nil {
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionUpdate,
		ResourceType: models.ResourceTypeAssignment,
		ResourceID:   a.ID,
		ResourceName: c.CaseNumber,
		Description:  fmt.Sprintf("Logged %.2f hours", hours),
		OldValues:    map[string]interface{}{"actual_hours": before},
		NewValues:    map[string]interface{}{"actual_hours": a.ActualHours, "overtime": a.IsOvertime()},
	})
	return a, nil
}

// MarkTeamAssigned flags a case whose team meets its minimum
func (s *TeamService) MarkTeamAssigned(actx AuditContext, caseID string) (*models.LegalCase, error) {
	c, err := s.repo.LoadCase(caseID)
	if err != nil {
		return nil, err
	}
	if c.TeamAssigned {
		return c, nil
	}
	if err := s.engine.MarkTeamAssigned(c); err != nil {
		return nil, err
	}
	if err := s.save(c); err != nil {
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionUpdate,
		ResourceType: models.ResourceTypeCase,
		ResourceID:   c.ID,
		ResourceName: c.CaseNumber,
		Description:  "Case team marked as assigned",
		OldValues:    map[string]interface{}{"team_assigned": false},
		NewValues:    map[string]interface{}{"team_assigned": true},
	})
	return c, nil
}

// TransitionCase changes a case status. Statuses that need confirmation
// fail ErrConfirmationRequired unless confirmed is set.
func (s *TeamService) TransitionCase(actx AuditContext, caseID string, to models.CaseStatus, confirmed bool) (*models.LegalCase, error) {
	if !models.IsValidCaseStatus(to) {
		return nil, fmt.Errorf("%w: unknown case status %q", ErrInvalidTransition, to)
	}
	c, err := s.repo.LoadCase(caseID)
	if err != nil {
		return nil, err
	}
	from := c.Status
	if from == to {
		return c, nil
	}
	if !CanTransitionCase(from, to) {
		return nil, fmt.Errorf("%w: case %s -> %s", ErrInvalidTransition, from, to)
	}
	if RequiresConfirmation(to) && !confirmed {
		return nil, fmt.Errorf("%w: moving case %s to %s", ErrConfirmationRequired, c.CaseNumber, to)
	}

	if _, err := s.engine.TransitionCase(c, to); err != nil {
		return nil, err
	}
	if err := s.save(c); err != nil {
		return nil, err
	}

	s.audit.Record(actx, AuditEvent{
		Action:       models.AuditActionStatusChange,
		ResourceType: models.ResourceTypeCase,
		ResourceID:   c.ID,
		ResourceName: c.CaseNumber,
		Description:  fmt.Sprintf("Case %s -> %s", from, to),
		OldValues:    map[string]interface{}{"status": from},
		NewValues:    map[string]interface{}{"status": c.Status},
	})
	return c, nil
}

// SyncTeamAssigned flags every active case whose team already meets its
// minimum. It returns how many cases were flagged. Failures on one case
// are logged and do not stop the sweep.
func (s *TeamService) SyncTeamAssigned() (int, error) {
	cases, err := s.repo.ListCasesNeedingTeamSync()
	if err != nil {
		return 0, err
	}

	flagged := 0
	for i := range cases {
		c := &cases[i]
		if !s.engine.TeamMetrics(c).MeetsMinimum {
			continue
		}
		if err := s.engine.MarkTeamAssigned(c); err != nil {
			log.Printf("[TEAM] Case %s not flagged: %v", c.CaseNumber, err)
			continue
		}
		if err := s.save(c); err != nil {
			continue
		}
		s.audit.Record(AuditContext{ActorID: "system"}, AuditEvent{
			Action:       models.AuditActionUpdate,
			ResourceType: models.ResourceTypeCase,
			ResourceID:   c.ID,
			ResourceName: c.CaseNumber,
			Description:  "Case team marked as assigned by scheduled sync",
			OldValues:    map[string]interface{}{"team_assigned": false},
			NewValues:    map[string]interface{}{"team_assigned": true},
		})
		flagged++
	}
	return flagged, nil
}
