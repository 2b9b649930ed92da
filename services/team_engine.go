package services

import (
	"case_team_app_go/clock"
	"case_team_app_go/models"
	"fmt"
	"strings"
)

// TeamMetrics is the derived view of a case team.
type TeamMetrics struct {
	ActiveCount      int  `json:"active_count"`
	PendingCount     int  `json:"pending_count"`
	MeetsMinimum     bool `json:"meets_minimum"`
	CanAddMore       bool `json:"can_add_more"`
	EffectiveMinimum int  `json:"effective_minimum"`
	EffectiveMaximum int  `json:"effective_maximum"`
	Recommended      int  `json:"recommended"`
	OvertimeCount    int  `json:"overtime_count"`
}

// TeamEngine applies the case and assignment state machines and the
// capacity rules to a case aggregate. It performs no I/O; callers load
// the case, call the engine and persist the result.
type TeamEngine struct {
	clock clock.Clock
}

// NewTeamEngine creates a TeamEngine stamping times from clk.
func NewTeamEngine(clk clock.Clock) *TeamEngine {
	return &TeamEngine{clock: clk}
}

// workloadCount returns how many assignments occupy a team slot.
func workloadCount(c *models.LegalCase) int {
	count := 0
	for i := range c.Assignments {
		if CountsForWorkload(c.Assignments[i].Status) {
			count++
		}
	}
	return count
}

func ensureModifiable(c *models.LegalCase) error {
	if IsFinalCaseStatus(c.Status) {
		return fmt.Errorf("%w: case %s is %s", ErrCaseNotModifiable, c.CaseNumber, c.Status)
	}
	return nil
}

func findAssignment(c *models.LegalCase, assignmentID string) (*models.CaseAssignment, error) {
	a := c.FindAssignment(assignmentID)
	if a == nil {
		return nil, fmt.Errorf("%w: assignment %s is not part of case %s", ErrNotFound, assignmentID, c.ID)
	}
	return a, nil
}

// AddAssignment proposes a lawyer for the case team. The new assignment is
// PENDING and is appended to the case's assignment list.
func (e *TeamEngine) AddAssignment(c *models.LegalCase, lawyerID, role string, estimatedHours float64) (*models.CaseAssignment, error) {
	if err := ensureModifiable(c); err != nil {
		return nil, err
	}
	if estimatedHours < 0 {
		return nil, fmt.Errorf("%w: estimated hours cannot be negative", ErrInvalidDuration)
	}

	for i := range c.Assignments {
		a := &c.Assignments[i]
		if a.LawyerID == lawyerID && CountsForWorkload(a.Status) {
			return nil, fmt.Errorf("%w: assignment %s", ErrAlreadyAssigned, a.ID)
		}
	}

	bounds := EffectiveBounds(c)
	if workloadCount(c) >= bounds.Maximum {
		return nil, fmt.Errorf("%w: %d of %d lawyers assigned", ErrCapacityExceeded, workloadCount(c), bounds.Maximum)
	}

	c.Assignments = append(c.Assignments, models.CaseAssignment{
		CaseID:         c.ID,
		LawyerID:       lawyerID,
		Status:         models.AssignmentStatusPending,
		Role:           strings.TrimSpace(role),
		EstimatedHours: estimatedHours,
		AssignedDate:   e.clock.Now(),
	})
	return &c.Assignments[len(c.Assignments)-1], nil
}

// ActivateAssignment moves an assignment to ACTIVE, stamping StartDate the
// first time it becomes active.
func (e *TeamEngine) ActivateAssignment(c *models.LegalCase, assignmentID string) (*models.CaseAssignment, error) {
	return e.TransitionAssignment(c, assignmentID, models.AssignmentStatusActive)
}

// TransitionAssignment applies a generic status change. Leaving the team
// (PENDING or ACTIVE to a closed status) stamps EndDate; rejoining it clears
// EndDate and is subject to the case capacity.
func (e *TeamEngine) TransitionAssignment(c *models.LegalCase, assignmentID string, to models.AssignmentStatus) (*models.CaseAssignment, error) {
	if err := ensureModifiable(c); err != nil {
		return nil, err
	}
	a, err := findAssignment(c, assignmentID)
	if err != nil {
		return nil, err
	}
	if !CanTransitionAssignment(a.Status, to) {
		return nil, fmt.Errorf("%w: assignment %s -> %s", ErrInvalidTransition, a.Status, to)
	}

	// INACTIVE does not hold a team slot; coming back needs a free one
	if !CountsForWorkload(a.Status) && CountsForWorkload(to) {
		bounds := EffectiveBounds(c)
		if workloadCount(c) >= bounds.Maximum {
			return nil, fmt.Errorf("%w: %d of %d lawyers assigned", ErrCapacityExceeded, workloadCount(c), bounds.Maximum)
		}
	}

	now := e.clock.Now()
	from := a.Status
	a.Status = to
	if assignmentStatusTable[to].ClosesAssignment {
		// Moving between closed statuses keeps the date the lawyer left
		if CountsForWorkload(from) || a.EndDate == nil {
			a.EndDate = &now
		}
	} else {
		a.EndDate = nil
	}
	if to == models.AssignmentStatusActive && a.StartDate == nil {
		a.StartDate = &now
	}
	return a, nil
}

// RemoveAssignment cancels an assignment.
func (e *TeamEngine) RemoveAssignment(c *models.LegalCase, assignmentID string) (*models.CaseAssignment, error) {
	return e.TransitionAssignment(c, assignmentID, models.AssignmentStatusCancelled)
}

// RecordActualHours adds worked hours to an assignment. Going over the
// estimate is allowed and only surfaces through IsOvertime.
func (e *TeamEngine) RecordActualHours(c *models.LegalCase, assignmentID string, hours float64) (*models.CaseAssignment, error) {
	if err := ensureModifiable(c); err != nil {
		return nil, err
	}
	if hours <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidDuration, hours)
	}
	a, err := findAssignment(c, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.AssignmentStatusActive {
		return nil, fmt.Errorf("%w: hours can only be logged on ACTIVE assignments, got %s", ErrInvalidTransition, a.Status)
	}
	a.ActualHours += hours
	return a, nil
}

// TeamMetrics computes the case team figures against the effective bounds.
func (e *TeamEngine) TeamMetrics(c *models.LegalCase) TeamMetrics {
	bounds := EffectiveBounds(c)
	m := TeamMetrics{
		EffectiveMinimum: bounds.Minimum,
		EffectiveMaximum: bounds.Maximum,
		Recommended:      bounds.Recommended,
	}
	for i := range c.Assignments {
		a := &c.Assignments[i]
		switch a.Status {
		case models.AssignmentStatusActive:
			m.ActiveCount++
		case models.AssignmentStatusPending:
			m.PendingCount++
		}
		if a.IsOvertime() {
			m.OvertimeCount++
		}
	}
	team := m.ActiveCount + m.PendingCount
	m.MeetsMinimum = team >= bounds.Minimum
	m.CanAddMore = team < bounds.Maximum
	return m
}

// MarkTeamAssigned sets the case's team-assigned flag once the team meets
// its minimum. Calling it again on a flagged case is a no-op.
func (e *TeamEngine) MarkTeamAssigned(c *models.LegalCase) error {
	if c.TeamAssigned {
		return nil
	}
	if err := ensureModifiable(c); err != nil {
		return err
	}
	m := e.TeamMetrics(c)
	if !m.MeetsMinimum {
		return fmt.Errorf("%w: %d of %d lawyers", ErrTeamBelowMinimum, m.ActiveCount+m.PendingCount, m.EffectiveMinimum)
	}
	c.TeamAssigned = true
	return nil
}

// TransitionCase applies the case state machine. It reports whether the
// target status is one the caller should have confirmed with the user.
// Entering a final status stamps ClosedAt and releases the team: ACTIVE
// assignments complete (or cancel with the case), PENDING ones cancel.
func (e *TeamEngine) TransitionCase(c *models.LegalCase, to models.CaseStatus) (bool, error) {
	if !CanTransitionCase(c.Status, to) {
		return false, fmt.Errorf("%w: case %s -> %s", ErrInvalidTransition, c.Status, to)
	}
	confirm := RequiresConfirmation(to)
	if c.Status == to {
		return confirm, nil
	}

	now := e.clock.Now()
	c.Status = to
	c.StatusChangedAt = &now

	if IsFinalCaseStatus(to) {
		if c.ClosedAt == nil {
			c.ClosedAt = &now
		}
		for i := range c.Assignments {
			a := &c.Assignments[i]
			var target models.AssignmentStatus
			switch {
			case a.Status == models.AssignmentStatusActive && to != models.CaseStatusCancelled:
				target = models.AssignmentStatusCompleted
			case CountsForWorkload(a.Status):
				target = models.AssignmentStatusCancelled
			default:
				continue
			}
			a.Status = target
			a.EndDate = &now
		}
	}
	return confirm, nil
}
