package services

import (
	"case_team_app_go/models"
	"sort"
)

// caseStatusPolicy holds everything the system knows about a case status.
type caseStatusPolicy struct {
	DisplayName          string
	Active               bool
	RequiresConfirmation bool // advisory: caller decides whether to prompt
	Next                 []models.CaseStatus
}

var caseStatusTable = map[models.CaseStatus]caseStatusPolicy{
	models.CaseStatusOpen: {
		DisplayName: "Open",
		Active:      true,
		Next:        []models.CaseStatus{models.CaseStatusInProgress, models.CaseStatusOnHold, models.CaseStatusCancelled},
	},
	models.CaseStatusInProgress: {
		DisplayName: "In Progress",
		Active:      true,
		Next:        []models.CaseStatus{models.CaseStatusOnHold, models.CaseStatusCompleted, models.CaseStatusClosed, models.CaseStatusCancelled},
	},
	models.CaseStatusOnHold: {
		DisplayName: "On Hold",
		Active:      true,
		Next:        []models.CaseStatus{models.CaseStatusInProgress, models.CaseStatusClosed, models.CaseStatusCancelled},
	},
	models.CaseStatusCompleted: {
		DisplayName: "Completed",
		Next:        []models.CaseStatus{models.CaseStatusClosed},
	},
	models.CaseStatusClosed: {
		DisplayName:          "Closed",
		RequiresConfirmation: true,
	},
	models.CaseStatusCancelled: {
		DisplayName:          "Cancelled",
		RequiresConfirmation: true,
	},
}

type assignmentStatusPolicy struct {
	DisplayName       string
	CountsForWorkload bool
	ClosesAssignment  bool // entering this status stamps EndDate
	Next              []models.AssignmentStatus
}

var assignmentStatusTable = map[models.AssignmentStatus]assignmentStatusPolicy{
	models.AssignmentStatusPending: {
		DisplayName:       "Pending",
		CountsForWorkload: true,
		Next:              []models.AssignmentStatus{models.AssignmentStatusActive, models.AssignmentStatusInactive, models.AssignmentStatusCancelled},
	},
	models.AssignmentStatusActive: {
		DisplayName:       "Active",
		CountsForWorkload: true,
		Next:              []models.AssignmentStatus{models.AssignmentStatusCompleted, models.AssignmentStatusInactive, models.AssignmentStatusCancelled},
	},
	models.AssignmentStatusInactive: {
		DisplayName:      "Inactive",
		ClosesAssignment: true,
		Next:             []models.AssignmentStatus{models.AssignmentStatusActive, models.AssignmentStatusPending, models.AssignmentStatusCancelled},
	},
	models.AssignmentStatusCompleted: {
		DisplayName:      "Completed",
		ClosesAssignment: true,
		Next:             []models.AssignmentStatus{models.AssignmentStatusInactive},
	},
	models.AssignmentStatusCancelled: {
		DisplayName:      "Cancelled",
		ClosesAssignment: true,
	},
}

type timeEntryStatusPolicy struct {
	DisplayName string
	Next        []models.TimeEntryStatus
}

var timeEntryStatusTable = map[models.TimeEntryStatus]timeEntryStatusPolicy{
	models.TimeEntryStatusDraft:     {DisplayName: "Draft", Next: []models.TimeEntryStatus{models.TimeEntryStatusSubmitted}},
	models.TimeEntryStatusSubmitted: {DisplayName: "Submitted", Next: []models.TimeEntryStatus{models.TimeEntryStatusApproved, models.TimeEntryStatusRejected}},
	models.TimeEntryStatusApproved:  {DisplayName: "Approved", Next: []models.TimeEntryStatus{models.TimeEntryStatusBilled}},
	models.TimeEntryStatusRejected:  {DisplayName: "Rejected", Next: []models.TimeEntryStatus{models.TimeEntryStatusDraft}},
	models.TimeEntryStatusBilled:    {DisplayName: "Billed"},
}

// CanTransitionCase reports whether a case may move from one status to
// another. Same-state is always legal as a no-op for known statuses.
func CanTransitionCase(from, to models.CaseStatus) bool {
	policy, ok := caseStatusTable[from]
	if !ok {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range policy.Next {
		if next == to {
			return true
		}
	}
	return false
}

// IsActiveCaseStatus is true for OPEN, IN_PROGRESS and ON_HOLD.
func IsActiveCaseStatus(status models.CaseStatus) bool {
	return caseStatusTable[status].Active
}

// IsFinalCaseStatus is true for COMPLETED, CLOSED and CANCELLED.
func IsFinalCaseStatus(status models.CaseStatus) bool {
	_, known := caseStatusTable[status]
	return known && !caseStatusTable[status].Active
}

// RequiresConfirmation is true when moving a case into the target status
// should be confirmed by the user first.
func RequiresConfirmation(target models.CaseStatus) bool {
	return caseStatusTable[target].RequiresConfirmation
}

// AllowedCaseTransitions lists the statuses reachable from status, sorted.
func AllowedCaseTransitions(status models.CaseStatus) []models.CaseStatus {
	next := append([]models.CaseStatus{}, caseStatusTable[status].Next...)
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	return next
}

// GetCaseStatusDisplayName returns human-readable status name
func GetCaseStatusDisplayName(status models.CaseStatus) string {
	if policy, ok := caseStatusTable[status]; ok {
		return policy.DisplayName
	}
	return string(status)
}

// CanTransitionAssignment reports whether an assignment may move between
// the given statuses.
func CanTransitionAssignment(from, to models.AssignmentStatus) bool {
	policy, ok := assignmentStatusTable[from]
	if !ok {
		return false
	}
	for _, next := range policy.Next {
		if next == to {
			return true
		}
	}
	return false
}

// CountsForWorkload is true for ACTIVE and PENDING assignments.
func CountsForWorkload(status models.AssignmentStatus) bool {
	return assignmentStatusTable[status].CountsForWorkload
}

// AllowedAssignmentTransitions lists the statuses reachable from status, sorted.
func AllowedAssignmentTransitions(status models.AssignmentStatus) []models.AssignmentStatus {
	next := append([]models.AssignmentStatus{}, assignmentStatusTable[status].Next...)
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	return next
}

// GetAssignmentStatusDisplayName returns human-readable status name
func GetAssignmentStatusDisplayName(status models.AssignmentStatus) string {
	if policy, ok := assignmentStatusTable[status]; ok {
		return policy.DisplayName
	}
	return string(status)
}

// CanTransitionTimeEntry reports whether a time entry may move between the
// given statuses.
func CanTransitionTimeEntry(from, to models.TimeEntryStatus) bool {
	for _, next := range timeEntryStatusTable[from].Next {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTimeEntryTransitions lists the statuses reachable from status, sorted.
func AllowedTimeEntryTransitions(status models.TimeEntryStatus) []models.TimeEntryStatus {
	next := append([]models.TimeEntryStatus{}, timeEntryStatusTable[status].Next...)
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	return next
}

// GetTimeEntryStatusDisplayName returns human-readable status name
func GetTimeEntryStatusDisplayName(status models.TimeEntryStatus) string {
	if policy, ok := timeEntryStatusTable[status]; ok {
		return policy.DisplayName
	}
	return string(status)
}
