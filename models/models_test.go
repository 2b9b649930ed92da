package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeEntryComputeAmount(t *testing.T) {
	tests := []struct {
		name     string
		entry    TimeEntry
		expected float64
	}{
		{"billable", TimeEntry{Hours: 5, HourlyRate: 100, Billable: true}, 500},
		{"non billable", TimeEntry{Hours: 5, HourlyRate: 100, Billable: false}, 0},
		{"zero hours", TimeEntry{Hours: 0, HourlyRate: 100, Billable: true}, 0},
		{"negative rate", TimeEntry{Hours: 2, HourlyRate: -10, Billable: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.ComputeAmount())
		})
	}
}

func TestCaseAssignmentIsOvertime(t *testing.T) {
	a := CaseAssignment{EstimatedHours: 10, ActualHours: 10}
	assert.False(t, a.IsOvertime())

	a.ActualHours = 10.5
	assert.True(t, a.IsOvertime())
}

func TestLegalCaseFindAssignment(t *testing.T) {
	c := LegalCase{Assignments: []CaseAssignment{{ID: "a1"}, {ID: "a2"}}}

	found := c.FindAssignment("a2")
	if assert.NotNil(t, found) {
		found.Role = "lead"
		assert.Equal(t, "lead", c.Assignments[1].Role)
	}
	assert.Nil(t, c.FindAssignment("missing"))
}

func TestAuditLogChanges(t *testing.T) {
	log := AuditLog{
		OldValues: `{"status":"PENDING","role":"lead"}`,
		NewValues: `{"status":"ACTIVE","role":"lead"}`,
	}

	changes := log.Changes()
	assert.Len(t, changes, 1)
	assert.Equal(t, "status", changes[0].Field)
	assert.Equal(t, "PENDING", changes[0].Old)
	assert.Equal(t, "ACTIVE", changes[0].New)
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, IsValidCaseStatus(CaseStatusOnHold))
	assert.False(t, IsValidCaseStatus("ARCHIVED"))
	assert.True(t, IsValidAssignmentStatus(AssignmentStatusInactive))
	assert.False(t, IsValidAssignmentStatus("ON_LEAVE"))
	assert.True(t, IsValidTimeEntryStatus(TimeEntryStatusRejected))
	assert.False(t, IsValidTimeEntryStatus("PAID"))
	assert.True(t, IsValidComplexity(ComplexityVeryComplex))
	assert.False(t, IsValidComplexity("TRIVIAL"))
}
