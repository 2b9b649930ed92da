package services

import (
	"case_team_app_go/models"

	"github.com/stretchr/testify/mock"
)

// mockNotifier records notifications instead of sending email
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) AssignmentProposed(lawyer *models.User, c *models.LegalCase, a *models.CaseAssignment) {
	m.Called(lawyer.ID, c.ID, a.ID)
}

func (m *mockNotifier) TimeEntryRejected(lawyer *models.User, c *models.LegalCase, entry *models.TimeEntry) {
	m.Called(lawyer.ID, c.ID, entry.ID)
}

// mockRepository lets tests script repository failures
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LoadCase(id string) (*models.LegalCase, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*models.LegalCase)
	return c, args.Error(1)
}

func (m *mockRepository) LoadCaseByAssignment(assignmentID string) (*models.LegalCase, error) {
	args := m.Called(assignmentID)
	c, _ := args.Get(0).(*models.LegalCase)
	return c, args.Error(1)
}

func (m *mockRepository) LoadAssignment(id string) (*models.CaseAssignment, error) {
	args := m.Called(id)
	a, _ := args.Get(0).(*models.CaseAssignment)
	return a, args.Error(1)
}

func (m *mockRepository) LoadTimeEntry(id string) (*models.TimeEntry, error) {
	args := m.Called(id)
	e, _ := args.Get(0).(*models.TimeEntry)
	return e, args.Error(1)
}

func (m *mockRepository) LoadTimeEntries(ids []string) ([]*models.TimeEntry, error) {
	args := m.Called(ids)
	entries, _ := args.Get(0).([]*models.TimeEntry)
	return entries, args.Error(1)
}

func (m *mockRepository) LoadLawyer(id string) (*models.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockRepository) ListTimeEntriesByCase(caseID string, r DateRange) ([]models.TimeEntry, error) {
	args := m.Called(caseID, r)
	entries, _ := args.Get(0).([]models.TimeEntry)
	return entries, args.Error(1)
}

func (m *mockRepository) ListTimeEntriesByLawyer(lawyerID string, r DateRange) ([]models.TimeEntry, error) {
	args := m.Called(lawyerID, r)
	entries, _ := args.Get(0).([]models.TimeEntry)
	return entries, args.Error(1)
}

func (m *mockRepository) ListCasesNeedingTeamSync() ([]models.LegalCase, error) {
	args := m.Called()
	cases, _ := args.Get(0).([]models.LegalCase)
	return cases, args.Error(1)
}

func (m *mockRepository) LawyerWorkload(lawyerID string) (int64, error) {
	args := m.Called(lawyerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) CreateCase(c *models.LegalCase) error {
	return m.Called(c).Error(0)
}

func (m *mockRepository) SaveCase(c *models.LegalCase) error {
	return m.Called(c).Error(0)
}

func (m *mockRepository) SaveTimeEntry(entry *models.TimeEntry) error {
	return m.Called(entry).Error(0)
}

func (m *mockRepository) SaveTimeEntries(entries []*models.TimeEntry) error {
	return m.Called(entries).Error(0)
}

// mockAuditRecorder captures audit events in memory
type mockAuditRecorder struct {
	events []AuditEvent
}

func (m *mockAuditRecorder) Record(ctx AuditContext, event AuditEvent) {
	m.events = append(m.events, event)
}
