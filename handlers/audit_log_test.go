package handlers

import (
	"case_team_app_go/models"
	"case_team_app_go/services"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyActions(t *testing.T, resp map[string]interface{}) []interface{} {
	var actions []interface{}
	for _, row := range resp["data"].([]interface{}) {
		actions = append(actions, row.(map[string]interface{})["action"])
	}
	return actions
}

func TestCaseHistoryHandler(t *testing.T) {
	s := setupServices(t)
	legalCase := s.legalCase(t, models.ComplexitySimple)
	_, err := s.team.TransitionCase(services.AuditContext{ActorID: "partner-1"}, legalCase.ID, models.CaseStatusInProgress, false)
	require.NoError(t, err)

	handler := ResourceHistoryHandler(models.ResourceTypeCase)
	rec, err := s.call(t, handler, http.MethodGet, "/", legalCase.ID, nil)
	assertOK(t, rec, err, http.StatusOK)

	resp := decode(t, rec)
	assert.Equal(t, models.ResourceTypeCase, resp["resource_type"])
	assert.Equal(t, legalCase.ID, resp["resource_id"])
	assert.ElementsMatch(t, []interface{}{"CREATE", "STATUS_CHANGE"}, historyActions(t, resp))

	for _, row := range resp["data"].([]interface{}) {
		entry := row.(map[string]interface{})
		if entry["action"] != "STATUS_CHANGE" {
			continue
		}
		assert.Equal(t, "partner-1", entry["actor_id"])
		changes := entry["changes"].([]interface{})
		require.Len(t, changes, 1)
		change := changes[0].(map[string]interface{})
		assert.Equal(t, "status", change["field"])
		assert.Equal(t, "OPEN", change["old"])
		assert.Equal(t, "IN_PROGRESS", change["new"])
	}

	_, err = s.call(t, handler, http.MethodGet, "/", "missing", nil)
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestAssignmentHistoryHandler(t *testing.T) {
	s := setupServices(t)
	legalCase := s.legalCase(t, models.ComplexityMedium)
	lawyer := s.lawyer(t, "ana")
	a, err := s.team.AddAssignment(services.AuditContext{}, legalCase.ID, lawyer.ID, "Lead", 4)
	require.NoError(t, err)
	_, err = s.team.RemoveAssignment(services.AuditContext{}, a.ID)
	require.NoError(t, err)

	handler := ResourceHistoryHandler(models.ResourceTypeAssignment)
	rec, err := s.call(t, handler, http.MethodGet, "/", a.ID, nil)
	assertOK(t, rec, err, http.StatusOK)
	assert.ElementsMatch(t, []interface{}{"ASSIGN", "UNASSIGN"}, historyActions(t, decode(t, rec)))

	_, err = s.call(t, handler, http.MethodGet, "/", "missing", nil)
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestTimeEntryHistoryHandler(t *testing.T) {
	s := setupServices(t)
	legalCase := s.legalCase(t, models.ComplexityMedium)
	lawyer := s.lawyer(t, "ana")
	id := s.draftEntry(t, legalCase.ID, lawyer.ID, 2)

	handler := ResourceHistoryHandler(models.ResourceTypeTimeEntry)
	rec, err := s.call(t, handler, http.MethodGet, "/", id, nil)
	assertOK(t, rec, err, http.StatusOK)
	resp := decode(t, rec)
	require.Len(t, resp["data"], 1)
	row := resp["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "CREATE", row["action"])
	assert.Len(t, row["changes"], 3)

	_, err = s.call(t, handler, http.MethodGet, "/", "missing", nil)
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestUnknownResourceHistory(t *testing.T) {
	s := setupServices(t)
	_, err := s.call(t, ResourceHistoryHandler("Invoice"), http.MethodGet, "/", "any", nil)
	assertHTTPError(t, err, http.StatusNotFound)
}
