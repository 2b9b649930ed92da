package handlers

import (
	"case_team_app_go/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignmentHandler(t *testing.T) {
	s := setupServices(t)
	legalCase := s.legalCase(t, models.ComplexitySimple)
	path := "/api/cases/" + legalCase.ID + "/assignments"

	t.Run("Success", func(t *testing.T) {
		lawyer := s.lawyer(t, "ana")
		rec, err := s.call(t, AddAssignmentHandler, http.MethodPost, path, legalCase.ID, map[string]interface{}{
			"lawyer_id":       lawyer.ID,
			"role":            "<b>Lead</b>",
			"estimated_hours": 10,
		})
		assertOK(t, rec, err, http.StatusCreated)

		resp := decode(t, rec)
		assert.Equal(t, "PENDING", resp["status"])
		assert.Equal(t, "Lead", resp["role"])
		assert.Equal(t, false, resp["is_overtime"])
		assert.Contains(t, resp["allowed_transitions"], "ACTIVE")

		_, err = s.call(t, AddAssignmentHandler, http.MethodPost, path, legalCase.ID, map[string]interface{}{"lawyer_id": lawyer.ID})
		assertHTTPError(t, err, http.StatusConflict)
	})

	t.Run("Missing lawyer", func(t *testing.T) {
		_, err := s.call(t, AddAssignmentHandler, http.MethodPost, path, legalCase.ID, map[string]interface{}{"role": "Lead"})
		assertHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("Unknown lawyer", func(t *testing.T) {
		_, err := s.call(t, AddAssignmentHandler, http.MethodPost, path, legalCase.ID, map[string]interface{}{"lawyer_id": "nobody"})
		assertHTTPError(t, err, http.StatusNotFound)
	})

	t.Run("Capacity", func(t *testing.T) {
		second := s.lawyer(t, "ben")
		rec, err := s.call(t, AddAssignmentHandler, http.MethodPost, path, legalCase.ID, map[string]interface{}{"lawyer_id": second.ID})
		assertOK(t, rec, err, http.StatusCreated)

		third := s.lawyer(t, "cho")
		_, err = s.call(t, AddAssignmentHandler, http.MethodPost, path, legalCase.ID, map[string]interface{}{"lawyer_id": third.ID})
		assertHTTPError(t, err, http.StatusConflict)
	})
}

func TestAssignmentLifecycleHandlers(t *testing.T) {
	s := setupServices(t)
	legalCase := s.legalCase(t, models.ComplexityMedium)
	lawyer := s.lawyer(t, "ana")

	rec, err := s.call(t, AddAssignmentHandler, http.MethodPost, "/", legalCase.ID, map[string]interface{}{
		"lawyer_id":       lawyer.ID,
		"estimated_hours": 2,
	})
	require.NoError(t, err)
	id := decode(t, rec)["id"].(string)

	// Hours only go on ACTIVE assignments
	_, err = s.call(t, RecordHoursHandler, http.MethodPost, "/", id, map[string]interface{}{"hours": 1})
	assertHTTPError(t, err, http.StatusConflict)

	rec, err = s.call(t, ActivateAssignmentHandler, http.MethodPost, "/", id, nil)
	assertOK(t, rec, err, http.StatusOK)
	resp := decode(t, rec)
	assert.Equal(t, "ACTIVE", resp["status"])
	assert.NotNil(t, resp["start_date"])

	_, err = s.call(t, RecordHoursHandler, http.MethodPost, "/", id, map[string]interface{}{"hours": -1})
	assertHTTPError(t, err, http.StatusUnprocessableEntity)

	rec, err = s.call(t, RecordHoursHandler, http.MethodPost, "/", id, map[string]interface{}{"hours": 3})
	assertOK(t, rec, err, http.StatusOK)
	resp = decode(t, rec)
	assert.Equal(t, 3.0, resp["actual_hours"])
	assert.Equal(t, true, resp["is_overtime"])

	_, err = s.call(t, UpdateAssignmentStatusHandler, http.MethodPut, "/", id, map[string]interface{}{})
	assertHTTPError(t, err, http.StatusBadRequest)

	_, err = s.call(t, UpdateAssignmentStatusHandler, http.MethodPut, "/", id, map[string]interface{}{"status": "PENDING"})
	assertHTTPError(t, err, http.StatusConflict)

	rec, err = s.call(t, UpdateAssignmentStatusHandler, http.MethodPut, "/", id, map[string]interface{}{"status": "INACTIVE"})
	assertOK(t, rec, err, http.StatusOK)
	resp = decode(t, rec)
	assert.Equal(t, "INACTIVE", resp["status"])
	assert.NotNil(t, resp["end_date"])

	rec, err = s.call(t, RemoveAssignmentHandler, http.MethodDelete, "/", id, nil)
	assertOK(t, rec, err, http.StatusOK)
	assert.Equal(t, "CANCELLED", decode(t, rec)["status"])

	_, err = s.call(t, RemoveAssignmentHandler, http.MethodDelete, "/", id, nil)
	assertHTTPError(t, err, http.StatusConflict)

	_, err = s.call(t, ActivateAssignmentHandler, http.MethodPost, "/", "missing", nil)
	assertHTTPError(t, err, http.StatusNotFound)
}
