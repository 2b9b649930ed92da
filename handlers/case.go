package handlers

import (
	"case_team_app_go/middleware"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CaseResponse is a case with the statuses it may move to next
type CaseResponse struct {
	*models.LegalCase
	StatusDisplayName  string              `json:"status_display_name"`
	AllowedTransitions []models.CaseStatus `json:"allowed_transitions"`
}

func newCaseResponse(c *models.LegalCase) CaseResponse {
	return CaseResponse{
		LegalCase:          c,
		StatusDisplayName:  services.GetCaseStatusDisplayName(c.Status),
		AllowedTransitions: services.AllowedCaseTransitions(c.Status),
	}
}

// CreateCaseHandler opens a new case
func CreateCaseHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	var req services.CreateCaseInput
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	legalCase, err := svc.CreateCase(middleware.GetAuditContext(c), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newCaseResponse(legalCase))
}

// GetCaseHandler returns a case with its assignments
func GetCaseHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	legalCase, err := svc.GetCase(c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newCaseResponse(legalCase))
}

// UpdateCaseStatusRequest is the body of a case status change
type UpdateCaseStatusRequest struct {
	Status  models.CaseStatus `json:"status"`
	Confirm bool              `json:"confirm"`
}

// UpdateCaseStatusHandler moves a case through its lifecycle. Statuses
// that need confirmation answer 409 with requires_confirmation until the
// request repeats with confirm=true.
func UpdateCaseStatusHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	var req UpdateCaseStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Status == "" {
		return badRequest("status is required")
	}

	legalCase, err := svc.TransitionCase(middleware.GetAuditContext(c), c.Param("id"), req.Status, req.Confirm)
	if errors.Is(err, services.ErrConfirmationRequired) {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"message":               err.Error(),
			"requires_confirmation": true,
			"status":                req.Status,
		})
	}
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newCaseResponse(legalCase))
}

// GetCaseTeamHandler returns the team figures and assignments of a case
func GetCaseTeamHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	legalCase, err := svc.GetCase(c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	metrics, err := svc.TeamMetrics(legalCase.ID)
	if err != nil {
		return serviceError(err)
	}

	assignments := legalCase.Assignments
	if assignments == nil {
		assignments = []models.CaseAssignment{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"case_id":       legalCase.ID,
		"team_assigned": legalCase.TeamAssigned,
		"metrics":       metrics,
		"assignments":   assignments,
	})
}

// MarkTeamAssignedHandler flags a case whose team meets its minimum
func MarkTeamAssignedHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	legalCase, err := svc.MarkTeamAssigned(middleware.GetAuditContext(c), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newCaseResponse(legalCase))
}

// GetBillingSummaryHandler totals the invoice-eligible time of a case
func GetBillingSummaryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}
	r, err := parseRange(c)
	if err != nil {
		return err
	}

	summary, err := svc.BillingSummary(c.Param("id"), r)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"case_id": c.Param("id"),
		"from":    c.QueryParam("from"),
		"to":      c.QueryParam("to"),
		"summary": summary,
	})
}
