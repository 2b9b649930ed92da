package handlers

import (
	"case_team_app_go/middleware"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AssignmentResponse is an assignment with its next legal statuses
type AssignmentResponse struct {
	*models.CaseAssignment
	IsOvertime         bool                      `json:"is_overtime"`
	AllowedTransitions []models.AssignmentStatus `json:"allowed_transitions"`
}

func newAssignmentResponse(a *models.CaseAssignment) AssignmentResponse {
	return AssignmentResponse{
		CaseAssignment:     a,
		IsOvertime:         a.IsOvertime(),
		AllowedTransitions: services.AllowedAssignmentTransitions(a.Status),
	}
}

// AddAssignmentRequest proposes a lawyer for a case team
type AddAssignmentRequest struct {
	LawyerID       string  `json:"lawyer_id"`
	Role           string  `json:"role"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// AddAssignmentHandler adds a PENDING assignment to a case
func AddAssignmentHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	var req AddAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if strings.TrimSpace(req.LawyerID) == "" {
		return badRequest("lawyer_id is required")
	}

	a, err := svc.AddAssignment(middleware.GetAuditContext(c), c.Param("id"), req.LawyerID, req.Role, req.EstimatedHours)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newAssignmentResponse(a))
}

// ActivateAssignmentHandler moves an assignment to ACTIVE
func ActivateAssignmentHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	a, err := svc.ActivateAssignment(middleware.GetAuditContext(c), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAssignmentResponse(a))
}

// UpdateAssignmentStatusRequest is the body of an assignment status change
type UpdateAssignmentStatusRequest struct {
	Status models.AssignmentStatus `json:"status"`
}

// UpdateAssignmentStatusHandler applies a generic assignment transition
func UpdateAssignmentStatusHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	var req UpdateAssignmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Status == "" {
		return badRequest("status is required")
	}

	a, err := svc.TransitionAssignment(middleware.GetAuditContext(c), c.Param("id"), req.Status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAssignmentResponse(a))
}

// RemoveAssignmentHandler cancels an assignment
func RemoveAssignmentHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	a, err := svc.RemoveAssignment(middleware.GetAuditContext(c), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAssignmentResponse(a))
}

// RecordHoursRequest logs worked hours on an assignment
type RecordHoursRequest struct {
	Hours float64 `json:"hours"`
}

// RecordHoursHandler adds worked hours to an ACTIVE assignment
func RecordHoursHandler(c echo.Context) error {
	svc, err := getTeamService(c)
	if err != nil {
		return err
	}

	var req RecordHoursRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	a, err := svc.RecordHours(middleware.GetAuditContext(c), c.Param("id"), req.Hours)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAssignmentResponse(a))
}
