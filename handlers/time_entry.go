package handlers

import (
	"case_team_app_go/middleware"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TimeEntryRequest carries the editable fields of a time entry
type TimeEntryRequest struct {
	LawyerID    string  `json:"lawyer_id"`
	WorkDate    string  `json:"work_date"` // YYYY-MM-DD, defaults to today
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	Billable    bool    `json:"billable"`
	Description string  `json:"description"`
}

func (r TimeEntryRequest) input() (services.TimeEntryInput, error) {
	in := services.TimeEntryInput{
		Hours:       r.Hours,
		HourlyRate:  r.HourlyRate,
		Billable:    r.Billable,
		Description: r.Description,
	}
	if r.WorkDate != "" {
		workDate, err := services.ParseDate(r.WorkDate)
		if err != nil {
			return services.TimeEntryInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		in.WorkDate = workDate
	}
	return in, nil
}

// TimeEntryResponse is a time entry with its next legal statuses
type TimeEntryResponse struct {
	*models.TimeEntry
	InvoiceEligible    bool                     `json:"invoice_eligible"`
	AllowedTransitions []models.TimeEntryStatus `json:"allowed_transitions"`
}

func newTimeEntryResponse(e *models.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		TimeEntry:          e,
		InvoiceEligible:    services.IsInvoiceEligible(e),
		AllowedTransitions: services.AllowedTimeEntryTransitions(e.Status),
	}
}

// CreateTimeEntryHandler logs a DRAFT entry on a case
func CreateTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	var req TimeEntryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if strings.TrimSpace(req.LawyerID) == "" {
		return badRequest("lawyer_id is required")
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	entry, err := svc.CreateTimeEntry(middleware.GetAuditContext(c), c.Param("id"), req.LawyerID, in)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newTimeEntryResponse(entry))
}

// GetTimeEntryHandler returns a single entry
func GetTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	entry, err := svc.GetTimeEntry(c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newTimeEntryResponse(entry))
}

// UpdateTimeEntryHandler edits a DRAFT entry
func UpdateTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	var req TimeEntryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	entry, err := svc.UpdateTimeEntry(middleware.GetAuditContext(c), c.Param("id"), in)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newTimeEntryResponse(entry))
}

// SubmitTimeEntryHandler sends a draft for review
func SubmitTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	entry, err := svc.SubmitTimeEntry(middleware.GetAuditContext(c), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newTimeEntryResponse(entry))
}

// ReviewRequest is the body of an approve or reject call
type ReviewRequest struct {
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason"`
}

// reviewerID falls back to the audited actor when the body names no reviewer
func (r ReviewRequest) reviewerID(c echo.Context) string {
	if id := strings.TrimSpace(r.ReviewerID); id != "" {
		return id
	}
	return middleware.GetAuditContext(c).ActorID
}

// ApproveTimeEntryHandler approves a submitted entry
func ApproveTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	reviewer := req.reviewerID(c)
	if reviewer == "" {
		return badRequest("reviewer_id is required")
	}

	entry, err := svc.ApproveTimeEntry(middleware.GetAuditContext(c), c.Param("id"), reviewer)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newTimeEntryResponse(entry))
}

// RejectTimeEntryHandler sends a submitted entry back with a reason
func RejectTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	entry, err := svc.RejectTimeEntry(middleware.GetAuditContext(c), c.Param("id"), req.reviewerID(c), req.Reason)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newTimeEntryResponse(entry))
}

// ReopenTimeEntryHandler turns a rejected entry back into a draft
func ReopenTimeEntryHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	entry, err := svc.ReopenTimeEntry(middleware.GetAuditContext(c), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newTimeEntryResponse(entry))
}
