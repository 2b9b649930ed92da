package handlers

import (
	"case_team_app_go/middleware"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MarkBilledRequest invoices a batch of approved entries
type MarkBilledRequest struct {
	EntryIDs   []string `json:"entry_ids"`
	InvoiceRef string   `json:"invoice_ref"`
}

// MarkBilledHandler bills a batch atomically: every entry or none
func MarkBilledHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}

	var req MarkBilledRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	entries, err := svc.MarkBilled(middleware.GetAuditContext(c), req.EntryIDs, req.InvoiceRef)
	if err != nil {
		return serviceError(err)
	}

	var totalHours, totalAmount float64
	data := make([]TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		totalHours += e.Hours
		totalAmount += e.Amount
		data = append(data, newTimeEntryResponse(e))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"invoice_ref":  *entries[0].InvoiceRef,
		"entry_count":  len(entries),
		"total_hours":  totalHours,
		"total_amount": totalAmount,
		"data":         data,
	})
}

// GetUtilizationHandler returns a lawyer's billable share of logged hours
func GetUtilizationHandler(c echo.Context) error {
	svc, err := getBillingService(c)
	if err != nil {
		return err
	}
	r, err := parseRange(c)
	if err != nil {
		return err
	}

	utilization, err := svc.Utilization(c.Param("id"), r)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"lawyer_id":   c.Param("id"),
		"from":        c.QueryParam("from"),
		"to":          c.QueryParam("to"),
		"utilization": utilization,
	})
}

// HealthHandler reports that the server is up
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
