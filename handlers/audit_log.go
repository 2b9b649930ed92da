package handlers

import (
	"case_team_app_go/db"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuditLogResponse is an audit row with its decoded field changes
type AuditLogResponse struct {
	models.AuditLog
	Changes []models.AuditChange `json:"changes"`
}

// resourceExists reports ErrNotFound for an unknown resource so an empty
// history always means "no changes yet"
func resourceExists(c echo.Context, resourceType, id string) error {
	switch resourceType {
	case models.ResourceTypeCase:
		svc, err := getTeamService(c)
		if err != nil {
			return err
		}
		_, err = svc.GetCase(id)
		return err
	case models.ResourceTypeAssignment:
		svc, err := getTeamService(c)
		if err != nil {
			return err
		}
		_, err = svc.GetAssignment(id)
		return err
	case models.ResourceTypeTimeEntry:
		svc, err := getBillingService(c)
		if err != nil {
			return err
		}
		_, err = svc.GetTimeEntry(id)
		return err
	}
	return echo.NewHTTPError(http.StatusNotFound, "Unknown resource type")
}

// ResourceHistoryHandler returns the audit history of one resource type,
// newest first
func ResourceHistoryHandler(resourceType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resourceID := c.Param("id")
		if err := resourceExists(c, resourceType, resourceID); err != nil {
			if _, ok := err.(*echo.HTTPError); ok {
				return err
			}
			return serviceError(err)
		}

		logs, err := services.GetResourceAuditHistory(db.DB, resourceType, resourceID)
		if err != nil {
			log.Printf("[API] Failed to fetch history for %s %s: %v", resourceType, resourceID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch history")
		}

		data := make([]AuditLogResponse, 0, len(logs))
		for i := range logs {
			changes := logs[i].Changes()
			if changes == nil {
				changes = []models.AuditChange{}
			}
			data = append(data, AuditLogResponse{AuditLog: logs[i], Changes: changes})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"resource_type": resourceType,
			"resource_id":   resourceID,
			"data":          data,
		})
	}
}
