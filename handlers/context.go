package handlers

import (
	"case_team_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	ContextKeyTeamService    = "team_service"
	ContextKeyBillingService = "billing_service"
)

// InjectServices makes the application services available to handlers
func InjectServices(team *services.TeamService, billing *services.BillingService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyTeamService, team)
			c.Set(ContextKeyBillingService, billing)
			return next(c)
		}
	}
}

func getTeamService(c echo.Context) (*services.TeamService, error) {
	svc, ok := c.Get(ContextKeyTeamService).(*services.TeamService)
	if !ok || svc == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Team service not configured")
	}
	return svc, nil
}

func getBillingService(c echo.Context) (*services.BillingService, error) {
	svc, ok := c.Get(ContextKeyBillingService).(*services.BillingService)
	if !ok || svc == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Billing service not configured")
	}
	return svc, nil
}
