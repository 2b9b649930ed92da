package middleware

import (
	"case_team_app_go/services"
	"strings"

	"github.com/labstack/echo/v4"
)

const ContextKeyAuditContext = "audit_context"

// HeaderActorID names the caller in the audit trail. Nothing verifies it:
// authentication happens, if at all, in front of this service.
const HeaderActorID = "X-Actor-ID"

// AuditContext is middleware that captures request metadata for audit logging
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := services.AuditContext{
				ActorID:   strings.TrimSpace(c.Request().Header.Get(HeaderActorID)),
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}

			c.Set(ContextKeyAuditContext, ctx)
			return next(c)
		}
	}
}

// GetAuditContext retrieves the audit context from the request
func GetAuditContext(c echo.Context) services.AuditContext {
	if ctx, ok := c.Get(ContextKeyAuditContext).(services.AuditContext); ok {
		return ctx
	}
	return services.AuditContext{}
}
