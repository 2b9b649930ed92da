package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAuditContext(t *testing.T) {
	e := echo.New()

	t.Run("FullContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(HeaderActorID, " reviewer-1 ")
		req.Header.Set(echo.HeaderXRealIP, "10.1.2.3")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := AuditContext()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		err := handler(c)
		assert.NoError(t, err)

		auditCtx := GetAuditContext(c)
		assert.Equal(t, "reviewer-1", auditCtx.ActorID)
		assert.Equal(t, "10.1.2.3", auditCtx.IPAddress)
		assert.Equal(t, "test-agent", auditCtx.UserAgent)
	})

	t.Run("Anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := AuditContext()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		err := handler(c)
		assert.NoError(t, err)

		auditCtx := GetAuditContext(c)
		assert.Empty(t, auditCtx.ActorID)
		assert.NotEmpty(t, auditCtx.IPAddress)
	})

	t.Run("MissingMiddleware", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, "", GetAuditContext(c).ActorID)
	})
}
