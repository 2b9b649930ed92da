package handlers

import (
	"bytes"
	"case_team_app_go/clock"
	"case_team_app_go/db"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var handlerEpoch = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = testDB.AutoMigrate(db.Models()...)
	require.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

type testServices struct {
	db      *gorm.DB
	team    *services.TeamService
	billing *services.BillingService
}

func setupServices(t *testing.T) *testServices {
	database := setupTestDB(t)
	clk := clock.NewFake(handlerEpoch)
	repo := services.NewGormRepository(database, "TST")
	audit := services.NewSyncAuditRecorder(database)

	return &testServices{
		db:      database,
		team:    services.NewTeamService(repo, clk, audit, nil),
		billing: services.NewBillingService(repo, clk, audit, nil),
	}
}

func (s *testServices) lawyer(t *testing.T, name string) *models.User {
	lawyer := models.NewLawyer(name, name+"@firm.test", 100)
	require.NoError(t, s.db.Create(lawyer).Error)
	return lawyer
}

func (s *testServices) legalCase(t *testing.T, complexity models.Complexity) *models.LegalCase {
	c, err := s.team.CreateCase(services.AuditContext{}, services.CreateCaseInput{Title: "Test matter", Complexity: complexity})
	require.NoError(t, err)
	return c
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

// call runs a handler with JSON body, path id and the test services
func (s *testServices) call(t *testing.T, handler echo.HandlerFunc, method, path, id string, body interface{}) (*httptest.ResponseRecorder, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	_, c, rec := setupEcho(method, path, reader)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	c.Set(ContextKeyTeamService, s.team)
	c.Set(ContextKeyBillingService, s.billing)

	return rec, handler(c)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	assert.Equal(t, code, he.Code)
}

func assertOK(t *testing.T, rec *httptest.ResponseRecorder, err error, code int) {
	t.Helper()
	require.NoError(t, err)
	assert.Equal(t, code, rec.Code)
}
