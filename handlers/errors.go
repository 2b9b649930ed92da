package handlers

import (
	"case_team_app_go/services"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// serviceError translates a service failure into an HTTP error.
// Rule violations against current state are conflicts; malformed or
// incomplete requests are unprocessable.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrCaseNotModifiable),
		errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrTeamBelowMinimum),
		errors.Is(err, services.ErrLawyerUnavailable),
		errors.Is(err, services.ErrConcurrentModification):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidDuration),
		errors.Is(err, services.ErrMissingReason),
		errors.Is(err, services.ErrNotBillable),
		errors.Is(err, services.ErrInvalidBounds),
		errors.Is(err, services.ErrInvalidRate),
		errors.Is(err, services.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	log.Printf("[API] Unexpected error: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

func parseRange(c echo.Context) (services.DateRange, error) {
	r, err := services.ParseDateRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return services.DateRange{}, serviceError(err)
	}
	return r, nil
}
