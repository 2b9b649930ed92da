package handlers

import (
	"case_team_app_go/services"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrNotFound), http.StatusNotFound},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrCapacityExceeded, http.StatusConflict},
		{services.ErrCaseNotModifiable, http.StatusConflict},
		{services.ErrAlreadyAssigned, http.StatusConflict},
		{services.ErrTeamBelowMinimum, http.StatusConflict},
		{services.ErrLawyerUnavailable, http.StatusConflict},
		{services.ErrConcurrentModification, http.StatusConflict},
		{services.ErrInvalidDuration, http.StatusUnprocessableEntity},
		{services.ErrMissingReason, http.StatusUnprocessableEntity},
		{services.ErrNotBillable, http.StatusUnprocessableEntity},
		{services.ErrInvalidBounds, http.StatusUnprocessableEntity},
		{services.ErrInvalidRate, http.StatusUnprocessableEntity},
		{services.ErrInvalidInput, http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assertHTTPError(t, serviceError(tt.err), tt.code)
		})
	}
}
