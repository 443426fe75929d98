package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/bookshelf-server/internal/errors"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

func TestRegisterErrorHandler(t *testing.T) {
	RegisterErrorHandler()

	tests := []struct {
		name       string
		status     int
		errs       []error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "domain error wins",
			status:     http.StatusInternalServerError,
			errs:       []error{fmt.Errorf("wrapped: %w", domainerrors.Validation("bad title"))},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:       "store not found",
			status:     http.StatusInternalServerError,
			errs:       []error{fmt.Errorf("get: %w", store.ErrBookNotFound)},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "store conflict",
			status:     http.StatusInternalServerError,
			errs:       []error{store.ErrAlreadyExists},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "huma validation",
			status:     http.StatusUnprocessableEntity,
			errs:       []error{&huma.ErrorDetail{Message: "expected number <= 5", Location: "body.spice"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION",
		},
		{
			name:       "plain error",
			status:     http.StatusInternalServerError,
			errs:       []error{fmt.Errorf("disk on fire")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := huma.NewError(tt.status, "message", tt.errs...)
			assert.Equal(t, tt.wantStatus, err.GetStatus())

			apiErr, ok := err.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestRegisterErrorHandler_CollectsDetails(t *testing.T) {
	RegisterErrorHandler()

	err := huma.NewError(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Message: "expected length >= 1", Location: "body.title"},
		&huma.ErrorDetail{Message: "expected number <= 5", Location: "body.spice"},
	)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Len(t, apiErr.Details, 2)
}
