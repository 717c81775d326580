package validation_test

import (
	"errors"
	"net/http"
	"testing"

	domainerrors "github.com/geasyapp/geasy-server/internal/errors"
	"github.com/geasyapp/geasy-server/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestRequest struct {
	Quality  int    `json:"quality" validate:"required,gte=1,lte=5"`
	Workload int    `json:"workload" validate:"required,gte=1,lte=10"`
	Sort     string `json:"sort" validate:"omitempty,oneof=course quality workload score"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Quality:  4,
		Workload: 6,
		Sort:     "score",
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       TestRequest
		wantField string
	}{
		{
			name:      "missing required field",
			req:       TestRequest{Workload: 5},
			wantField: "quality",
		},
		{
			name:      "quality above range",
			req:       TestRequest{Quality: 6, Workload: 5},
			wantField: "quality",
		},
		{
			name:      "workload above range",
			req:       TestRequest{Quality: 3, Workload: 11},
			wantField: "workload",
		},
		{
			name:      "unknown sort",
			req:       TestRequest{Quality: 3, Workload: 5, Sort: "alphabetical"},
			wantField: "sort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			// Field errors use the JSON tag name.
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_MultipleFieldErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(TestRequest{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Len(t, details, 2)
}
