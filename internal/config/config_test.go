package config_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Title string  `json:"title" validate:"required"`
	Marks float64 `json:"total_marks" validate:"gt=0"`
	Email string  `json:"email" validate:"omitempty,email"`
	Level string  `json:"level" validate:"omitempty,oneof=easy medium hard"`
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, config.Validate(samplePayload{Title: "Algebra", Marks: 10}))
	})

	t.Run("UsesJSONFieldNames", func(t *testing.T) {
		err := config.Validate(samplePayload{Marks: 10})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, "title is required", err.Error())
	})

	t.Run("GreaterThan", func(t *testing.T) {
		err := config.Validate(samplePayload{Title: "x"})
		require.Error(t, err)
		assert.Equal(t, "total_marks must be greater than 0", err.Error())
	})

	t.Run("OneOf", func(t *testing.T) {
		err := config.Validate(samplePayload{Title: "x", Marks: 1, Level: "expert"})
		require.Error(t, err)
		assert.Equal(t, "level must be one of [easy medium hard]", err.Error())
	})
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Forbidden", apperror.Forbidden("exam is not available"), http.StatusForbidden, "exam is not available"},
		{"Internal", errors.New("dial tcp 10.0.0.1:5432: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			config.WriteError(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestLoadSettingsAdminSignup(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/examly_test")
	t.Setenv("JWT_SECRET", "settings-test-secret")

	t.Run("DefaultsToDisabled", func(t *testing.T) {
		t.Setenv("ALLOW_ADMIN_SIGNUP", "")

		s, err := config.LoadSettings()
		require.NoError(t, err)
		assert.False(t, s.AllowAdminSignup)
		assert.Equal(t, "settings-test-secret", s.JWTSecret)
	})

	t.Run("Enabled", func(t *testing.T) {
		t.Setenv("ALLOW_ADMIN_SIGNUP", "true")

		s, err := config.LoadSettings()
		require.NoError(t, err)
		assert.True(t, s.AllowAdminSignup)
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Setenv("ALLOW_ADMIN_SIGNUP", "sometimes")

		_, err := config.LoadSettings()
		assert.EqualError(t, err, "ALLOW_ADMIN_SIGNUP must be a boolean")
	})
}
