package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/models"
)

func TestProfileEndpoints(t *testing.T) {
	ta := newTestApp(t)

	profile := decodeJSON[models.User](t, ta.do(t, http.MethodGet, "/api/profile", nil, http.StatusOK))
	assert.Equal(t, "ann", profile.Name)
	assert.Equal(t, models.DefaultLanguage, profile.Language)

	updated := decodeJSON[models.User](t, ta.do(t, http.MethodPut, "/api/profile", map[string]any{
		"language":             "RU",
		"average_cycle_length": 32,
	}, http.StatusOK))
	assert.Equal(t, "ru", updated.Language)
	assert.Equal(t, 32, updated.AverageCycleLength)
	assert.Equal(t, models.DefaultPeriodLength, updated.AveragePeriodLength)

	stored, err := ta.repos.Users.FindByID(ta.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 32, stored.AverageCycleLength)
}

func TestProfileUpdateValidation(t *testing.T) {
	ta := newTestApp(t)

	tests := []struct {
		name  string
		input any
	}{
		{name: "unsupported language", input: map[string]any{"language": "de"}},
		{name: "cycle too short", input: map[string]any{"average_cycle_length": 10}},
		{name: "period too long", input: map[string]any{"average_period_length": 20}},
		{name: "incompatible pair", input: map[string]any{"average_cycle_length": 18, "average_period_length": 6}},
		{name: "malformed body", input: "{"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ta.do(t, http.MethodPut, "/api/profile", test.input, http.StatusBadRequest)
		})
	}

	stored, err := ta.repos.Users.FindByID(ta.user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCycleLength, stored.AverageCycleLength)
}
