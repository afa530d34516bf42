package controllers

import (
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, p filterParams, query string) (repositories.JobCardFilter, error) {
	t.Helper()
	var (
		got    repositories.JobCardFilter
		gotErr error
	)
	app := fiber.New()
	app.Get("/", func(ctx *fiber.Ctx) error {
		got, gotErr = parseJobCardFilter(ctx, p)
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?"+query, nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	return got, gotErr
}

func TestParseJobCardFilter(t *testing.T) {
	f, err := parseWith(t, reportParams, "region_id=3&technician_id=7&start_date=2025-01-01&end_date=2025-01-31")
	require.NoError(t, err)
	require.NotNil(t, f.RegionID)
	assert.Equal(t, uint(3), *f.RegionID)
	assert.Nil(t, f.CustomerID)
	assert.Equal(t, uint(7), *f.TechnicianID)
	assert.Equal(t, "r3:c-:t7:s2025-01-01:e2025-01-31", f.Key())

	f, err = parseWith(t, jobCardListParams, "customer=9")
	require.NoError(t, err)
	assert.Equal(t, uint(9), *f.CustomerID)
}

func TestParseJobCardFilterErrors(t *testing.T) {
	_, err := parseWith(t, reportParams, "region_id=abc&start_date=2025-02-01&end_date=2025-01-01")
	var ve *utils.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "region_id")
	assert.Equal(t, "end_date must not be before start_date", ve.Fields["end_date"])

	_, err = parseWith(t, reportParams, "start_date=01/02/2025")
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "start_date")
}
