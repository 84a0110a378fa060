package main

import (
	"database/sql/driver"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthChartPNGHandler(t *testing.T) {
	env := testEnv(&fakeDB{rowsByLot: map[int64][][]driver.Value{
		7: {
			{day(2024, time.January, 1), "100"},
			{day(2024, time.January, 8), "150"},
			{day(2024, time.January, 15), "230"},
		},
	}})

	rec := get(env, "/growth-data/7/png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	body := rec.Body.Bytes()
	require.True(t, len(body) > 8, "png body should not be empty")
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), body[:8])
}

func TestGrowthChartPNGHandlerNoData(t *testing.T) {
	env := testEnv(&fakeDB{})

	rec := get(env, "/growth-data/7/png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data found for this lot ID")
}
