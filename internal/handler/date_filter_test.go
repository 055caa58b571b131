package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/activities?from=2024-01-10", nil)

	got, err := parseDateQuery(req, "from")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *got)

	missing, err := parseDateQuery(req, "to")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseDateQueryRejectsBadFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/activities?from=10.01.2024", nil)

	got, err := parseDateQuery(req, "from")
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestDateRangeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sales?from=2024-01-01&to=2024-01-31", nil)

	from, to, err := dateRangeQuery(req)
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *to)

	req = httptest.NewRequest(http.MethodGet, "/sales?to=bogus", nil)
	_, _, err = dateRangeQuery(req)
	assert.Error(t, err)
}
