package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// parseDateQuery reads an optional YYYY-MM-DD query parameter. Absent
// means nil filter, not an error.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// dateRangeQuery reads the optional from/to pair used by list endpoints.
func dateRangeQuery(r *http.Request) (from, to *time.Time, err error) {
	if from, err = parseDateQuery(r, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = parseDateQuery(r, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// idParam reads the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
