package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID parses a numeric URL parameter; ok is false for anything that is not
// a positive integer.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pagination reads skip/limit query params with the defaults the API has
// always used (skip=0, limit=10) and a hard cap on limit.
func pagination(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}
