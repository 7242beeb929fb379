package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/carepoint/clinic-api/query"
)

const defaultPageSize = 10

// getPage reads the 1-based page index from the request, defaulting to 1
func getPage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		zap.S().Warnf("cannot process page number, using 1. Got: %v", raw)
		return 1
	}
	return page
}

// getLimit reads the page size from the request, defaulting to defaultPageSize
func getLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultPageSize
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		zap.S().Warnf("limit not usable, using default of %v. Got: %v", defaultPageSize, raw)
		return defaultPageSize
	}
	return limit
}

// getDirection reads the sort direction, defaulting to ascending
func getDirection(r *http.Request) query.Direction {
	if r.URL.Query().Get("dir") == "desc" {
		return query.Descending
	}
	return query.Ascending
}

// listResponse is the envelope every paginated list endpoint returns
type listResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}
