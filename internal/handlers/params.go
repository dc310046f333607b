package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// parseID extracts the numeric {id} route parameter. A malformed id is
// treated like a missing record by the callers, so no 400 path exists here.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
