package utils

import (
	"net/http"
	"strconv"
)

// QueryInt returns a non-negative integer query parameter, or def when the
// value is absent, malformed or negative.
func QueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

type PageOptions struct {
	Limit  int
	Offset int
}

func ParsePageOptions(r *http.Request, defLimit int) PageOptions {
	return PageOptions{
		Limit:  QueryInt(r, "limit", defLimit),
		Offset: QueryInt(r, "offset", 0),
	}
}
