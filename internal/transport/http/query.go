package http

import (
	"net/url"
	"strconv"
	"time"
)

func GetString(q url.Values, key string, def string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return def
}

func GetInt(q url.Values, key string, def int) int {
	if v := q.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// GetTime parses an RFC 3339 value; anything else yields the zero time.
func GetTime(q url.Values, key string) time.Time {
	if v := q.Get(key); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
