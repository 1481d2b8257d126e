package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnknownFamily      = errors.New("unknown metric family")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHistoryDisabled    = errors.New("history is disabled")
)

type Meta struct {
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type HistoryQuery struct {
	Limit int    `json:"limit" validate:"min=1,max=1000"`
	Since string `json:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ContainsAny matches s case-insensitively against xs. An entry ending
// in '*' is a prefix match; anything else is a substring match.
func ContainsAny(s string, xs []string) bool {
	s = strings.ToLower(s)

	for _, x := range xs {
		x = strings.ToLower(x)

		if strings.HasSuffix(x, "*") {
			if strings.HasPrefix(s, strings.TrimSuffix(x, "*")) {
				return true
			}
			continue
		}

		if strings.Contains(s, x) {
			return true
		}
	}

	return false
}
