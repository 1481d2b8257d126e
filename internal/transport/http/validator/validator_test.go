package validator

import (
	"testing"

	"socprobe/internal/domain"
)

func TestHistoryQuery(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		query domain.HistoryQuery
		field string
	}{
		{"valid", domain.HistoryQuery{Limit: 50}, ""},
		{"valid since", domain.HistoryQuery{Limit: 1, Since: "2026-03-01T12:00:00Z"}, ""},
		{"zero limit", domain.HistoryQuery{Limit: 0}, "limit"},
		{"huge limit", domain.HistoryQuery{Limit: 5000}, "limit"},
		{"bad since", domain.HistoryQuery{Limit: 10, Since: "yesterday"}, "since"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.query)
			if tt.field == "" {
				if len(errs) != 0 {
					t.Errorf("unexpected errors %v", errs)
				}
				return
			}
			if _, ok := errs[tt.field]; !ok || len(errs) != 1 {
				t.Errorf("errors = %v, want one for %q", errs, tt.field)
			}
		})
	}
}

func TestTokenRequest(t *testing.T) {
	errs := NewValidator().Validate(&domain.TokenRequest{APIKey: "short"})
	if errs["api_key"] != "api_key must be at least 16 characters" {
		t.Errorf("errors = %v", errs)
	}
}
