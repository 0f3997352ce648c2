package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

func TestFlexibleID_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    domain.FlexibleID
		wantErr bool
	}{
		{name: "string", input: `{"id":"abc-1"}`, want: "abc-1"},
		{name: "integer", input: `{"id":42}`, want: "42"},
		{name: "null", input: `{"id":null}`, want: ""},
		{name: "absent", input: `{}`, want: ""},
		{name: "empty string", input: `{"id":""}`, want: ""},
		{name: "bool", input: `{"id":true}`, wantErr: true},
		{name: "object", input: `{"id":{"x":1}}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				ID domain.FlexibleID `json:"id"`
			}
			err := json.Unmarshal([]byte(tc.input), &payload)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if payload.ID != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, payload.ID)
			}
		})
	}
}
