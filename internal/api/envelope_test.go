package api

import (
	"encoding/json"
	"testing"
)

func TestSuccessEnvelope(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	env := Success(payload{Name: "alice"})
	if !env.Success {
		t.Fatalf("expected success true")
	}
	if env.Data == nil || env.Data.Name != "alice" {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
	if env.Error != nil || env.Pagination != nil || env.Message != "" {
		t.Fatalf("success envelope should carry data only: %+v", env)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"success":true,"data":{"name":"alice"}}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, string(data))
	}
}

func TestSuccessMessageEnvelope(t *testing.T) {
	env := SuccessMessage(struct{}{}, "VA saved successfully")
	if !env.Success {
		t.Fatalf("expected success true")
	}
	if env.Message != "VA saved successfully" {
		t.Fatalf("unexpected message: %s", env.Message)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"success":true,"message":"VA saved successfully","data":{}}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, string(data))
	}
}

func TestSuccessPageEnvelope(t *testing.T) {
	env := SuccessPage([]string{"a", "b"}, NewPage(2, 20, 45))
	if !env.Success {
		t.Fatalf("expected success true")
	}
	if env.Pagination == nil {
		t.Fatalf("expected pagination to be set")
	}
	if env.Pagination.Page != 2 || env.Pagination.Limit != 20 {
		t.Fatalf("unexpected pagination: %+v", env.Pagination)
	}
}

func TestNewPageComputesCeiling(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		pages int
	}{
		{"exact multiple", 1, 20, 40, 2},
		{"partial last page", 1, 20, 45, 3},
		{"single item", 1, 20, 1, 1},
		{"empty", 1, 20, 0, 0},
		{"limit one", 3, 1, 7, 7},
		{"zero limit", 1, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.page, tt.limit, tt.total)
			if p.Pages != tt.pages {
				t.Fatalf("NewPage(%d, %d, %d).Pages = %d, want %d", tt.page, tt.limit, tt.total, p.Pages, tt.pages)
			}
			if p.Page != tt.page || p.Limit != tt.limit || p.Total != tt.total {
				t.Fatalf("unexpected page metadata: %+v", p)
			}
		})
	}
}

func TestFailureEnvelope(t *testing.T) {
	details := []FieldIssue{{Field: "vaId", Issue: "required"}}
	env := Failure[struct{}]("VALIDATION_ERROR", "validation failed", details)

	if env.Success {
		t.Fatalf("expected success false")
	}
	if env.Data != nil {
		t.Fatalf("failure envelope should not carry data")
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" || env.Error.Message != "validation failed" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
	if len(env.Error.Details) != 1 || env.Error.Details[0].Field != "vaId" {
		t.Fatalf("unexpected details: %+v", env.Error.Details)
	}

	// Failure copies the details slice so later mutation cannot leak in.
	details[0].Issue = "mutated"
	if env.Error.Details[0].Issue != "required" {
		t.Fatalf("details should be cloned, got %+v", env.Error.Details)
	}
}

func TestFailureEnvelopeOmitsEmptyDetails(t *testing.T) {
	env := Failure[struct{}]("NOT_FOUND", "resource not found", nil)

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"success":false,"error":{"code":"NOT_FOUND","message":"resource not found"}}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, string(data))
	}
}
