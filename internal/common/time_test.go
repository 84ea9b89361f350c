package common

import (
	"strings"
	"testing"
	"time"
)

func TestRFC3339MicrosConstant(t *testing.T) {
	if RFC3339Micros != "2006-01-02T15:04:05.000000Z" {
		t.Fatalf("unexpected RFC3339Micros value: %s", RFC3339Micros)
	}

	now := time.Now().UTC()
	formatted := now.Format(RFC3339Micros)

	if !strings.HasSuffix(formatted, "Z") {
		t.Fatalf("formatted time should end with Z: %s", formatted)
	}
	if len(formatted) != 27 {
		t.Fatalf("formatted time should be 27 chars, got %d: %s", len(formatted), formatted)
	}
	if formatted[19] != '.' {
		t.Fatalf("formatted time should have dot at position 19: %s", formatted)
	}
}
