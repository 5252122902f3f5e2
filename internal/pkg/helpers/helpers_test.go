package helpers

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// maxOffset is the largest multiple of 20 a signed 64-bit OFFSET accepts.
const maxOffset uint64 = math.MaxInt64 / 20 * 20

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		wantNumber int
		wantOffset uint64
	}{
		{"", 0, 0},
		{"?page=0", 0, 0},
		{"?page=1", 1, 20},
		{"?page=3", 3, 60},
		{"?page=-2", 0, 0},
		{"?page=abc", 0, 0},
		{"?page=500000000000000000", 500000000000000000, maxOffset},
		{"?page=9223372036854775807", math.MaxInt, maxOffset},
		{"?page=99999999999999999999", math.MaxInt, maxOffset},
		{"?page=-99999999999999999999", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/courses"+tt.query, nil)

			p := ParsePage(c, 20)
			if p.Number != tt.wantNumber {
				t.Errorf("number = %d, want %d", p.Number, tt.wantNumber)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", p.Offset(), tt.wantOffset)
			}
			if p.Limit() != 20 {
				t.Errorf("limit = %d, want 20", p.Limit())
			}
		})
	}
}

func TestPageLimitFallback(t *testing.T) {
	if got := (Page{Number: 2}).Limit(); got != DefaultPageSize {
		t.Errorf("limit = %d, want %d", got, DefaultPageSize)
	}
}

func TestCode(t *testing.T) {
	tests := map[string]string{
		"42":               "42",
		"AA":               "aa",
		" MC001 ":          "mc001",
		"Ciência da Comp":  "ciencia-da-comp",
		"Eng. de Software": "eng-de-software",
		"!!!":              "",
		"":                 "",
	}
	for in, want := range tests {
		if got := Code(in); got != want {
			t.Errorf("Code(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNullHelpers(t *testing.T) {
	n := 7
	if got := IntPtr(GetNullInt64(&n)); got == nil || *got != 7 {
		t.Errorf("round trip int = %v", got)
	}
	if IntPtr(GetNullInt64(nil)) != nil {
		t.Error("nil int should stay nil")
	}
	s := "lab"
	if got := StringPtr(GetNullString(&s)); got == nil || *got != "lab" {
		t.Errorf("round trip string = %v", got)
	}
}
