package validation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
)

type slot struct {
	Weekday *int   `json:"weekday" validate:"required"`
	Room    string `json:"room"`
}

type sample struct {
	ID       string `json:"-"`
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	CourseID string `json:"-" field:"course" validate:"required"`
	Credits  *int   `json:"credits" validate:"required"`
	Mask     string `json:"mask" validate:"mask"`
	Slots    []slot `json:"schedules" validate:"dive"`
}

func TestStructReportsEveryField(t *testing.T) {
	err := Struct(&sample{Slots: []slot{{Room: "cb01"}}})

	var v *apperrors.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := map[string]string{
		"code":                 "required",
		"name":                 "required",
		"course":               "required",
		"credits":              "required",
		"schedules[0].weekday": "required",
	}
	if !reflect.DeepEqual(v.Fields, want) {
		t.Errorf("fields = %v, want %v", v.Fields, want)
	}
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Error("should unwrap to ErrValidationFailed")
	}
}

func TestStructZeroIsPresentForPointers(t *testing.T) {
	zero := 0
	s := &sample{Code: "mc001", Name: "Algorithms", CourseID: "c", Credits: &zero}
	if err := Struct(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMaskRule(t *testing.T) {
	one := 1
	base := sample{Code: "x", Name: "x", CourseID: "c", Credits: &one}

	for _, mask := range []string{"MC---", "F-6--", "-"} {
		s := base
		s.Mask = mask
		if err := Struct(&s); err != nil {
			t.Errorf("mask %q rejected: %v", mask, err)
		}
	}

	s := base
	s.Mask = "MC001"
	v, ok := apperrors.AsValidation(Struct(&s))
	if !ok || v.Fields["mask"] != "invalid" {
		t.Errorf("mask without dash should be invalid, got %v", v)
	}
}

func TestNoDashRule(t *testing.T) {
	type keyPart struct {
		Period string `json:"period" validate:"required,nodash"`
	}

	tests := []struct {
		period string
		want   map[string]string
	}{
		{"1", nil},
		{"summer", nil},
		{"summer-1", map[string]string{"period": "invalid"}},
		{"", map[string]string{"period": "required"}},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			err := Struct(&keyPart{Period: tt.period})
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			v, ok := apperrors.AsValidation(err)
			if !ok || !reflect.DeepEqual(v.Fields, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
