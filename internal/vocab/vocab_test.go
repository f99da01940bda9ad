package vocab

import (
	"errors"
	"testing"

	"github.com/solatis/otds/internal/types"
)

func TestParseVocabularies(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (string, error)
		input   string
		want    string
		wantErr bool
	}{
		{"update mode default", wrap(ParseUpdateMode), "New", "New", false},
		{"update mode lower case", wrap(ParseUpdateMode), "new", "", true},
		{"evaluation base with space", wrap(ParseEvaluationBase), "Person Day", "Person Day", false},
		{"date format picture", wrap(ParseDateFormat), "[D01][M01][Y01]", "[D01][M01][Y01]", false},
		{"distribution channel", wrap(ParseDistributionChannel), "Bewotec", "Bewotec", false},
		{"unknown distribution channel", wrap(ParseDistributionChannel), "Amadeus", "", true},
		{"board type None", wrap(ParseBoardType), "None", "None", false},
		{"unit facility", wrap(ParseUnitFacility), "SeaView", "SeaView", false},
		{"empty string", wrap(ParseShift), "", "", true},
		{"weekday", wrap(ParseWeekday), "Saturday", "Saturday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, types.ErrMalformedValue) {
					t.Fatalf("parse(%q) error = %v, want ErrMalformedValue", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProductTypes(t *testing.T) {
	got := ProductTypes()
	if len(got) != 5 {
		t.Fatalf("len(ProductTypes()) = %d, want 5", len(got))
	}
	got[0] = "mutated"
	if ProductTypes()[0] != ProductAccommodationOnly {
		t.Errorf("ProductTypes() exposes its backing slice")
	}
}

func wrap[T ~string](parse func(string) (T, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		v, err := parse(s)
		return string(v), err
	}
}
