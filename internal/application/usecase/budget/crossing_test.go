package budget

import (
	"reflect"
	"testing"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func TestDetectCrossings(t *testing.T) {
	warning := entity.AlertKindWarning
	exceeded := entity.AlertKindExceeded

	tests := []struct {
		name      string
		before    string
		after     string
		threshold int
		want      []entity.AlertKind
	}{
		{"stays below threshold", "10", "50", 80, nil},
		{"crosses threshold", "0", "85", 80, []entity.AlertKind{warning}},
		{"lands exactly on threshold", "70", "80", 80, []entity.AlertKind{warning}},
		{"already past threshold", "85", "95", 80, nil},
		{"crosses 100 after warning", "85", "105", 80, []entity.AlertKind{exceeded}},
		{"lands exactly on 100", "90", "100", 80, []entity.AlertKind{exceeded}},
		{"jumps over both marks", "0", "120", 80, []entity.AlertKind{warning, exceeded}},
		{"already exceeded stays silent", "110", "150", 80, nil},
		{"threshold 100 fires once", "0", "120", 100, []entity.AlertKind{exceeded}},
		{"threshold 100 exact landing fires once", "50", "100", 100, []entity.AlertKind{exceeded}},
		{"threshold 100 not reached", "50", "99.99", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCrossings(dec(tt.before), dec(tt.after), tt.threshold)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectCrossings(%s, %s, %d) = %v, want %v", tt.before, tt.after, tt.threshold, got, tt.want)
			}
		})
	}
}
