package usecase

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		want      int
		defaulted bool
	}{
		{"missing", nil, 1, true},
		{"int", 3, 3, false},
		{"int64", int64(7), 7, false},
		{"integral float", 2.0, 2, false},
		{"fractional float", 2.5, 1, true},
		{"numeric string", " 4 ", 4, false},
		{"word", "two", 1, true},
		{"empty string", "", 1, true},
		{"zero", 0, 1, true},
		{"negative", -2, 1, true},
		{"negative string", "-5", 1, true},
		{"json number", json.Number("5"), 5, false},
		{"json number float", json.Number("6.0"), 6, false},
		{"json number fraction", json.Number("1.5"), 1, true},
		{"too large", int64(math.MaxInt32) + 1, 1, true},
		{"nan", math.NaN(), 1, true},
		{"bool", true, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuantity(tt.raw)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.defaulted, got.Defaulted)
		})
	}
}
