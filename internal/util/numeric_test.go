package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNum Number
		wantOk  bool
	}{
		{
			name:    "positive integer",
			input:   "42",
			wantNum: Number{Int: 42, IsInt: true},
			wantOk:  true,
		},
		{
			name:    "negative integer",
			input:   "-123",
			wantNum: Number{Int: -123, IsInt: true, IsNegative: true},
			wantOk:  true,
		},
		{
			name:    "platform safe integer",
			input:   "9007199254740991",
			wantNum: Number{Int: 9007199254740991, IsInt: true},
			wantOk:  true,
		},
		{
			name:    "positive float",
			input:   "3.14",
			wantNum: Number{Float: 3.14, IsFloat: true},
			wantOk:  true,
		},
		{
			name:    "negative float",
			input:   "-2.5",
			wantNum: Number{Float: -2.5, IsFloat: true, IsNegative: true},
			wantOk:  true,
		},
		{
			name:    "hexadecimal",
			input:   "0xFF",
			wantNum: Number{Int: 255, IsInt: true},
			wantOk:  true,
		},
		{
			name:    "scientific notation",
			input:   "1e3",
			wantNum: Number{Float: 1000.0, IsFloat: true},
			wantOk:  true,
		},
		{
			name:   "invalid input",
			input:  "not-a-number",
			wantOk: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNum, gotOk := ParseNumeric(tt.input)

			assert.Equal(t, tt.wantOk, gotOk)
			if tt.wantOk {
				assert.Equal(t, tt.wantNum, gotNum)
				if gotNum.IsInt {
					assert.Equal(t, float64(tt.wantNum.Int), gotNum.Float64())
				} else {
					assert.Equal(t, tt.wantNum.Float, gotNum.Float64())
				}
			}
		})
	}
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, -2.5, Min(3.0, -2.5))
	assert.Equal(t, uint8(0), Min(uint8(0), uint8(0)))
}
