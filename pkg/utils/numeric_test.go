package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain decimal", input: "1850.25", want: 1850.25},
		{name: "integer", input: "75", want: 75},
		{name: "leading whitespace", input: " 3.14", want: 3.14},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "12.3abc", wantErr: true},
		{name: "nan", input: "NaN", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "50.00", FormatDecimal(50))
	assert.Equal(t, "62.35", FormatDecimal(62.345))
	assert.Equal(t, "0.00", FormatDecimal(0.0001))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-12.5, 0, 100))
	assert.Equal(t, 100.0, Clamp(130, 0, 100))
	assert.Equal(t, 55.5, Clamp(55.5, 0, 100))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 66.67, RoundTo(66.66666, 2))
	assert.Equal(t, 66.66, RoundTo(66.664, 2))
}
