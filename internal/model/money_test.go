package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole amount", input: "1", want: 100},
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "single cent", input: "0.01", want: 1},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds half up", input: "12.345", want: 1235},
		{name: "surrounding whitespace", input: " 2.50 ", want: 250},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "negative rejected", input: "-1", wantErr: true},
		{name: "explicit plus rejected", input: "+1", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
		{name: "double separator rejected", input: "1.2.3", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsRoundTrip(t *testing.T) {
	// Amounts must survive repeated write/read cycles without drift.
	cents := Cents(12.34)
	require.Equal(t, int64(1234), cents)

	for i := 0; i < 10; i++ {
		cents = Cents(MajorUnits(cents))
	}
	assert.Equal(t, int64(1234), cents)
	assert.Equal(t, "12.34", FormatCents(cents))
}

func TestCentsAbsorbsFloatNoise(t *testing.T) {
	// 0.1+0.2 is the classic binary float artifact; rounding must absorb it.
	assert.Equal(t, int64(30), Cents(0.1+0.2))
	assert.Equal(t, int64(0), Cents(0))
	assert.Equal(t, int64(0), Cents(-5))
}
