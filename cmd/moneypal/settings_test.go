package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain amount", input: "12.34", want: 1234},
		{name: "comma decimal", input: "12,34", want: 1234},
		{name: "whole number", input: "100", want: 10000},
		{name: "zero", input: "0", want: 0},
		{name: "zero one decimal", input: "0.0", want: 0},
		{name: "zero two decimals", input: "0.00", want: 0},
		{name: "zero comma", input: "0,00", want: 0},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmountValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
