package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "dedupes case insensitively keeping first casing",
			input: []string{"Costco", "costco", " COSTCO "},
			want:  []string{"Costco"},
		},
		{
			name:  "drops empties",
			input: []string{" ", "", "coffee"},
			want:  []string{"coffee"},
		},
		{
			name:  "preserves order",
			input: []string{"b", "a", "B"},
			want:  []string{"b", "a"},
		},
		{
			name:  "trims whitespace",
			input: []string{"  road trip  "},
			want:  []string{"road trip"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTagNames(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, TagNameStrings(got))
		})
	}
}

func TestNewTagName(t *testing.T) {
	name, err := NewTagName("  Coffee ")
	require.NoError(t, err)
	assert.Equal(t, "Coffee", name.String())
	assert.Equal(t, "coffee", name.Key())

	_, err = NewTagName("   ")
	assert.ErrorIs(t, err, ErrEmptyTagName)
}
