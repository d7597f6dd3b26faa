package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "stored key", input: "groceris", want: CategoryGroceries},
		{name: "display label", input: "Groceries", want: CategoryGroceries},
		{name: "case insensitive", input: "FUN", want: CategoryFun},
		{name: "home label", input: "home", want: CategoryHome},
		{name: "home stored key", input: "home exp", want: CategoryHome},
		{name: "whitespace trimmed", input: " travel ", want: CategoryTravel},
		{name: "unknown rejected", input: "gambling", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "Groceries", CategoryGroceries.Label())
	assert.Equal(t, "Home", CategoryHome.Label())
	assert.Equal(t, "Misc", CategoryMisc.Label())
}

func TestCategoriesClosedSet(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	for _, cat := range cats {
		assert.True(t, cat.Valid())
	}
	assert.False(t, Category("gambling").Valid())
}
