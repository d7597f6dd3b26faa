package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("MONEYPAL_TEST_DIR", "/data/moneypal")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain path", input: "/tmp/moneypal.db", expected: "/tmp/moneypal.db"},
		{name: "home shorthand", input: "~", expected: home},
		{name: "home prefix", input: "~/ledger.db", expected: filepath.Join(home, "ledger.db")},
		{name: "env variable", input: "$MONEYPAL_TEST_DIR/ledger.db", expected: "/data/moneypal/ledger.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}
