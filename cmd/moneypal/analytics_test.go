package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyticsSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range analyticsCmd().Commands() {
		names[sub.Name()] = true
	}

	// Every aggregation query has a surface here.
	for _, want := range []string{
		"monthly", "weekly", "categories", "kpi",
		"savings", "tags", "tags-monthly", "tag",
	} {
		assert.True(t, names[want], "missing analytics subcommand %q", want)
	}
}
