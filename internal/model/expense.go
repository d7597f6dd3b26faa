// Package model defines the core domain types for the expense tracker.
package model

import (
	"errors"
	"strings"
	"time"
)

// DefaultCurrency is the only currency the ledger records.
const DefaultCurrency = "USD"

// Expense is a single recorded purchase. OccurredAt carries the user-chosen
// date with the time component fixed to midnight; CreatedAt is the instant
// the record was written.
type Expense struct {
	OccurredAt  time.Time
	CreatedAt   time.Time
	Currency    string
	Note        string
	Category    Category
	Tags        []TagName
	ID          int64
	AmountCents int64
}

// Tag is a reusable label attached to expenses. Names are unique
// case-insensitively; the first-seen casing is preserved.
type Tag struct {
	Name TagName
	ID   int64
}

// ErrEmptyTagName indicates a tag name that is empty after trimming.
var ErrEmptyTagName = errors.New("tag name cannot be empty")

// TagName is a validated tag label. Construct via NewTagName or
// NormalizeTagNames so empty values never reach storage.
type TagName string

// NewTagName trims the raw value and rejects empty names.
func NewTagName(raw string) (TagName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyTagName
	}
	return TagName(trimmed), nil
}

// Key returns the case-folded form used for uniqueness comparisons.
func (t TagName) Key() string {
	return strings.ToLower(string(t))
}

func (t TagName) String() string {
	return string(t)
}

// NormalizeTagNames trims, drops empties, and deduplicates the given values
// case-insensitively, keeping the first-seen casing and order.
func NormalizeTagNames(values []string) []TagName {
	if len(values) == 0 {
		return nil
	}
	out := make([]TagName, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		name, err := NewTagName(v)
		if err != nil {
			continue
		}
		if _, dup := seen[name.Key()]; dup {
			continue
		}
		seen[name.Key()] = struct{}{}
		out = append(out, name)
	}
	return out
}

// TagNameStrings converts tag names to plain strings for display.
func TagNameStrings(tags []TagName) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}
