package model

// Package model contains domain models/data structures.
// Keep it free of business logic; persistence and HTTP concerns live elsewhere.

// Document status values. The status field carries no transition rules:
// any value may change to any other.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusProcessing = "processing"
)

// DefaultCategory is applied when a create request omits the category.
const DefaultCategory = "general"

// ValidStatus reports whether s is one of the known document statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusProcessing:
		return true
	}
	return false
}
