package service

import "context"

// Action identifies a mutating document operation for authorization checks.
type Action string

const (
	ActionCreate Action = "documents.create"
	ActionUpdate Action = "documents.update"
	ActionDelete Action = "documents.delete"
)

// AuthorizationPolicy is consulted before every mutating operation.
// Implementations return ErrForbidden (or an error wrapping it) to deny.
// The policy is injected configuration, not global state; the default
// deployment permits everything.
type AuthorizationPolicy interface {
	Authorize(ctx context.Context, action Action) error
}

// AllowAll permits every action.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Action) error { return nil }
