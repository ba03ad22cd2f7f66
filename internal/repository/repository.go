package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ListQuery holds limit/offset pagination parameters plus optional filters.
// Empty filter values mean "no filter".
type ListQuery struct {
	Limit    int
	Offset   int
	Category string
	Status   string
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type. Total counts all rows matching the filter,
// not just the returned page.
type PageResult[T any] struct {
	Items []T
	Total int
}
