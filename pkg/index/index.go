// SPDX-License-Identifier: MPL-2.0

// Package index provides a generic uniqueness index over in-memory entities.
//
// An Index is declared with one or more unique fields, each described by a key
// extraction function. Registering an entity records it under every declared
// field; the first entity to claim a field value keeps it. The index is built
// once per taxonomy build and entries are never removed.
//
// Identity is reference identity: two distinct entities with the same field
// value collide even if every other field is equal.
//
// An Index is not safe for concurrent mutation. Once all entities are added it
// may be read from multiple goroutines.
package index

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicateKey is the sentinel error wrapped by DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownField is the sentinel error wrapped by UnknownFieldError.
	ErrUnknownField = errors.New("unknown index field")
)

type (
	// Field declares one unique field of an indexed entity type.
	Field[T comparable] struct {
		// Name identifies the field in lookups (e.g., "id", "friendly_id").
		Name string
		// Key extracts the field value from an entity. Entities for which Key
		// returns "" are not registered under this field.
		Key func(T) string
	}

	// Index is a registry of entities keyed by one or more unique fields.
	Index[T comparable] struct {
		kind   string
		fields []Field[T]
		maps   map[string]map[string]T
		// order keeps canonical-field insertion order for deterministic All().
		order []T
	}

	// NotFoundError is returned by MustFind when no entity is registered for a value.
	NotFoundError struct {
		Kind  string
		Field string
		Value string
	}

	// DuplicateKeyError is returned when an entity claims a field value already
	// registered to a different entity.
	DuplicateKeyError struct {
		Kind  string
		Field string
		Value string
	}

	// UnknownFieldError is returned when a lookup names a field the index does
	// not declare. This is a programming error, not a data error.
	UnknownFieldError struct {
		Kind  string
		Field string
	}
)

// New creates an Index for entities of the given kind (used in error messages)
// keyed by the given fields. The first field is canonical: All and Size
// enumerate it. New panics if no fields are declared or a field name repeats,
// since both are programming errors.
func New[T comparable](kind string, fields ...Field[T]) *Index[T] {
	if len(fields) == 0 {
		panic("index: at least one field is required")
	}
	maps := make(map[string]map[string]T, len(fields))
	for _, f := range fields {
		if _, exists := maps[f.Name]; exists {
			panic(fmt.Sprintf("index: field %q declared twice", f.Name))
		}
		maps[f.Name] = make(map[string]T)
	}
	return &Index[T]{
		kind:   kind,
		fields: slices.Clone(fields),
		maps:   maps,
	}
}

// Add registers entity under every declared field. Field values already
// claimed by another entity are left untouched.
func (idx *Index[T]) Add(entity T) {
	canonical := idx.fields[0]
	for _, f := range idx.fields {
		key := f.Key(entity)
		if key == "" {
			continue
		}
		m := idx.maps[f.Name]
		if _, claimed := m[key]; claimed {
			continue
		}
		m[key] = entity
		if f.Name == canonical.Name {
			idx.order = append(idx.order, entity)
		}
	}
}

// Duplicate reports whether the value of field on entity is already registered
// to a different entity.
func (idx *Index[T]) Duplicate(entity T, field string) (bool, error) {
	f, m, err := idx.field(field)
	if err != nil {
		return false, err
	}
	key := f.Key(entity)
	if key == "" {
		return false, nil
	}
	existing, ok := m[key]
	return ok && existing != entity, nil
}

// CheckUnique returns a DuplicateKeyError for the first declared field whose
// value on entity is registered to a different entity, or nil.
func (idx *Index[T]) CheckUnique(entity T) error {
	for _, f := range idx.fields {
		key := f.Key(entity)
		if key == "" {
			continue
		}
		if existing, ok := idx.maps[f.Name][key]; ok && existing != entity {
			return &DuplicateKeyError{Kind: idx.kind, Field: f.Name, Value: key}
		}
	}
	return nil
}

// Find returns the entity registered for value under field. The boolean is
// false when nothing is registered; that is not an error.
func (idx *Index[T]) Find(field, value string) (T, bool, error) {
	var zero T
	_, m, err := idx.field(field)
	if err != nil {
		return zero, false, err
	}
	entity, ok := m[value]
	return entity, ok, nil
}

// MustFind is like Find but returns a NotFoundError when nothing is registered.
func (idx *Index[T]) MustFind(field, value string) (T, error) {
	entity, ok, err := idx.Find(field, value)
	if err != nil {
		return entity, err
	}
	if !ok {
		return entity, &NotFoundError{Kind: idx.kind, Field: field, Value: value}
	}
	return entity, nil
}

// All returns a snapshot of every registered entity in registration order.
func (idx *Index[T]) All() []T {
	return slices.Clone(idx.order)
}

// Size returns the number of registered entities.
func (idx *Index[T]) Size() int {
	return len(idx.order)
}

func (idx *Index[T]) field(name string) (Field[T], map[string]T, error) {
	for _, f := range idx.fields {
		if f.Name == name {
			return f, idx.maps[name], nil
		}
	}
	return Field[T]{}, nil, &UnknownFieldError{Kind: idx.kind, Field: name}
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %q not found", e.Kind, e.Field, e.Value)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for DuplicateKeyError.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %s %q is already taken", e.Kind, e.Field, e.Value)
}

// Unwrap returns ErrDuplicateKey for errors.Is() compatibility.
func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// Error implements the error interface for UnknownFieldError.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s index has no field %q", e.Kind, e.Field)
}

// Unwrap returns ErrUnknownField for errors.Is() compatibility.
func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }
