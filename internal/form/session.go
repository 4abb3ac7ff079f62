// Package form tracks a mutable draft of one entity against an initial
// snapshot. A session is created when a detail screen opens and thrown
// away on close; a successful submit re-baselines the snapshot to the
// saved record.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ValidationError names the field that blocked a submit. It is reported
// to the user as a warning; the draft stays open and dirty.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pole %q je povinné", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a required-field validation error.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validator checks a draft before it is sent to the save service.
// A nil return means the draft may be submitted.
type Validator[T any] func(value T) *ValidationError

// Saver persists a draft through the external service and returns the
// saved record.
type Saver[T any] func(ctx context.Context, value T) (T, error)

// Session is the draft state of one open detail screen.
type Session[T any] struct {
	baseline []byte
	value    T
	validate Validator[T]
	save     Saver[T]
}

// Open snapshots the entity as the dirty-tracking baseline. The draft
// starts clean.
func Open[T any](entity T, validate Validator[T], save Saver[T]) *Session[T] {
	return &Session[T]{
		baseline: snapshot(entity),
		value:    entity,
		validate: validate,
		save:     save,
	}
}

// Value returns the current draft value.
func (s *Session[T]) Value() T { return s.value }

// Set replaces the draft value.
func (s *Session[T]) Set(value T) { s.value = value }

// Update applies a mutation to the draft in place.
func (s *Session[T]) Update(mutate func(*T)) {
	mutate(&s.value)
}

// Dirty reports whether the draft structurally differs from the
// baseline snapshot. A patch that restores the original values clears
// the flag again.
func (s *Session[T]) Dirty() bool {
	return !bytes.Equal(snapshot(s.value), s.baseline)
}

// Submit validates the draft and, when valid, persists it through the
// save service. On success the baseline resets to the saved record (the
// draft is clean again) and the saved record is returned so the caller
// can refresh its list cache. A validation failure is returned as a
// *ValidationError without touching the service.
func (s *Session[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	if s.validate != nil {
		if verr := s.validate(s.value); verr != nil {
			return zero, verr
		}
	}
	if s.save == nil {
		return zero, fmt.Errorf("form: no save service registered")
	}
	saved, err := s.save(ctx, s.value)
	if err != nil {
		return zero, err
	}
	s.value = saved
	s.baseline = snapshot(saved)
	return saved, nil
}

func snapshot[T any](v T) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Drafts are plain data records; a marshal failure means a
		// programming error in the entity type.
		panic(fmt.Sprintf("form: snapshot: %v", err))
	}
	return data
}
