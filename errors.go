package activerecord

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrUnknownConnection is returned when resolving a connection
	// name that was never registered.
	ErrUnknownConnection = errors.New("activerecord: unknown connection")

	// ErrNoDefaultConnection is returned when no connection is registered
	// and none was requested by name.
	ErrNoDefaultConnection = errors.New("activerecord: no default connection")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("activerecord: entity not found")

	// ErrUnknownRelation is returned when an eager-load request names a
	// relation that was never defined on the entity type.
	ErrUnknownRelation = errors.New("activerecord: unknown relation")

	// ErrInvalidRelatedType is returned when a relationship targets an
	// entity type that was never defined.
	ErrInvalidRelatedType = errors.New("activerecord: invalid related type")

	// ErrUnboundEntity is returned when persisting or querying through an
	// entity that was never bound to a registry.
	ErrUnboundEntity = errors.New("activerecord: entity not bound to a registry")
)

// UnknownConnectionError reports an unregistered connection name.
type UnknownConnectionError struct {
	Name string
}

// Error returns the error string.
func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("activerecord: unknown connection %q", e.Name)
}

// Is reports whether the target error matches ErrUnknownConnection.
func (e *UnknownConnectionError) Is(err error) bool {
	return err == ErrUnknownConnection
}

// IsUnknownConnection returns true if the error reports an unregistered connection.
func IsUnknownConnection(err error) bool {
	return errors.Is(err, ErrUnknownConnection)
}

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the ID that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("activerecord: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("activerecord: %s not found", e.label)
}

// Is reports whether the target error matches ErrNotFound.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the ID that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// UnknownRelationError reports an eager-load request for an undefined relation.
type UnknownRelationError struct {
	Entity   string
	Relation string
}

// Error returns the error string.
func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("activerecord: unknown relation %q on %s", e.Relation, e.Entity)
}

// Is reports whether the target error matches ErrUnknownRelation.
func (e *UnknownRelationError) Is(err error) bool {
	return err == ErrUnknownRelation
}

// IsUnknownRelation returns true if the error reports an undefined relation.
func IsUnknownRelation(err error) bool {
	return errors.Is(err, ErrUnknownRelation)
}

// InvalidRelatedTypeError reports a relationship whose target entity
// type cannot be constructed.
type InvalidRelatedTypeError struct {
	Name string
}

// Error returns the error string.
func (e *InvalidRelatedTypeError) Error() string {
	return fmt.Sprintf("activerecord: invalid related type %q", e.Name)
}

// Is reports whether the target error matches ErrInvalidRelatedType.
func (e *InvalidRelatedTypeError) Is(err error) bool {
	return err == ErrInvalidRelatedType
}

// IsInvalidRelatedType returns true if the error reports an undefined related type.
func IsInvalidRelatedType(err error) bool {
	return errors.Is(err, ErrInvalidRelatedType)
}
