package extension

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when an extension does not exist
	ErrNotFound = errors.New("extension not found")
	// ErrAlreadyExists is returned when creating an extension whose name is taken
	ErrAlreadyExists = errors.New("extension already exists")
	// ErrConflict is returned when an update carries a stale version
	ErrConflict = errors.New("extension version conflict")
	// ErrUnknownField is returned when a selector or sort references an unindexed field
	ErrUnknownField = errors.New("unknown field")
	// ErrReadOnly is returned by write operations on a read-only backend
	ErrReadOnly = errors.New("extension store is read-only")
)

// Metadata is the common header carried by every extension
type Metadata struct {
	Name              string            `json:"name" yaml:"name"`
	Labels            map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Annotations       map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Version           *int64            `json:"version,omitempty" yaml:"version,omitempty"`
	CreationTimestamp time.Time         `json:"creationTimestamp" yaml:"creationTimestamp"`
	DeletionTimestamp *time.Time        `json:"deletionTimestamp,omitempty" yaml:"deletionTimestamp,omitempty"`
}

// GetVersion returns the optimistic-lock version, or 0 when unset
func (m *Metadata) GetVersion() int64 {
	if m == nil || m.Version == nil {
		return 0
	}
	return *m.Version
}

// SetVersion sets the optimistic-lock version
func (m *Metadata) SetVersion(v int64) {
	m.Version = &v
}

// Object is implemented by every stored extension
type Object interface {
	GetMetadata() *Metadata
}

// NotFound builds an ErrNotFound for the given kind and name
func NotFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
}

// AlreadyExists builds an ErrAlreadyExists for the given kind and name
func AlreadyExists(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrAlreadyExists)
}

// Conflict builds an ErrConflict for the given kind and name
func Conflict(kind, name string, want, got int64) error {
	return fmt.Errorf("%s %q: expected version %d, got %d: %w", kind, name, want, got, ErrConflict)
}
