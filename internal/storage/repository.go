package storage

import "errors"

// ErrNotFound is returned when no entry has the requested id
var ErrNotFound = errors.New("not found")

// Entity is anything stored by id
type Entity interface {
	ID() string
}

// Repository defines the interface for live session storage.
// Sessions are process-lifetime only.
type Repository[T Entity] interface {
	Create(v T) error
	Get(id string) (T, error)
	Delete(id string) (T, error)
	List() []T
	Len() int
}
