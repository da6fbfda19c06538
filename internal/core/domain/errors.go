package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrEmptyGraph indicates an operation needs at least one node.
	ErrEmptyGraph = errors.New("graph is empty")

	// Persistence Errors.

	// ErrStorageRead indicates the persisted collection could not be read or decoded.
	// Reads degrade to an empty collection; this error is only logged.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite indicates the persisted collection could not be written.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageQuota indicates the serialized collection exceeds the storage quota.
	ErrStorageQuota = errors.New("storage quota exceeded")

	// ErrInvalidImport indicates an import payload does not match the export envelope.
	// No partial import is performed.
	ErrInvalidImport = errors.New("invalid import format")
)
