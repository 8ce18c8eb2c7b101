package repository

import "errors"

var (
	// ErrNotFound covers unknown ids and slugs. Ids that exist but belong
	// to another restaurant are reported the same way, so a caller can
	// never confirm existence across tenants.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers per-tenant name collisions and deletes blocked by
	// linked data.
	ErrConflict = errors.New("conflict")
)
