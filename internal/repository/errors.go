package repository

import "errors"

// ErrNotFound indicates the referenced entity does not exist or is not
// owned by the caller. Repositories wrap it with the entity name.
var ErrNotFound = errors.New("not found")
