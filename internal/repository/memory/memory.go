// Package memory provides in-memory implementations of the repository
// interfaces. They back the service and task tests, which exercise the real
// business logic against a store that needs no running database.
package memory

import "gorm.io/gorm"

// errNotFound mirrors what the GORM-backed repositories surface on a miss,
// so services translate errors identically in tests and in production.
var errNotFound = gorm.ErrRecordNotFound
