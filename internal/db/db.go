package db

import "database/sql"

// DB wraps the shared *sql.DB handle so storage packages depend on one
// type rather than on database/sql directly at call sites.
type DB struct {
	*sql.DB
}
