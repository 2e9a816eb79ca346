package sql

import (
	"database/sql/driver"

	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
)

// DetectDialect inspects an already-opened (not necessarily connected)
// database/sql driver and returns the matching Dialect, so callers
// wiring Translate into an existing *sql.DB don't have to track which
// dialect they opened separately. It never dials the database itself —
// opening a *sql.DB connector is lazy in database/sql, and this only
// type-switches on the driver value. Mirrors the teacher's own
// driver-type dispatch (vippsas-sqlcode's dbops.go).
func DetectDialect(d driver.Driver) (Dialect, bool) {
	switch d.(type) {
	case *stdlib.Driver:
		return Postgres, true
	case *mssql.Driver:
		return MSSQL, true
	default:
		return 0, false
	}
}
