// Package dialect provides the database driver abstraction consumed by the
// active-record layer.
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The following dialects are supported:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Opening a connection and registering it:
//
//	import (
//	    "github.com/syssam/activerecord"
//	    "github.com/syssam/activerecord/dialect"
//	    "github.com/syssam/activerecord/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//	reg := activerecord.NewRegistry()
//	reg.Register("default", drv)
//
// Wrap any driver with Debug to log every outgoing statement:
//
//	reg.Register("default", dialect.Debug(drv))
//
// The dialect/sql sub-package holds the database/sql backed driver, the
// query builders, and row scanning helpers.
package dialect
