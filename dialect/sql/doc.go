// Package sql provides SQL statement building primitives and a
// database/sql backed driver implementation of the dialect interfaces.
//
// # Builder Types
//
// The package provides a builder per statement kind:
//
//   - Builder: low-level string builder with identifier quoting
//   - Selector: SELECT builder with joins, predicates, ordering and limits
//   - InsertBuilder: INSERT builder with RETURNING support
//   - UpdateBuilder: UPDATE builder with SET and WHERE clauses
//   - DeleteBuilder: DELETE builder with WHERE predicates
//
// # Dialect Support
//
// Generation adapts to the configured dialect: identifier quoting and
// argument placeholders follow PostgreSQL conventions on Postgres and
// MySQL conventions elsewhere.
//
//	import "github.com/syssam/activerecord/dialect"
//
//	sql.Dialect(dialect.Postgres).
//	    Select("id", "name").
//	    From("users").
//	    Where(sql.EQ("status", "active")).
//	    Query()
//
// # Predicates
//
// Predicates compose with And, Or and Not:
//
//	sql.EQ("name", "a8m")            // name = ?
//	sql.GT("age", 18)                // age > ?
//	sql.Contains("email", "@gmail")  // email LIKE ?
//	sql.In("status", "a", "b")       // status IN (?, ?)
//	sql.NotNull("email")             // email IS NOT NULL
//
// # Drivers
//
// Open and OpenDB wrap database/sql connections with the dialect.Driver
// interface. OpenWithStats adds query counters and slow-query reporting
// on top of any driver.
package sql
