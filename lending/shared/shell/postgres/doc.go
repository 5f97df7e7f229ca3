// Package postgres implements the persistence ports on PostgreSQL:
// the Patron and Book repositories, the daily sheet store and the
// event publisher appending to the per-patron event streams.
//
// SQL statements are built with goqu and executed over a pgx
// connection pool. The patron save runs in one transaction and uses an
// optimistic version check, so concurrent writers surface as
// eventstore.ErrConcurrencyConflict and the command handlers retry.
package postgres
