// Package testutil provides in-memory implementations of the shell
// ports plus fixture helpers, shared by the feature tests. The fakes
// emulate the behavior the Postgres implementations promise, including
// version conflicts on stale patron saves, so handler retry paths can
// be exercised without a database.
package testutil
