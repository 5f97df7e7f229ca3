// Package config provides configuration helpers for the lending
// system: PostgreSQL connections using the different supported drivers
// (pgx.Pool, sql.DB, sqlx.DB) plus the environment-driven lending
// settings consumed by the sweeper.
//
// This package is part of the shell (infrastructure) layer.
package config
