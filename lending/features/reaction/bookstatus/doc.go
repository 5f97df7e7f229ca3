// Package bookstatus keeps the Book aggregate's availability in sync
// with the lending events raised on the patron side. The Book never
// transitions itself inside the lending commands; this handler is the
// single writer of its status.
package bookstatus
