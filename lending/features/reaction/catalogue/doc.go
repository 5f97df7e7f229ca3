// Package catalogue ingests book instance notifications from the
// catalogue context. Every instance added over there becomes a lending
// Book aggregate here, keyed by isbn so redelivered notifications stay
// idempotent.
package catalogue
