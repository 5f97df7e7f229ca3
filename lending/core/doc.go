// Package core contains the pure domain model of the lending system:
// the Patron and Book aggregates, the Hold and Checkout entities owned
// by a Patron, the closed enum types driving all transition rules, and
// the domain events raised by state changes.
//
// Nothing in this package performs I/O. Aggregates are passed by value
// into pure decision functions which return a DecisionResult bundling
// the mutated aggregate with the events to publish, in emission order.
// The shell is responsible for persisting and publishing both together.
package core
