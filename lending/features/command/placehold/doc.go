// Package placehold implements the Place Hold use case.
//
// A patron reserves a book at a branch. The CommandHandler loads the
// Patron and Book aggregates, delegates to the pure Decide function and
// persists the mutated patron together with the HoldPlaced event.
//
// The business rules are the most involved of all lending commands:
// restricted books are researcher-only, a book already on hold cannot
// be held again, open-ended holds are researcher-only, regular patrons
// are capped at five active holds, and patrons with more than two
// overdue checkouts at the branch are rejected there.
package placehold
