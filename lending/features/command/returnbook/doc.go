// Package returnbook implements the Return Book use case.
//
// A patron returns a checked out book. The open checkout, overdue or
// not, transitions to RETURNED and a BookReturned event frees the book
// for the next patron.
package returnbook
