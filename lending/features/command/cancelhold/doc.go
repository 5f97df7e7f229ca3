// Package cancelhold implements the Cancel Hold use case.
//
// A patron withdraws one of their holds. The rules live on the Patron
// aggregate and its Hold child: only an active, unexpired hold can be
// cancelled, and cancelling frees the book for other patrons through
// the HoldCancelled event.
package cancelhold
