// Package checkoutbook implements the Checkout Book use case.
//
// A patron converts one of their active holds into a loan. The hold
// transitions to CHECKED_OUT, a Checkout with the policy's due date is
// added to the patron and a BookCheckedOut event is published.
package checkoutbook
