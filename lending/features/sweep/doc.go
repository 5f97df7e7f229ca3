// Package sweep implements the daily background pass over patrons with
// open holds or checkouts. Holds past their expiry date transition to
// EXPIRED and checkouts past their due date transition to OVERDUE, each
// raising the corresponding event.
//
// The pass is fault isolated per patron: one patron failing to sweep,
// for whatever reason, never blocks the rest of the batch.
package sweep
