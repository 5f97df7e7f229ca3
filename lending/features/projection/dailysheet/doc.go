// Package dailysheet maintains the daily sheet read model, one flat
// row per hold and per checkout, fed by the lending events. Library
// staff read it to see which holds expire, which expired, and which
// checkouts are or will become overdue.
//
// The manager tolerates at-least-once delivery: every handler upserts
// by its natural key, so a replayed event converges on the same row
// instead of duplicating it.
package dailysheet
