// Package cashbook keeps the daily cash reconciliation of a single venue: a
// bar, a café or a small shop.
//
// The manager records:
//   - Daily closings: the register Z total, card payments, the cash counted
//     in the drawer, the staff cost and same-day expenses.
//   - Stock purchases: drinks, food, cleaning products... classified by a
//     stock category.
//   - Fixed costs: rent, utilities, insurance... one per concept and month.
//
// From those records the Book derives the cash discrepancy of each day, the
// stock cost ratio and the net profit, aggregated per month and per year,
// with alerts when a figure looks suspicious. Daily profit is never stored:
// the fixed costs of a month are prorated on the days actually opened when a
// summary is read.
//
// Records are append-only and kept in memory. The journal format (JSONL)
// replays them through the same insert path, so a journal can never hold what
// the Book would have refused.
//
// This package serves as the foundational logic for the `cbk` command-line
// tool and its HTTP server.
package cashbook
