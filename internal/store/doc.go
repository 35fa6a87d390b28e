// Package store provides a SQLite-backed material table.
//
// The store holds one dataset at a time: ReplaceAll swaps the whole table
// in a single transaction, and readers always see either the old or the new
// dataset in full.
//
// # Ordering
//
//   - Rows carry a seq INTEGER assigned from their position in the table
//   - Every read uses ORDER BY seq ASC, id COLLATE BINARY ASC
//   - A table written and read back keeps its row order exactly
//
// # Elements Column
//
// The elements column stores the formula's element symbols as "|Fe|O|" so
// that querysql can push element membership down as instr(elements, "|O|").
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
