// Package ledger keeps a SQLite history of verify runs.
//
// Each run is one row in runs plus one row per case in case_results, written
// in a single transaction. Runs are ordered by a monotonically increasing seq
// assigned at insert time, so listing order does not depend on wall time.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package ledger
