package engine

import (
	"context"
	"database/sql"
	"sync"
)

// Recorder is an Executor that stores statements instead of running them.
// It backs mock databases and dry runs.
type Recorder struct {
	mu   sync.Mutex
	sqls []string
}

// ExecContext records query and reports zero affected rows.
func (r *Recorder) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.mu.Lock()
	r.sqls = append(r.sqls, query)
	r.mu.Unlock()
	return driverResult{}, nil
}

// SQLs returns a copy of the recorded statements in execution order.
func (r *Recorder) SQLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sqls))
	copy(out, r.sqls)
	return out
}

// Reset discards all recorded statements.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sqls = nil
	r.mu.Unlock()
}

type driverResult struct{}

func (driverResult) LastInsertId() (int64, error) { return 0, nil }
func (driverResult) RowsAffected() (int64, error) { return 0, nil }
