package db

import (
	"context"
	"fmt"
)

// TableCount is one row of the stats report.
type TableCount struct {
	Table string
	Count int64
}

// statTables is the fixed list the stats report walks; table names never
// come from user input.
var statTables = []string{
	"sessions",
	"messages",
	"personas",
	"providers",
	"models",
	"applications",
	"app_storage",
	"tool_defs",
	"prompt_defs",
	"settings",
}

// Stats returns row counts for every table, for the maintenance CLI.
func (q *Queries) Stats(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(statTables))
	for _, table := range statTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := q.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Count: count})
	}
	return counts, nil
}
