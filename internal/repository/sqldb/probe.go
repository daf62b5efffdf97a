package sqldb

import (
	"context"
)

// Probe runs `SELECT 1 AS number` and returns the rows keyed by column name.
func (r *Repo) Probe(ctx context.Context) ([]map[string]any, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.QueryRows(ctx, `SELECT 1 AS number`)
	if err != nil {
		return nil, queryErr("probe", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, queryErr("probe columns", err)
	}

	out := []map[string]any{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, queryErr("probe scan", err)
		}
		rec := make(map[string]any, len(cols))
		for i, c := range cols {
			rec[c] = vals[i]
		}
		out = append(out, rec)
	}
	return out, queryErr("probe", rows.Err())
}
