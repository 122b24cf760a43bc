// Package querybuilder renders the few statements the SQL document store
// runs. Placeholders are numbered ($1, $2, ...), which lib/pq and
// go-sqlite3 both accept.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type argList struct {
	values []any
}

func (a *argList) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

type predicate struct {
	column string
	value  any
}

// Query is a single-table SELECT with AND-ed equality filters.
type Query struct {
	table   string
	columns []string
	where   []predicate
	limit   int
}

func SelectFrom(table string, columns ...string) *Query {
	return &Query{table: table, columns: append([]string(nil), columns...)}
}

func (q *Query) WhereEq(column string, value any) *Query {
	q.where = append(q.where, predicate{column: column, value: value})
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) Build() (string, []any, error) {
	if strings.TrimSpace(q.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}
	if len(q.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}

	var args argList
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(q.columns, ", "), q.table)
	for i, p := range q.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.column + " = " + args.add(p.value))
	}
	if q.limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.limit))
	}
	return sb.String(), args.values, nil
}

// Upsert renders an INSERT of row that overwrites every other column when
// conflictColumn already holds the same value. Columns come from db tags.
func Upsert(table, conflictColumn string, row any) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("upsert table is required")
	}
	cols, vals, err := taggedColumns(row)
	if err != nil {
		return "", nil, err
	}

	var args argList
	placeholders := make([]string, len(vals))
	for i, v := range vals {
		placeholders[i] = args.add(v)
	}

	updates := make([]string, 0, len(cols))
	hasConflictColumn := false
	for _, col := range cols {
		if col == conflictColumn {
			hasConflictColumn = true
			continue
		}
		updates = append(updates, col+" = excluded."+col)
	}
	if !hasConflictColumn {
		return "", nil, fmt.Errorf("row has no %s column", conflictColumn)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) ",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), conflictColumn)
	if len(updates) == 0 {
		query += "DO NOTHING"
	} else {
		query += "DO UPDATE SET " + strings.Join(updates, ", ")
	}
	return query, args.values, nil
}
