package sqlkit

import (
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type InsertMethod int

const (
	MethodInsert InsertMethod = iota
	MethodInsertOrUpdate
	MethodInsertIgnore
)

func (m InsertMethod) String() string {
	switch m {
	case MethodInsertOrUpdate:
		return "INSERT_OR_UPDATE"
	case MethodInsertIgnore:
		return "INSERT_IGNORE"
	}
	return "INSERT"
}

// Insert renders a multi-row INSERT, optionally as an upsert or an insert that skips conflicts.
type Insert struct {
	table         string
	method        InsertMethod
	columns       []string
	rows          [][]any
	conflictKeys  []string
	updateColumns []string
}

func InsertInto(table string) *Insert {
	return &Insert{table: table}
}

func (q *Insert) Method(m InsertMethod) *Insert {
	q.method = m
	return q
}

// OrUpdate turns the insert into an upsert on the given conflict keys.
func (q *Insert) OrUpdate(conflictKeys ...string) *Insert {
	q.method = MethodInsertOrUpdate
	q.conflictKeys = append(q.conflictKeys, conflictKeys...)
	return q
}

func (q *Insert) Ignore() *Insert {
	q.method = MethodInsertIgnore
	return q
}

func (q *Insert) OnConflict(keys ...string) *Insert {
	q.conflictKeys = append(q.conflictKeys, keys...)
	return q
}

// UpdateColumns limits the columns an upsert overwrites. By default every inserted column
// except the conflict keys is overwritten.
func (q *Insert) UpdateColumns(columns ...string) *Insert {
	q.updateColumns = append(q.updateColumns, columns...)
	return q
}

func (q *Insert) Columns(columns ...string) *Insert {
	q.columns = append(q.columns, columns...)
	return q
}

// Values adds one row, in column order.
func (q *Insert) Values(values ...any) *Insert {
	q.rows = append(q.rows, values)
	return q
}

// Entries adds one row given as key/value pairs. The first call fixes the columns when none
// were set; later rows are matched by key.
func (q *Insert) Entries(entries ...Entry) *Insert {
	if len(q.columns) == 0 {
		q.columns = lo.Map(entries, func(e Entry, _ int) string { return e.Key })
	}
	values := make(map[string]any, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	row := make([]any, len(q.columns))
	for i, c := range q.columns {
		v, ok := values[c]
		if !ok {
			v = missingEntry{column: c}
		}
		row[i] = v
	}
	if len(values) > len(q.columns) {
		row = append(row, missingEntry{})
	}
	q.rows = append(q.rows, row)
	return q
}

// missingEntry marks a row built by Entries that does not match the insert's columns.
type missingEntry struct {
	column string
}

func (q *Insert) Render(rc *RenderContext) ([]*Query, error) {
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.table) == "" {
		return nil, missingField("insert has no table")
	}
	if len(q.columns) == 0 || len(q.rows) == 0 {
		return nil, missingField("insert into %s has no entries", q.table)
	}
	rc.reset()
	rows := make([]string, 0, len(q.rows))
	for i, row := range q.rows {
		if len(row) != len(q.columns) {
			return nil, missingField("insert into %s: row %d has %d values for %d columns", q.table, i, len(row), len(q.columns))
		}
		values := make([]string, len(row))
		for j, v := range row {
			if m, ok := v.(missingEntry); ok {
				return nil, missingField("insert into %s: row %d has no value for %s", q.table, i, m.column)
			}
			values[j] = rc.value(v)
		}
		rows = append(rows, "("+strings.Join(values, ", ")+")")
	}

	data := map[string]any{
		"Table":        rc.quote(q.table),
		"Columns":      q.columns,
		"Rows":         rows,
		"ConflictKeys": q.conflictKeys,
	}
	switch q.method {
	case MethodInsertIgnore:
		data["Ignore"] = true
	case MethodInsertOrUpdate:
		if len(q.conflictKeys) == 0 {
			if err := requireFeature(rc.Dialect, FeatureUpsertWithoutConflict, "upsert without conflict keys"); err != nil {
				rc.reset()
				return nil, err
			}
		}
		updates := q.updateColumns
		if len(updates) == 0 {
			updates, _ = lo.Difference(q.columns, q.conflictKeys)
		}
		if len(updates) == 0 {
			rc.log().WithFields(logrus.Fields{
				"table":     q.table,
				"dialect":   rc.Dialect.String(),
				"requested": MethodInsertOrUpdate.String(),
				"applied":   MethodInsertIgnore.String(),
			}).Warn("sqlkit: upsert has no columns to update, falling back to insert ignore")
			data["Ignore"] = true
		} else {
			data["UpdateColumns"] = updates
		}
	}
	sql, err := rc.execute(InsertClauses, data)
	if err != nil {
		rc.reset()
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *Insert) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}

func (q *Insert) Prepare(d Dialect) ([]*Query, error) {
	return Prepare(q, d)
}
