package sqlkit

import (
	"strings"
)

// TableCreate renders CREATE TABLE plus, on dialects without inline indexes, one CREATE INDEX
// per IndexConstraint.
type TableCreate struct {
	table       *Table
	ifNotExists bool
}

func CreateTable(name string) *TableCreate {
	return &TableCreate{table: NewTable(name)}
}

// NewTableCreate renders an existing Table descriptor, e.g. one returned by ParseTable.
func NewTableCreate(t *Table) *TableCreate {
	return &TableCreate{table: t}
}

func (q *TableCreate) Columns(columns ...*Column) *TableCreate {
	q.table.AddColumn(columns...)
	return q
}

func (q *TableCreate) Constraints(constraints ...TableConstraint) *TableCreate {
	q.table.AddConstraint(constraints...)
	return q
}

func (q *TableCreate) IfNotExists() *TableCreate {
	q.ifNotExists = true
	return q
}

func (q *TableCreate) CharacterSet(cs CharacterSet) *TableCreate {
	q.table.CharacterSet = cs
	return q
}

func (q *TableCreate) Comment(comment string) *TableCreate {
	q.table.Comment = comment
	return q
}

func (q *TableCreate) Table() *Table {
	return q.table
}

func (q *TableCreate) Render(rc *RenderContext) ([]*Query, error) {
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	t := q.table
	if t == nil || strings.TrimSpace(t.Name) == "" {
		return nil, missingField("table name is empty")
	}
	if len(t.Columns) == 0 {
		return nil, missingField("table %s has no columns", t.Name)
	}
	// DDL carries no bind variables.
	ddl := *rc
	ddl.Parameterized = false
	ddl.reset()

	var (
		defs    []string
		indexes []*IndexConstraint
	)
	for _, c := range t.Columns {
		if c == nil {
			continue
		}
		s, err := c.Render(&ddl)
		if err != nil {
			return nil, err
		}
		defs = append(defs, s)
	}
	for _, tc := range t.Constraints {
		if ic, ok := tc.(*IndexConstraint); ok && !ddl.Dialect.Supports(FeatureInlineIndex) {
			indexes = append(indexes, ic)
			continue
		}
		s, err := tc.render(&ddl)
		if err != nil {
			return nil, err
		}
		defs = append(defs, s)
	}

	var options []string
	if !t.CharacterSet.IsZero() {
		if !ddl.Dialect.isMySQLFamily() {
			return nil, notSupported("table character set is not available on dialect %s", ddl.Dialect)
		}
		options = append(options, "DEFAULT CHARSET="+t.CharacterSet.MySQLName())
	}
	if t.Comment != "" && ddl.Dialect.isMySQLFamily() {
		options = append(options, "COMMENT="+quoteString(ddl.Dialect, t.Comment))
	}

	sql, err := ddl.execute(CreateTableClauses, map[string]any{
		"Table":       ddl.quote(t.Name),
		"IfNotExists": q.ifNotExists,
		"Definitions": defs,
		"Options":     options,
	})
	if err != nil {
		return nil, err
	}
	queries := []*Query{ddl.query(sql)}
	for _, ic := range indexes {
		s, err := ic.statement(&ddl, t.Name, q.ifNotExists)
		if err != nil {
			return nil, err
		}
		queries = append(queries, ddl.query(s))
	}
	return queries, nil
}

func (q *TableCreate) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}

type TableDrop struct {
	name     string
	ifExists bool
}

func DropTable(name string) *TableDrop {
	return &TableDrop{name: name}
}

func (q *TableDrop) IfExists() *TableDrop {
	q.ifExists = true
	return q
}

func (q *TableDrop) Render(rc *RenderContext) ([]*Query, error) {
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.name) == "" {
		return nil, missingField("table name is empty")
	}
	sql, err := rc.execute(DropTableClauses, map[string]any{
		"Table":    rc.quote(q.name),
		"IfExists": q.ifExists,
	})
	if err != nil {
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *TableDrop) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}
