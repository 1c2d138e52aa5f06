package sqlkit

import (
	"strings"

	"github.com/samber/lo"
)

// TableConstraint is one of PrimaryKeyConstraint, UniqueConstraint, IndexConstraint,
// ForeignKeyConstraint or CheckConstraint.
type TableConstraint interface {
	Name() string
	render(rc *RenderContext) (string, error)
}

type ReferenceAction string

const (
	NoAction   ReferenceAction = "NO ACTION"
	Restrict   ReferenceAction = "RESTRICT"
	Cascade    ReferenceAction = "CASCADE"
	SetNull    ReferenceAction = "SET NULL"
	SetDefault ReferenceAction = "SET DEFAULT"
)

type PrimaryKeyConstraint struct {
	ConstraintName string
	Columns        []string
}

type UniqueConstraint struct {
	ConstraintName string
	Columns        []string
}

// IndexConstraint is rendered inside CREATE TABLE on MySQL and MariaDB, and as a separate
// CREATE INDEX statement elsewhere.
type IndexConstraint struct {
	ConstraintName string
	Columns        []string
	Unique         bool
}

type ForeignKeyConstraint struct {
	ConstraintName    string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          ReferenceAction
	OnUpdate          ReferenceAction
}

type CheckConstraint struct {
	ConstraintName string
	Expression     string
}

func NewPrimaryKeyConstraint(name string, columns ...string) *PrimaryKeyConstraint {
	return &PrimaryKeyConstraint{ConstraintName: name, Columns: columns}
}

func NewUniqueConstraint(name string, columns ...string) *UniqueConstraint {
	return &UniqueConstraint{ConstraintName: name, Columns: columns}
}

func NewIndexConstraint(name string, unique bool, columns ...string) *IndexConstraint {
	return &IndexConstraint{ConstraintName: name, Columns: columns, Unique: unique}
}

func NewForeignKeyConstraint(name string, columns []string, refTable string, refColumns []string) *ForeignKeyConstraint {
	return &ForeignKeyConstraint{
		ConstraintName:    name,
		Columns:           columns,
		ReferencedTable:   refTable,
		ReferencedColumns: refColumns,
	}
}

func NewCheckConstraint(name, expression string) *CheckConstraint {
	return &CheckConstraint{ConstraintName: name, Expression: expression}
}

func (c *PrimaryKeyConstraint) Name() string { return c.ConstraintName }
func (c *UniqueConstraint) Name() string     { return c.ConstraintName }
func (c *IndexConstraint) Name() string      { return c.ConstraintName }
func (c *ForeignKeyConstraint) Name() string { return c.ConstraintName }
func (c *CheckConstraint) Name() string      { return c.ConstraintName }

func (c *ForeignKeyConstraint) WithOnDelete(a ReferenceAction) *ForeignKeyConstraint {
	c.OnDelete = a
	return c
}

func (c *ForeignKeyConstraint) WithOnUpdate(a ReferenceAction) *ForeignKeyConstraint {
	c.OnUpdate = a
	return c
}

func constraintPrefix(name string) string {
	if name == "" {
		return ""
	}
	return "CONSTRAINT " + name + " "
}

func columnList(kind string, columns []string) (string, error) {
	cols := lo.Filter(columns, func(s string, _ int) bool { return strings.TrimSpace(s) != "" })
	if len(cols) == 0 {
		return "", missingField("%s needs at least one column", kind)
	}
	return "(" + strings.Join(cols, ", ") + ")", nil
}

func (c *PrimaryKeyConstraint) render(_ *RenderContext) (string, error) {
	cols, err := columnList("primary key constraint", c.Columns)
	if err != nil {
		return "", err
	}
	return constraintPrefix(c.ConstraintName) + "PRIMARY KEY " + cols, nil
}

func (c *UniqueConstraint) render(_ *RenderContext) (string, error) {
	cols, err := columnList("unique constraint", c.Columns)
	if err != nil {
		return "", err
	}
	return constraintPrefix(c.ConstraintName) + "UNIQUE " + cols, nil
}

// indexName falls back to idx_<table>_<columns>.
func (c *IndexConstraint) indexName(table string) string {
	if c.ConstraintName != "" {
		return c.ConstraintName
	}
	parts := append([]string{"idx", strings.ReplaceAll(table, ".", "_")}, c.Columns...)
	return strings.Join(parts, "_")
}

func (c *IndexConstraint) render(_ *RenderContext) (string, error) {
	cols, err := columnList("index", c.Columns)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if c.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if c.ConstraintName != "" {
		b.WriteString(c.ConstraintName + " ")
	}
	b.WriteString(cols)
	return b.String(), nil
}

// statement renders the standalone CREATE INDEX for dialects without inline indexes.
func (c *IndexConstraint) statement(rc *RenderContext, table string, ifNotExists bool) (string, error) {
	cols, err := columnList("index", c.Columns)
	if err != nil {
		return "", err
	}
	return rc.execute(CreateIndexClauses, map[string]any{
		"Unique":      c.Unique,
		"IfNotExists": ifNotExists,
		"Name":        c.indexName(table),
		"Table":       rc.quote(table),
		"Columns":     cols,
	})
}

func (c *ForeignKeyConstraint) render(rc *RenderContext) (string, error) {
	cols, err := columnList("foreign key", c.Columns)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(c.ReferencedTable) == "" {
		return "", missingField("foreign key %s has no referenced table", cols)
	}
	refCols, err := columnList("foreign key reference", c.ReferencedColumns)
	if err != nil {
		return "", err
	}
	if len(c.Columns) != len(c.ReferencedColumns) {
		return "", missingField("foreign key %s references %d columns", cols, len(c.ReferencedColumns))
	}
	s := constraintPrefix(c.ConstraintName) + "FOREIGN KEY " + cols + " REFERENCES " + rc.quote(c.ReferencedTable) + " " + refCols
	for _, action := range []struct {
		clause string
		value  ReferenceAction
	}{{"ON DELETE", c.OnDelete}, {"ON UPDATE", c.OnUpdate}} {
		if action.value == "" {
			continue
		}
		if action.value == SetDefault {
			if err := RejectDialect(rc.Dialect, MySQL, MariaDB); err != nil {
				return "", notSupported("%s SET DEFAULT is not available on dialect %s", action.clause, rc.Dialect)
			}
		}
		s += " " + action.clause + " " + string(action.value)
	}
	return s, nil
}

func (c *CheckConstraint) render(_ *RenderContext) (string, error) {
	if strings.TrimSpace(c.Expression) == "" {
		return "", missingField("check constraint has no expression")
	}
	return constraintPrefix(c.ConstraintName) + "CHECK (" + c.Expression + ")", nil
}
