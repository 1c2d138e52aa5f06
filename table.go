package sqlkit

import (
	"github.com/samber/lo"
)

// Table describes a table to create. It is plain data; TableCreate renders it.
type Table struct {
	Name         string
	Columns      []*Column
	Constraints  []TableConstraint
	CharacterSet CharacterSet
	Comment      string
}

func NewTable(name string, columns ...*Column) *Table {
	return &Table{Name: name, Columns: columns}
}

func (t *Table) AddColumn(columns ...*Column) *Table {
	t.Columns = append(t.Columns, columns...)
	return t
}

func (t *Table) AddConstraint(constraints ...TableConstraint) *Table {
	t.Constraints = append(t.Constraints, constraints...)
	return t
}

func (t *Table) WithCharacterSet(cs CharacterSet) *Table {
	t.CharacterSet = cs
	return t
}

func (t *Table) WithComment(comment string) *Table {
	t.Comment = comment
	return t
}

// Column returns the column with the given key, or nil.
func (t *Table) Column(key string) *Column {
	c, _ := lo.Find(t.Columns, func(c *Column) bool { return c.Key == key })
	return c
}

// ColumnKeys returns the column keys in declaration order.
func (t *Table) ColumnKeys() []string {
	return lo.Map(t.Columns, func(c *Column, _ int) string { return c.Key })
}

// PrimaryKeys returns the keys of the columns that carry a primary key constraint, or the
// columns of a PrimaryKeyConstraint.
func (t *Table) PrimaryKeys() []string {
	keys := lo.FilterMap(t.Columns, func(c *Column, _ int) (string, bool) {
		return c.Key, c.Constraint == PrimaryKey || c.Constraint == PrimaryKeyAutoIncrement
	})
	if len(keys) > 0 {
		return keys
	}
	for _, tc := range t.Constraints {
		if pk, ok := tc.(*PrimaryKeyConstraint); ok {
			return pk.Columns
		}
	}
	return nil
}
