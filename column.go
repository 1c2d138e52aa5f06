package sqlkit

import (
	"strings"

	"github.com/guregu/null/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type ColumnConstraint int

const (
	ConstraintNone ColumnConstraint = iota
	PrimaryKey
	PrimaryKeyAutoIncrement
	Unique
)

func (c ColumnConstraint) String() string {
	switch c {
	case PrimaryKey:
		return "PRIMARY_KEY"
	case PrimaryKeyAutoIncrement:
		return "PRIMARY_KEY_AUTOINCREMENT"
	case Unique:
		return "UNIQUE"
	}
	return "NONE"
}

// Column describes one column of a table. Rendering never modifies it.
type Column struct {
	Key        string
	Type       DataType
	Parameter  null.String
	Unsigned   bool
	Constraint ColumnConstraint
	NotNull    bool
	// Default is rendered as a quoted literal; booleans become 1/0 (TRUE/FALSE on PostgreSQL).
	Default any
	// DefaultExpression is emitted verbatim and wins over Default.
	DefaultExpression null.String
	// Comment is emitted on MySQL and MariaDB only.
	Comment string
}

func NewColumn(key string, t DataType, constraint ...ColumnConstraint) *Column {
	c := &Column{Key: key, Type: t}
	if len(constraint) > 0 {
		c.Constraint = constraint[0]
	}
	return c
}

func (c *Column) WithParameter(p string) *Column {
	c.Parameter = null.StringFrom(p)
	return c
}

func (c *Column) WithUnsigned() *Column {
	c.Unsigned = true
	return c
}

func (c *Column) WithConstraint(constraint ColumnConstraint) *Column {
	c.Constraint = constraint
	return c
}

func (c *Column) WithNotNull() *Column {
	c.NotNull = true
	return c
}

func (c *Column) WithDefault(v any) *Column {
	c.Default = v
	return c
}

func (c *Column) WithDefaultExpression(expr string) *Column {
	c.DefaultExpression = null.StringFrom(expr)
	return c
}

func (c *Column) WithComment(comment string) *Column {
	c.Comment = comment
	return c
}

// SQL renders the column definition for d.
func (c *Column) SQL(d Dialect) (string, error) {
	return c.Render(NewRenderContext(d))
}

func (c *Column) String() string {
	s, err := c.SQL(Unknown)
	if err != nil {
		return "<invalid column: " + err.Error() + ">"
	}
	return s
}

// Render returns "key type [NOT NULL] [constraint] [DEFAULT ...] [COMMENT ...]".
func (c *Column) Render(rc *RenderContext) (string, error) {
	if strings.TrimSpace(c.Key) == "" {
		return "", missingField("column key is empty")
	}
	if c.Type.IsZero() {
		return "", missingField("column %s has no data type", c.Key)
	}
	typ, err := c.Type.Render(rc.Dialect, c.Parameter, c.Unsigned)
	if err != nil {
		return "", errors.WithMessagef(err, "column %s", c.Key)
	}
	parts := []string{c.Key, typ}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if s := c.constraintClause(rc); s != "" {
		parts = append(parts, s)
	}
	if c.Constraint == PrimaryKeyAutoIncrement && (c.DefaultExpression.Valid || c.Default != nil) {
		if _, ok := c.autoIncrementClause(rc.Dialect); ok {
			return "", notSupported("auto-increment column %s cannot have a default on dialect %s", c.Key, rc.Dialect)
		}
	}
	if c.DefaultExpression.Valid {
		if strings.TrimSpace(c.DefaultExpression.String) == "" {
			return "", missingField("column %s has a blank default expression", c.Key)
		}
		parts = append(parts, "DEFAULT "+c.DefaultExpression.String)
	} else if c.Default != nil {
		parts = append(parts, "DEFAULT "+c.defaultLiteral(rc.Dialect))
	}
	if c.Comment != "" && rc.Dialect.Supports(FeatureColumnComment) {
		parts = append(parts, "COMMENT "+quoteString(rc.Dialect, c.Comment))
	}
	return strings.Join(parts, " "), nil
}

func (c *Column) defaultLiteral(d Dialect) string {
	switch v := c.Default.(type) {
	case bool:
		return booleanLiteral(d, v)
	case Raw:
		return string(v)
	}
	if isNilValue(c.Default) {
		return "NULL"
	}
	return quoteString(d, textOf(c.Default))
}

func (c *Column) constraintClause(rc *RenderContext) string {
	switch c.Constraint {
	case PrimaryKey:
		return "PRIMARY KEY"
	case Unique:
		return "UNIQUE"
	case PrimaryKeyAutoIncrement:
		if s, ok := c.autoIncrementClause(rc.Dialect); ok {
			return s
		}
		rc.log().WithFields(logrus.Fields{
			"column":    c.Key,
			"type":      c.Type.Name(),
			"dialect":   rc.Dialect.String(),
			"requested": PrimaryKeyAutoIncrement.String(),
			"applied":   PrimaryKey.String(),
		}).Warn("sqlkit: autoincrement is not possible here, falling back to plain primary key")
		return "PRIMARY KEY"
	}
	return ""
}

func (c *Column) autoIncrementClause(d Dialect) (string, bool) {
	switch {
	case d.isMySQLFamily():
		if c.Type.IsInteger() {
			return "PRIMARY KEY AUTO_INCREMENT", true
		}
	case d == SQLite:
		if c.Type.Name() == TypeInteger.Name() && !c.Parameter.Valid && !c.Unsigned {
			return "PRIMARY KEY AUTOINCREMENT", true
		}
	case d == PostgreSQL:
		if c.Type.IsInteger() {
			return "GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY", true
		}
	}
	return "", false
}
