package sqlkit

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Query is one rendered statement. Args is empty unless the statement was rendered parameterized.
type Query struct {
	SQL  string
	Args []any
}

func (q *Query) String() string {
	return q.SQL
}

// QueryProvider is implemented by every statement builder.
type QueryProvider interface {
	Render(rc *RenderContext) ([]*Query, error)
}

// ClauseKind selects one of the statement templates of a driver.
type ClauseKind string

const (
	CreateDatabaseClauses ClauseKind = "create_database"
	DropDatabaseClauses   ClauseKind = "drop_database"
	CreateTableClauses    ClauseKind = "create_table"
	DropTableClauses      ClauseKind = "drop_table"
	CreateIndexClauses    ClauseKind = "create_index"
	InsertClauses         ClauseKind = "insert"
	QueryClauses          ClauseKind = "query"
	UpdateClauses         ClauseKind = "update"
	DeleteClauses         ClauseKind = "delete"
)

// Clauses maps a clause kind to a text/template source. Sprig functions are available.
type Clauses map[ClauseKind]string

// RenderContext carries the dialect and options of one render call.
type RenderContext struct {
	Dialect Dialect
	Logger  logrus.FieldLogger
	// Parameterized renders values as bind variables collected in Query.Args instead of
	// inlining them as literals. DDL is never parameterized.
	Parameterized bool
	// Clauses overrides the driver templates per kind.
	Clauses Clauses

	args []any
}

func NewRenderContext(d Dialect) *RenderContext {
	return &RenderContext{Dialect: d}
}

func (rc *RenderContext) log() logrus.FieldLogger {
	if rc.Logger != nil {
		return rc.Logger
	}
	return Logger()
}

func (rc *RenderContext) quote(ident string) string {
	return rc.Dialect.Quote(ident)
}

// value renders v as a literal or, in parameterized mode, as a bind variable.
func (rc *RenderContext) value(v any) string {
	if r, ok := v.(Raw); ok {
		return string(r)
	}
	if rc.Parameterized {
		return rc.bind(v)
	}
	return literal(rc.Dialect, v)
}

// quoted renders v as a quoted string literal or a bind variable.
func (rc *RenderContext) quoted(v any) string {
	if r, ok := v.(Raw); ok {
		return string(r)
	}
	if rc.Parameterized {
		return rc.bind(v)
	}
	return quoteString(rc.Dialect, textOf(v))
}

// bind collects v and returns its placeholder. Positional placeholders ($1, $2, ...) are
// numbered here so that a "?" inside a Raw value is never rewritten.
func (rc *RenderContext) bind(v any) string {
	rc.args = append(rc.args, v)
	if sqlx.BindType(rc.Dialect.DriverName()) == sqlx.DOLLAR {
		return "$" + strconv.Itoa(len(rc.args))
	}
	return "?"
}

func (rc *RenderContext) reset() {
	rc.args = nil
}

func (rc *RenderContext) query(sql string) *Query {
	q := &Query{SQL: sql, Args: rc.args}
	rc.args = nil
	return q
}

func (rc *RenderContext) requireDialect() error {
	if !rc.Dialect.Valid() {
		return notSupported("statements need a known dialect, got %s", rc.Dialect)
	}
	return nil
}

func (rc *RenderContext) execute(kind ClauseKind, data map[string]any) (string, error) {
	src := rc.Clauses[kind]
	if src == "" {
		drv := drivers[rc.Dialect]
		if drv == nil {
			return "", notSupported("no driver for dialect %s", rc.Dialect)
		}
		src = drv.Clauses()[kind]
	}
	if src == "" {
		return "", notSupported("dialect %s has no %s clauses", rc.Dialect, kind)
	}
	tpl, err := parseClauses(src)
	if err != nil {
		return "", err
	}
	var buff bytes.Buffer
	if err := tpl.Execute(&buff, data); err != nil {
		return "", errors.Wrapf(err, "sqlkit: render %s clauses", kind)
	}
	return strings.TrimSpace(buff.String()), nil
}

var clauseCache sync.Map

func parseClauses(src string) (*template.Template, error) {
	if v, ok := clauseCache.Load(src); ok {
		return v.(*template.Template), nil
	}
	tpl, err := template.New("").Funcs(sprig.TxtFuncMap()).Parse(formatClauses(src))
	if err != nil {
		return nil, errors.Wrap(err, "sqlkit: invalid clauses template")
	}
	clauseCache.Store(src, tpl)
	return tpl, nil
}

// formatClauses folds a multi-line template into one line. Lines holding a single control
// action ({{if}}, {{else}}, {{end}}, {{range}}, {{with}}) are glued without a space so that
// optional clauses never leave double blanks behind.
func formatClauses(src string) string {
	var b strings.Builder
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 && !isControlLine(line) {
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return b.String()
}

func isControlLine(line string) bool {
	if !strings.HasPrefix(line, "{{") || !strings.HasSuffix(line, "}}") || strings.Count(line, "{{") != 1 {
		return false
	}
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "{{"), "}}"))
	inner = strings.TrimSpace(strings.Trim(inner, "-"))
	for _, kw := range []string{"if ", "else", "end", "range ", "with "} {
		if strings.HasPrefix(inner, kw) {
			return true
		}
	}
	return false
}

// GenerateSQL renders p with inline literals and joins the statements with ";\n".
func GenerateSQL(p QueryProvider, d Dialect) (string, error) {
	queries, err := p.Render(NewRenderContext(d))
	if err != nil {
		return "", err
	}
	sqls := make([]string, len(queries))
	for i, q := range queries {
		sqls[i] = q.SQL
	}
	return strings.Join(sqls, ";\n"), nil
}

// Prepare renders p with bind variables.
func Prepare(p QueryProvider, d Dialect) ([]*Query, error) {
	rc := NewRenderContext(d)
	rc.Parameterized = true
	return p.Render(rc)
}
