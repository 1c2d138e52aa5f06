package sqlkit

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type sqliteDriver struct {
}

func (m *sqliteDriver) Dialect() Dialect {
	return SQLite
}

func (m *sqliteDriver) Name() string {
	return "sqlite3"
}

func (m *sqliteDriver) Connect(config *ConnectConfig) (*sqlx.DB, error) {
	return sqlx.Connect(m.Name(), sqliteDSN(config.Dsn))
}

// sqliteDSN strips sqlite:// style prefixes; file: URIs are passed through.
func sqliteDSN(dsn string) string {
	s := strings.TrimPrefix(strings.TrimSpace(dsn), "jdbc:")
	for _, prefix := range []string{"sqlite3://", "sqlite://", "sqlite3:", "sqlite:"} {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

func (m *sqliteDriver) Clauses() Clauses {
	c := commonClauses()
	//INSERT OR IGNORE INTO table_name (column1, column2, ...)
	//VALUES (value1a, value2a, ...)
	//ON CONFLICT (key) DO UPDATE SET column1 = excluded.column1, ...;
	c[InsertClauses] = `INSERT {{if .Ignore}}OR IGNORE {{end}}INTO {{.Table}} ({{.Columns | join ", "}})
			VALUES {{.Rows | join ", "}}
			{{if .UpdateColumns}}
			ON CONFLICT{{if .ConflictKeys}} ({{.ConflictKeys | join ", "}}){{end}} DO UPDATE SET {{range $i, $c := .UpdateColumns}}{{if $i}}, {{end}}{{$c}} = excluded.{{$c}}{{end}}
			{{end}}`
	delete(c, DropDatabaseClauses)
	return c
}
