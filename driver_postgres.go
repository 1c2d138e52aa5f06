package sqlkit

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type postgresDriver struct {
}

func (m *postgresDriver) Dialect() Dialect {
	return PostgreSQL
}

func (m *postgresDriver) Name() string {
	return "postgres"
}

func (m *postgresDriver) Connect(config *ConnectConfig) (*sqlx.DB, error) {
	dsn, err := postgresDSN(config.Dsn)
	if err != nil {
		return nil, err
	}
	return sqlx.Connect(m.Name(), dsn)
}

// postgresDSN turns postgres:// URLs into key/value DSNs.
func postgresDSN(dsn string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(dsn), "jdbc:")
	if strings.HasPrefix(s, "postgresql:") && !strings.HasPrefix(s, "postgresql://") {
		s = "postgresql://" + strings.TrimPrefix(s, "postgresql:")
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "postgres://") && !strings.HasPrefix(lower, "postgresql://") {
		return s, nil
	}
	kv, err := pq.ParseURL(s)
	if err != nil {
		return "", invalidValue("malformed PostgreSQL URL: %v", err)
	}
	return kv, nil
}

func (m *postgresDriver) Clauses() Clauses {
	c := commonClauses()
	//INSERT INTO table_name (column1, column2, ...)
	//VALUES (value1a, value2a, ...)
	//ON CONFLICT (key) DO UPDATE SET column1 = EXCLUDED.column1, ...;
	c[InsertClauses] = `INSERT INTO {{.Table}} ({{.Columns | join ", "}})
			VALUES {{.Rows | join ", "}}
			{{if .UpdateColumns}}
			ON CONFLICT ({{.ConflictKeys | join ", "}}) DO UPDATE SET {{range $i, $c := .UpdateColumns}}{{if $i}}, {{end}}{{$c}} = EXCLUDED.{{$c}}{{end}}
			{{else if .Ignore}}
			ON CONFLICT{{if .ConflictKeys}} ({{.ConflictKeys | join ", "}}){{end}} DO NOTHING
			{{end}}`
	c[CreateDatabaseClauses] = `CREATE DATABASE {{.Database}}
			{{if .CharacterSet}}
			ENCODING '{{.CharacterSet}}'
			{{end}}`
	return c
}
