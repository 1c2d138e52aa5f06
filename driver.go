package sqlkit

import (
	"github.com/jmoiron/sqlx"
)

var drivers = map[Dialect]Driver{
	MySQL:      &mysqlDriver{dialect: MySQL},
	MariaDB:    &mysqlDriver{dialect: MariaDB},
	PostgreSQL: &postgresDriver{},
	SQLite:     &sqliteDriver{},
}

// Driver binds a dialect to its database/sql driver and statement templates.
type Driver interface {
	Dialect() Dialect
	// Name is the database/sql driver name.
	Name() string
	Connect(config *ConnectConfig) (*sqlx.DB, error)
	Clauses() Clauses
}

// LookupDriver returns the driver of d, or nil.
func LookupDriver(d Dialect) Driver {
	return drivers[d]
}

// Templates shared by every dialect. Drivers copy them and override what differs.
const (
	queryClauses = `SELECT {{if .Distinct}}DISTINCT {{end}}{{.Columns | join ", "}}
			FROM {{.Table}}
			{{range .Joins}}
			{{.}}
			{{end}}
			{{if .Where}}
			WHERE {{.Where}}
			{{end}}
			{{if .Group}}
			{{.Group}}
			{{end}}
			{{if .OrderBy}}
			{{.OrderBy}}
			{{end}}
			{{if .Limit}}
			LIMIT {{.Limit}}
			{{end}}
			{{if .Offset}}
			OFFSET {{.Offset}}
			{{end}}`

	updateClauses = `UPDATE {{.Table}}
			SET {{.Sets | join ", "}}
			{{if .Where}}
			WHERE {{.Where}}
			{{end}}`

	deleteClauses = `DELETE FROM {{.Table}}
			{{if .Where}}
			WHERE {{.Where}}
			{{end}}`

	createTableClauses = `CREATE TABLE {{if .IfNotExists}}IF NOT EXISTS {{end}}{{.Table}} ({{.Definitions | join ", "}})
			{{if .Options}}
			{{.Options | join " "}}
			{{end}}`

	dropTableClauses = `DROP TABLE {{if .IfExists}}IF EXISTS {{end}}{{.Table}}`

	createIndexClauses = `CREATE {{if .Unique}}UNIQUE {{end}}INDEX {{if .IfNotExists}}IF NOT EXISTS {{end}}{{.Name}}
			ON {{.Table}} {{.Columns}}`

	dropDatabaseClauses = `DROP DATABASE {{if .IfExists}}IF EXISTS {{end}}{{.Database}}`
)

func commonClauses() Clauses {
	return Clauses{
		QueryClauses:        queryClauses,
		UpdateClauses:       updateClauses,
		DeleteClauses:       deleteClauses,
		CreateTableClauses:  createTableClauses,
		DropTableClauses:    dropTableClauses,
		CreateIndexClauses:  createIndexClauses,
		DropDatabaseClauses: dropDatabaseClauses,
	}
}
