package sqlkit

import (
	"strings"
)

// DatabaseCreate renders CREATE DATABASE. SQLite has no such statement.
type DatabaseCreate struct {
	name         string
	ifNotExists  bool
	characterSet CharacterSet
}

func CreateDatabase(name string) *DatabaseCreate {
	return &DatabaseCreate{name: name}
}

func (q *DatabaseCreate) IfNotExists() *DatabaseCreate {
	q.ifNotExists = true
	return q
}

func (q *DatabaseCreate) CharacterSet(cs CharacterSet) *DatabaseCreate {
	q.characterSet = cs
	return q
}

func (q *DatabaseCreate) Render(rc *RenderContext) ([]*Query, error) {
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.name) == "" {
		return nil, missingField("database name is empty")
	}
	if err := requireFeature(rc.Dialect, FeatureCreateDatabase, "CREATE DATABASE"); err != nil {
		return nil, err
	}
	if q.ifNotExists {
		if err := requireFeature(rc.Dialect, FeatureDatabaseIfNotExists, "CREATE DATABASE IF NOT EXISTS"); err != nil {
			return nil, err
		}
	}
	var cs string
	if !q.characterSet.IsZero() {
		name, err := q.characterSet.For(rc.Dialect)
		if err != nil {
			return nil, err
		}
		cs = name
	}
	sql, err := rc.execute(CreateDatabaseClauses, map[string]any{
		"Database":     rc.quote(q.name),
		"IfNotExists":  q.ifNotExists,
		"CharacterSet": cs,
	})
	if err != nil {
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *DatabaseCreate) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}

// DatabaseDrop renders DROP DATABASE. SQLite has no such statement.
type DatabaseDrop struct {
	name     string
	ifExists bool
}

func DropDatabase(name string) *DatabaseDrop {
	return &DatabaseDrop{name: name}
}

func (q *DatabaseDrop) IfExists() *DatabaseDrop {
	q.ifExists = true
	return q
}

func (q *DatabaseDrop) Render(rc *RenderContext) ([]*Query, error) {
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.name) == "" {
		return nil, missingField("database name is empty")
	}
	if err := requireFeature(rc.Dialect, FeatureCreateDatabase, "DROP DATABASE"); err != nil {
		return nil, err
	}
	sql, err := rc.execute(DropDatabaseClauses, map[string]any{
		"Database": rc.quote(q.name),
		"IfExists": q.ifExists,
	})
	if err != nil {
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *DatabaseDrop) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}
