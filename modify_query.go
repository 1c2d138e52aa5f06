package sqlkit

import (
	"strings"
)

// Update renders UPDATE ... SET ... WHERE .... Without conditions it fails unless All is called.
type Update struct {
	table   string
	entries []Entry
	where   Conditions
	all     bool
	err     error
}

func UpdateTable(table string) *Update {
	return &Update{table: table}
}

func (q *Update) Set(key string, value any) *Update {
	q.entries = append(q.entries, Entry{Key: key, Value: value})
	return q
}

func (q *Update) SetEntries(entries ...Entry) *Update {
	q.entries = append(q.entries, entries...)
	return q
}

func (q *Update) Where(conditions ...*Condition) *Update {
	q.where = append(q.where, conditions...)
	return q
}

func (q *Update) Filter(c Cond) *Update {
	conds, err := c.Conditions()
	if err != nil {
		q.err = err
		return q
	}
	return q.Where(conds...)
}

// All allows an update without conditions.
func (q *Update) All() *Update {
	q.all = true
	return q
}

func (q *Update) Render(rc *RenderContext) ([]*Query, error) {
	if q.err != nil {
		return nil, q.err
	}
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.table) == "" {
		return nil, missingField("update has no table")
	}
	if len(q.entries) == 0 {
		return nil, missingField("update of %s sets no columns", q.table)
	}
	where := q.where.compact()
	if len(where) == 0 && !q.all {
		return nil, missingField("update of %s has no conditions", q.table)
	}
	rc.reset()
	sets := make([]string, 0, len(q.entries))
	for _, e := range q.entries {
		if strings.TrimSpace(e.Key) == "" {
			return nil, missingField("update of %s has an entry without key", q.table)
		}
		sets = append(sets, e.Key+" = "+rc.value(e.Value))
	}
	whereSQL, err := where.Render(rc)
	if err != nil {
		return nil, err
	}
	sql, err := rc.execute(UpdateClauses, map[string]any{
		"Table": rc.quote(q.table),
		"Sets":  sets,
		"Where": whereSQL,
	})
	if err != nil {
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *Update) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}

func (q *Update) Prepare(d Dialect) ([]*Query, error) {
	return Prepare(q, d)
}

// Delete renders DELETE FROM ... WHERE .... Without conditions it fails unless All is called.
type Delete struct {
	table string
	where Conditions
	all   bool
	err   error
}

func DeleteFrom(table string) *Delete {
	return &Delete{table: table}
}

func (q *Delete) Where(conditions ...*Condition) *Delete {
	q.where = append(q.where, conditions...)
	return q
}

func (q *Delete) Filter(c Cond) *Delete {
	conds, err := c.Conditions()
	if err != nil {
		q.err = err
		return q
	}
	return q.Where(conds...)
}

func (q *Delete) All() *Delete {
	q.all = true
	return q
}

func (q *Delete) Render(rc *RenderContext) ([]*Query, error) {
	if q.err != nil {
		return nil, q.err
	}
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.table) == "" {
		return nil, missingField("delete has no table")
	}
	where := q.where.compact()
	if len(where) == 0 && !q.all {
		return nil, missingField("delete from %s has no conditions", q.table)
	}
	rc.reset()
	whereSQL, err := where.Render(rc)
	if err != nil {
		return nil, err
	}
	sql, err := rc.execute(DeleteClauses, map[string]any{
		"Table": rc.quote(q.table),
		"Where": whereSQL,
	})
	if err != nil {
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *Delete) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}

func (q *Delete) Prepare(d Dialect) ([]*Query, error) {
	return Prepare(q, d)
}
