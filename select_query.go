package sqlkit

import (
	"strings"

	"github.com/guregu/null/v5"
	"github.com/samber/lo"
)

// Select renders SELECT [DISTINCT] ... FROM ... [JOIN ...] [WHERE ...] [GROUP BY ... [HAVING ...]]
// [ORDER BY ...] [LIMIT ...] [OFFSET ...].
type Select struct {
	table    string
	distinct bool
	columns  []string
	joins    []*Join
	where    Conditions
	group    *Group
	order    *Order
	limit    null.Int
	offset   null.Int
	err      error
}

func SelectFrom(table string, columns ...string) *Select {
	return &Select{table: table, columns: columns}
}

func (q *Select) Columns(columns ...string) *Select {
	q.columns = append(q.columns, columns...)
	return q
}

func (q *Select) Distinct() *Select {
	q.distinct = true
	return q
}

func (q *Select) Join(joins ...*Join) *Select {
	q.joins = append(q.joins, joins...)
	return q
}

func (q *Select) Where(conditions ...*Condition) *Select {
	q.where = append(q.where, conditions...)
	return q
}

// Filter adds the conditions of c, AND-ed.
func (q *Select) Filter(c Cond) *Select {
	conds, err := c.Conditions()
	if err != nil {
		q.err = err
		return q
	}
	return q.Where(conds...)
}

func (q *Select) GroupBy(g *Group) *Select {
	q.group = g
	return q
}

func (q *Select) OrderBy(o *Order) *Select {
	q.order = o
	return q
}

func (q *Select) Limit(n int64) *Select {
	q.limit = null.IntFrom(n)
	return q
}

func (q *Select) Offset(n int64) *Select {
	q.offset = null.IntFrom(n)
	return q
}

func (q *Select) Render(rc *RenderContext) ([]*Query, error) {
	if q.err != nil {
		return nil, q.err
	}
	if err := rc.requireDialect(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.table) == "" {
		return nil, missingField("select has no table")
	}
	rc.reset()
	columns := lo.Filter(q.columns, func(c string, _ int) bool { return strings.TrimSpace(c) != "" })
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	data := map[string]any{
		"Distinct": q.distinct,
		"Columns":  columns,
		"Table":    rc.quote(q.table),
	}
	var joins []string
	for _, j := range q.joins {
		if j == nil {
			continue
		}
		s, err := j.Render(rc)
		if err != nil {
			return nil, err
		}
		joins = append(joins, s)
	}
	data["Joins"] = joins
	where, err := q.where.Render(rc)
	if err != nil {
		return nil, err
	}
	data["Where"] = where
	if q.group != nil {
		g, err := q.group.Render(rc)
		if err != nil {
			return nil, err
		}
		data["Group"] = g
	}
	orderBy, err := q.order.Render(rc)
	if err != nil {
		return nil, err
	}
	data["OrderBy"] = orderBy
	limit, offset, err := limitOffset(rc.Dialect, q.limit, q.offset)
	if err != nil {
		return nil, err
	}
	data["Limit"] = limit
	data["Offset"] = offset

	sql, err := rc.execute(QueryClauses, data)
	if err != nil {
		return nil, err
	}
	return []*Query{rc.query(sql)}, nil
}

func (q *Select) SQL(d Dialect) (string, error) {
	return GenerateSQL(q, d)
}

func (q *Select) Prepare(d Dialect) ([]*Query, error) {
	return Prepare(q, d)
}
