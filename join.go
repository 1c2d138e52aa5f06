package sqlkit

import (
	"strings"
)

type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	FullJoin  JoinType = "FULL"
)

type Join struct {
	Type  JoinType
	Table string
	Alias string
	On    Conditions
}

// NewJoin joins table on the given conditions. Use Raw values to compare columns:
// NewCondition("users.id", Equals, Raw("orders.user_id")).
func NewJoin(t JoinType, table string, on ...*Condition) *Join {
	return &Join{Type: t, Table: table, On: on}
}

func (j *Join) As(alias string) *Join {
	j.Alias = alias
	return j
}

func (j *Join) Render(rc *RenderContext) (string, error) {
	if strings.TrimSpace(j.Table) == "" {
		return "", missingField("join has no table")
	}
	conditions := j.On.compact()
	if len(conditions) == 0 {
		return "", missingField("join on %s has no conditions", j.Table)
	}
	typ := j.Type
	if typ == "" {
		typ = InnerJoin
	}
	switch typ {
	case InnerJoin, LeftJoin, RightJoin:
	case FullJoin:
		if err := RejectDialect(rc.Dialect, MySQL, MariaDB); err != nil {
			return "", notSupported("FULL JOIN is not available on dialect %s", rc.Dialect)
		}
	default:
		return "", invalidValue("unknown join type %q", typ)
	}
	on, err := conditions.Render(rc)
	if err != nil {
		return "", err
	}
	s := string(typ) + " JOIN " + rc.quote(j.Table)
	if j.Alias != "" {
		s += " AS " + j.Alias
	}
	return s + " ON " + on, nil
}

func (j *Join) SQL(d Dialect) (string, error) {
	return j.Render(NewRenderContext(d))
}
