package sqlkit

import (
	"strconv"
	"strings"

	"github.com/guregu/null/v5"
	"github.com/samber/lo"
)

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

type OrderRule struct {
	Key       string
	Direction Direction
}

// Order keeps its rules in the order they were first added.
type Order struct {
	rules []OrderRule
}

func NewOrder() *Order {
	return new(Order)
}

// Rule adds key with dir. Setting a key again changes its direction but keeps its position.
func (o *Order) Rule(key string, dir Direction) *Order {
	if _, i, ok := lo.FindIndexOf(o.rules, func(r OrderRule) bool { return r.Key == key }); ok {
		o.rules[i].Direction = dir
		return o
	}
	o.rules = append(o.rules, OrderRule{Key: key, Direction: dir})
	return o
}

func (o *Order) Asc(keys ...string) *Order {
	for _, k := range keys {
		o.Rule(k, Ascending)
	}
	return o
}

func (o *Order) Desc(keys ...string) *Order {
	for _, k := range keys {
		o.Rule(k, Descending)
	}
	return o
}

func (o *Order) Rules() []OrderRule {
	return append([]OrderRule(nil), o.rules...)
}

func (o *Order) IsEmpty() bool {
	return o == nil || len(o.rules) == 0
}

// Render returns "ORDER BY k1 DIR, k2 DIR", or "" for an empty order.
func (o *Order) Render(_ *RenderContext) (string, error) {
	if o.IsEmpty() {
		return "", nil
	}
	items := make([]string, 0, len(o.rules))
	for _, r := range o.rules {
		if strings.TrimSpace(r.Key) == "" {
			return "", missingField("order rule has no key")
		}
		dir := r.Direction
		if dir == "" {
			dir = Ascending
		}
		if dir != Ascending && dir != Descending {
			return "", invalidValue("unknown sort direction %q for %s", dir, r.Key)
		}
		items = append(items, r.Key+" "+string(dir))
	}
	return "ORDER BY " + strings.Join(items, ", "), nil
}

func (o *Order) String() string {
	s, err := o.Render(nil)
	if err != nil {
		return "<invalid order: " + err.Error() + ">"
	}
	return s
}

// maxMySQLRows is the documented way to ask MySQL for "all remaining rows".
const maxMySQLRows = "18446744073709551615"

// limitOffset returns the LIMIT and OFFSET operands. An offset without a limit is completed
// with the dialect's "no limit" value where the dialect needs one.
func limitOffset(d Dialect, limit, offset null.Int) (string, string, error) {
	if limit.Valid && limit.Int64 < 0 {
		return "", "", invalidValue("negative limit %d", limit.Int64)
	}
	if offset.Valid && offset.Int64 < 0 {
		return "", "", invalidValue("negative offset %d", offset.Int64)
	}
	var l, o string
	if limit.Valid {
		l = strconv.FormatInt(limit.Int64, 10)
	}
	if offset.Valid && offset.Int64 > 0 {
		o = strconv.FormatInt(offset.Int64, 10)
		if l == "" && !d.Supports(FeatureOffsetWithoutLimit) {
			switch {
			case d.isMySQLFamily():
				l = maxMySQLRows
			case d == SQLite:
				l = "-1"
			default:
				return "", "", notSupported("OFFSET without LIMIT is not available on dialect %s", d)
			}
		}
	}
	return l, o, nil
}
