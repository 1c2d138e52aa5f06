package sqlkit

import (
	"reflect"
	"strings"

	"github.com/samber/lo"
)

type LogicType string

const (
	And LogicType = "AND"
	Or  LogicType = "OR"
)

// Condition is a single predicate. Type decides how it joins the condition before it.
type Condition struct {
	Key       string
	Value     any
	Operator  Operator
	Type      LogicType
	Not       bool
	KeyFunc   SelectFunction
	ValueFunc SelectFunction
}

func NewCondition(key string, op Operator, value any) *Condition {
	return &Condition{Key: key, Operator: op, Value: value, Type: And}
}

// Or makes the condition join its predecessor with OR.
func (c *Condition) Or() *Condition {
	c.Type = Or
	return c
}

func (c *Condition) And() *Condition {
	c.Type = And
	return c
}

func (c *Condition) Negate() *Condition {
	c.Not = !c.Not
	return c
}

func (c *Condition) WithKeyFunc(f SelectFunction) *Condition {
	c.KeyFunc = f
	return c
}

func (c *Condition) WithValueFunc(f SelectFunction) *Condition {
	c.ValueFunc = f
	return c
}

func (c *Condition) SQL(d Dialect) (string, error) {
	return c.Render(NewRenderContext(d))
}

func (c *Condition) String() string {
	s, err := c.SQL(Unknown)
	if err != nil {
		return "<invalid condition: " + err.Error() + ">"
	}
	return s
}

// Render returns "[NOT ]key op value". IS NULL and IS NOT NULL ignore Value.
func (c *Condition) Render(rc *RenderContext) (string, error) {
	if strings.TrimSpace(c.Key) == "" {
		return "", missingField("condition key is empty")
	}
	if c.Operator.IsZero() {
		return "", missingField("condition on %s has no operator", c.Key)
	}
	key := c.KeyFunc.wrap(c.Key)
	var s string
	switch c.Operator.operand {
	case operandNone:
		s = key + " " + c.Operator.symbol
	default:
		if isNilValue(c.Value) {
			return "", missingField("condition %s %s has no value", c.Key, c.Operator.symbol)
		}
		v, err := c.renderValue(rc)
		if err != nil {
			return "", err
		}
		s = key + " " + c.Operator.symbol + " " + v
	}
	if c.Not {
		s = "NOT " + s
	}
	return s, nil
}

func (c *Condition) renderValue(rc *RenderContext) (string, error) {
	switch c.Operator.operand {
	case operandList:
		items := listItems(c.Value)
		if len(items) == 0 {
			return "", missingField("condition %s %s needs at least one value", c.Key, c.Operator.symbol)
		}
		return "(" + strings.Join(lo.Map(items, func(v any, _ int) string { return c.ValueFunc.wrap(rc.value(v)) }), ", ") + ")", nil
	case operandPair:
		items := listItems(c.Value)
		if len(items) != 2 {
			return "", invalidValue("condition %s BETWEEN needs exactly two values, got %d", c.Key, len(items))
		}
		if lo.SomeBy(items, isNilValue) {
			return "", missingField("condition %s BETWEEN has a nil bound", c.Key)
		}
		return c.ValueFunc.wrap(rc.value(items[0])) + " AND " + c.ValueFunc.wrap(rc.value(items[1])), nil
	}
	if r, ok := c.Value.(Raw); ok {
		return c.ValueFunc.wrap(string(r)), nil
	}
	if c.Operator.numeric {
		text, ok := numericText(c.Value)
		if !ok {
			return "", invalidValue("condition %s %s needs a number, got %T", c.Key, c.Operator.symbol, c.Value)
		}
		if rc.Parameterized {
			return c.ValueFunc.wrap(rc.bind(c.Value)), nil
		}
		return c.ValueFunc.wrap(text), nil
	}
	if _, ok := c.Value.(bool); ok {
		return c.ValueFunc.wrap(rc.value(c.Value)), nil
	}
	return c.ValueFunc.wrap(rc.quoted(c.Value)), nil
}

// listItems flattens a slice or array value; any other value is a one-element list.
func listItems(v any) []any {
	if _, ok := v.([]byte); ok {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

// Conditions folds left to right, each element joined by its own Type.
type Conditions []*Condition

func (cs Conditions) Render(rc *RenderContext) (string, error) {
	var b strings.Builder
	for _, c := range cs {
		if c == nil {
			continue
		}
		s, err := c.Render(rc)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			typ := c.Type
			if typ != Or {
				typ = And
			}
			b.WriteString(" " + string(typ) + " ")
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// compact drops nil entries.
func (cs Conditions) compact() Conditions {
	return lo.Filter(cs, func(c *Condition, _ int) bool { return c != nil })
}

func (cs Conditions) SQL(d Dialect) (string, error) {
	return cs.Render(NewRenderContext(d))
}
