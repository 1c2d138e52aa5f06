package sqlkit

import (
	"sort"
	"strings"
)

// Entry is a column/value pair of an INSERT or UPDATE.
type Entry struct {
	Key   string
	Value any
}

// Cond is a shorthand for AND-ed conditions. A key is a column optionally followed by an
// operator: Cond{"name": "Bob", "age >=": 18, "deleted_at is null": nil}. Keys are applied in
// sorted order.
type Cond map[string]any

func (c Cond) Conditions() (Conditions, error) {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var result Conditions
	for _, k := range keys {
		key, op, err := splitCondKey(k)
		if err != nil {
			return nil, err
		}
		result = append(result, NewCondition(key, op, c[k]))
	}
	return result, nil
}

func splitCondKey(s string) (string, Operator, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", Operator{}, missingField("condition key is empty")
	}
	if len(fields) == 1 {
		return fields[0], Equals, nil
	}
	op, ok := ParseOperator(strings.Join(fields[1:], " "))
	if !ok {
		return "", Operator{}, invalidValue("unknown operator in %q", s)
	}
	return fields[0], op, nil
}
