package sqlkit

import (
	"strings"
)

type operandKind int

const (
	operandSingle operandKind = iota
	operandNone
	operandList
	operandPair
)

// Operator is a comparison operator together with the shape of its right-hand operand.
type Operator struct {
	name    string
	symbol  string
	operand operandKind
	numeric bool
}

var (
	Equals        = Operator{name: "EQUALS", symbol: "="}
	NotEquals     = Operator{name: "NOT_EQUALS", symbol: "<>"}
	LessThan      = Operator{name: "LESS_THAN", symbol: "<", numeric: true}
	GreaterThan   = Operator{name: "GREATER_THAN", symbol: ">", numeric: true}
	LessEquals    = Operator{name: "LESS_EQUALS", symbol: "<=", numeric: true}
	GreaterEquals = Operator{name: "GREATER_EQUALS", symbol: ">=", numeric: true}
	IsNull        = Operator{name: "IS_NULL", symbol: "IS NULL", operand: operandNone}
	IsNotNull     = Operator{name: "IS_NOT_NULL", symbol: "IS NOT NULL", operand: operandNone}
	In            = Operator{name: "IN", symbol: "IN", operand: operandList}
	NotIn         = Operator{name: "NOT_IN", symbol: "NOT IN", operand: operandList}
	Between       = Operator{name: "BETWEEN", symbol: "BETWEEN", operand: operandPair}
	Like          = Operator{name: "LIKE", symbol: "LIKE"}
)

// Operators lists the built-in operators.
var Operators = []Operator{Equals, NotEquals, LessThan, GreaterThan, LessEquals, GreaterEquals, IsNull, IsNotNull, In, NotIn, Between, Like}

func (o Operator) Name() string {
	return o.name
}

func (o Operator) Symbol() string {
	return o.symbol
}

// HasValue is false for operators without a right-hand operand.
func (o Operator) HasValue() bool {
	return o.operand != operandNone
}

// NeedToBeANumber reports whether the operand must be numeric.
func (o Operator) NeedToBeANumber() bool {
	return o.numeric
}

func (o Operator) IsZero() bool {
	return o.symbol == ""
}

func (o Operator) String() string {
	return o.name
}

// ParseOperator resolves a symbol ("=", "!=", ">=", "not in", "is null", ...) or name ("GREATER_THAN").
func ParseOperator(s string) (Operator, bool) {
	s = strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	if s == "!=" {
		return NotEquals, true
	}
	for _, op := range Operators {
		if op.symbol == s || op.name == s || op.name == strings.ReplaceAll(s, " ", "_") {
			return op, true
		}
	}
	return Operator{}, false
}

// SelectFunction wraps a key or value in an aggregate, e.g. COUNT(id).
type SelectFunction string

const (
	FuncNone  SelectFunction = ""
	FuncCount SelectFunction = "COUNT"
	FuncAvg   SelectFunction = "AVG"
	FuncSum   SelectFunction = "SUM"
	FuncMax   SelectFunction = "MAX"
	FuncMin   SelectFunction = "MIN"
)

func (f SelectFunction) wrap(s string) string {
	if f == FuncNone {
		return s
	}
	return string(f) + "(" + s + ")"
}
