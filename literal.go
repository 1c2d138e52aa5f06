package sqlkit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Raw is an SQL expression that is emitted verbatim, e.g. a column reference in a join or
// CURRENT_TIMESTAMP. It is never quoted nor bound.
type Raw string

var numericRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// quoteString wraps s in single quotes. MySQL and MariaDB also treat backslash as an escape.
func quoteString(d Dialect, s string) string {
	if d.isMySQLFamily() {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// numericText returns the textual form of v if v is a number or a decimal number string.
func numericText(v any) (string, bool) {
	switch x := v.(type) {
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case json.Number:
		return numericText(string(x))
	case string:
		s := strings.TrimSpace(x)
		if numericRe.MatchString(s) {
			return s, true
		}
	case driver.Valuer:
		if val, err := x.Value(); err == nil && val != nil {
			return numericText(val)
		}
	}
	return "", false
}

func formatFloat(f float64, bitSize int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize), true
}

// textOf returns the string form of a value for quoting.
func textOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05.999999")
	case driver.Valuer:
		if val, err := x.Value(); err == nil && val != nil {
			return textOf(val)
		}
	}
	if s, ok := numericText(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	if vr, ok := v.(driver.Valuer); ok {
		val, err := vr.Value()
		return err == nil && val == nil
	}
	return false
}

func booleanLiteral(d Dialect, b bool) string {
	if d == PostgreSQL {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	if b {
		return "1"
	}
	return "0"
}

// literal renders v type-aware: numbers bare, booleans normalized, NULL for nil, everything else quoted.
func literal(d Dialect, v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case Raw:
		return string(x)
	case bool:
		return booleanLiteral(d, x)
	}
	if isNilValue(v) {
		return "NULL"
	}
	if vr, ok := v.(driver.Valuer); ok {
		if val, err := vr.Value(); err == nil {
			return literal(d, val)
		}
	}
	if s, ok := v.(string); ok {
		return quoteString(d, s)
	}
	if s, ok := numericText(v); ok {
		return s
	}
	return quoteString(d, textOf(v))
}
