package sqlkit

import (
	"database/sql"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/guregu/null/v5"
	"github.com/iamdanielyin/structs"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var tableParsedMap sync.Map

// TableInterface lets a struct override parts of the table ParseTable derives from it.
type TableInterface interface {
	Table() Table
}

// ParseTable derives a Table from a struct or struct pointer. Table and column names are the
// snake-cased Go names unless a tag says otherwise:
//
//	type User struct {
//		ID    int64  `sqlkit:"pk;incr"`
//		Email string `sqlkit:"type=VARCHAR(128);unique"`
//		Bio   null.String
//	}
//
// Tag keys: name, type, param, pk, incr, unique, null, unsigned, default, expr, comment; "-"
// skips the field. Non-nullable Go types produce NOT NULL columns.
func ParseTable(value any) (*Table, error) {
	if value == nil {
		return nil, missingField("value is nil")
	}
	if t, ok := value.(*Table); ok {
		return t, nil
	}
	reflectType := reflect.TypeOf(value)
	if reflectType.Kind() == reflect.Ptr {
		reflectType = reflectType.Elem()
	}
	if reflectType.Kind() != reflect.Struct {
		return nil, invalidValue("table must be a struct or a struct pointer, got %T", value)
	}
	if cachedValue, ok := tableParsedMap.Load(reflectType); ok {
		return cloneTable(cachedValue.(*Table)), nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Ptr && reflect.ValueOf(value).IsNil() {
		value = reflect.New(reflectType).Interface()
	}

	s := structs.New(value)
	tbl := &Table{Name: strcase.ToSnake(s.Name())}
	columns, err := parseColumns(s)
	if err != nil {
		return nil, err
	}
	tbl.Columns = columns
	if pks := tbl.PrimaryKeys(); len(pks) > 1 {
		// A composite key cannot be declared per column.
		for _, c := range tbl.Columns {
			if c.Constraint == PrimaryKeyAutoIncrement {
				Logger().WithFields(logrus.Fields{
					"table":     tbl.Name,
					"column":    c.Key,
					"type":      c.Type.Name(),
					"requested": PrimaryKeyAutoIncrement.String(),
					"applied":   PrimaryKey.String(),
				}).Warn("sqlkit: autoincrement is not possible in a composite primary key, falling back to plain primary key")
			}
			if c.Constraint == PrimaryKey || c.Constraint == PrimaryKeyAutoIncrement {
				c.Constraint = ConstraintNone
			}
		}
		tbl.AddConstraint(NewPrimaryKeyConstraint("", pks...))
	}
	if ti, ok := value.(TableInterface); ok {
		override := ti.Table()
		if err := mergo.Merge(tbl, override, mergo.WithOverride); err != nil {
			return nil, errors.Wrap(err, "sqlkit: failed to merge table")
		}
	}
	tableParsedMap.Store(reflectType, tbl)
	return cloneTable(tbl), nil
}

func cloneTable(t *Table) *Table {
	copied := *t
	copied.Columns = make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		cc := *c
		copied.Columns[i] = &cc
	}
	copied.Constraints = append([]TableConstraint(nil), t.Constraints...)
	return &copied
}

func parseColumns(s *structs.Struct) ([]*Column, error) {
	var columns []*Column
	for _, field := range s.Fields() {
		fieldValue := field.Value()
		if fieldValue == nil {
			continue
		}
		fieldReflectType := reflect.TypeOf(fieldValue)
		nullable := false
		if fieldReflectType.Kind() == reflect.Ptr {
			fieldReflectType = fieldReflectType.Elem()
			nullable = true
		}
		tags := ParseTag(field.Tag("sqlkit"))
		if _, skip := tags["-"]; skip {
			continue
		}

		if field.IsEmbedded() {
			embeddedValue := fieldValue
			if field.Kind() == reflect.Ptr && field.IsZero() {
				embeddedValue = reflect.New(fieldReflectType).Interface()
			}
			if fieldReflectType.Kind() != reflect.Struct {
				continue
			}
			embedded, err := parseColumns(structs.New(embeddedValue))
			if err != nil {
				return nil, err
			}
			columns = append(columns, embedded...)
			continue
		}

		c := &Column{Key: strcase.ToSnake(field.Name())}
		if !parseColumnType(reflect.New(fieldReflectType).Elem().Interface(), fieldReflectType.Kind(), c) {
			continue
		}
		c.NotNull = c.NotNull && !nullable
		if err := applyColumnTag(c, tags); err != nil {
			return nil, errors.WithMessagef(err, "field %s", field.Name())
		}
		columns = append(columns, c)
	}
	return columns, nil
}

func applyColumnTag(c *Column, tags map[string]string) error {
	if v, ok := tags["type"]; ok {
		name, param := splitTypeParameter(v)
		t, ok := LookupDataType(name)
		if !ok {
			t = NewDataType(name, WithParameter(false))
		}
		c.Type = t
		c.Parameter = null.NewString(param, param != "")
		c.Unsigned = false
	}
	for k, v := range tags {
		switch k {
		case "name":
			c.Key = v
		case "param":
			c.Parameter = null.StringFrom(v)
		case "pk":
			if c.Constraint != PrimaryKeyAutoIncrement {
				c.Constraint = PrimaryKey
			}
		case "incr":
			c.Constraint = PrimaryKeyAutoIncrement
		case "unique":
			if c.Constraint == ConstraintNone {
				c.Constraint = Unique
			}
		case "null":
			c.NotNull = v == "false"
		case "unsigned":
			c.Unsigned = true
		case "default":
			c.Default = v
		case "expr":
			c.DefaultExpression = null.StringFrom(v)
		case "comment":
			c.Comment = v
		}
	}
	if c.Type.RequiresParameter() && !c.Parameter.Valid {
		return missingField("data type %s of %s needs a param tag", c.Type, c.Key)
	}
	return nil
}

// splitTypeParameter splits "VARCHAR(64)" into "VARCHAR" and "64".
func splitTypeParameter(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.Index(s, "(")
	if i < 0 || !strings.HasSuffix(s, ")") {
		return s, ""
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1 : len(s)-1])
}

// parseColumnType infers type, nullability and signedness from a Go value. It returns false
// for values that have no column representation.
func parseColumnType(v any, kind reflect.Kind, c *Column) bool {
	c.NotNull = true
	switch v.(type) {
	case int8:
		c.Type = TypeTinyInt
	case int16:
		c.Type = TypeSmallInt
	case int32:
		c.Type = TypeInt
	case int, int64:
		c.Type = TypeBigInt
	case uint8:
		c.Type, c.Unsigned = TypeTinyInt, true
	case uint16:
		c.Type, c.Unsigned = TypeSmallInt, true
	case uint32:
		c.Type, c.Unsigned = TypeInt, true
	case uint, uint64:
		c.Type, c.Unsigned = TypeBigInt, true
	case float32:
		c.Type = TypeFloat
	case float64:
		c.Type = TypeDouble
	case bool:
		c.Type = TypeBoolean
	case string:
		c.Type, c.Parameter = TypeVarchar, null.StringFrom("255")
	case time.Time:
		c.Type = TypeDateTime
	case []byte, json.RawMessage:
		c.Type = TypeBlob
	case sql.NullInt16:
		c.Type, c.NotNull = TypeSmallInt, false
	case sql.NullInt32:
		c.Type, c.NotNull = TypeInt, false
	case sql.NullInt64, null.Int:
		c.Type, c.NotNull = TypeBigInt, false
	case sql.NullFloat64, null.Float:
		c.Type, c.NotNull = TypeDouble, false
	case sql.NullBool, null.Bool:
		c.Type, c.NotNull = TypeBoolean, false
	case sql.NullString, null.String:
		c.Type, c.Parameter, c.NotNull = TypeVarchar, null.StringFrom("255"), false
	case sql.NullTime, null.Time:
		c.Type, c.NotNull = TypeDateTime, false
	}
	if !c.Type.IsZero() {
		return true
	}
	switch kind {
	case reflect.Bool:
		c.Type = TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		c.Type = TypeBigInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		c.Type, c.Unsigned = TypeBigInt, true
	case reflect.Float32, reflect.Float64:
		c.Type = TypeDouble
	case reflect.String:
		c.Type, c.Parameter = TypeVarchar, null.StringFrom("255")
	case reflect.Array, reflect.Slice, reflect.Map, reflect.Struct:
		c.Type, c.NotNull = TypeJSON, false
	default:
		return false
	}
	return true
}

// ParseTag reads a "key=value;key;..." tag into a map. Keys are lower-cased and a bare key
// maps to "true". A value keeps a literal semicolon written as "\;".
func ParseTag(tag string) map[string]string {
	result := make(map[string]string)
	for _, item := range splitTagItems(tag) {
		key, value, found := strings.Cut(item, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if !found {
			value = "true"
		}
		result[key] = strings.TrimSpace(value)
	}
	return result
}

func splitTagItems(tag string) []string {
	var (
		items []string
		b     strings.Builder
	)
	for i := 0; i < len(tag); i++ {
		switch {
		case tag[i] == '\\' && i+1 < len(tag) && tag[i+1] == ';':
			b.WriteByte(';')
			i++
		case tag[i] == ';':
			items = append(items, b.String())
			b.Reset()
		default:
			b.WriteByte(tag[i])
		}
	}
	items = append(items, b.String())
	return lo.FilterMap(items, func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}
