package sqlkit

import (
	"strings"

	"github.com/guregu/null/v5"
	"github.com/samber/lo"
)

type TypeCategory int

const (
	CategoryOther TypeCategory = iota
	CategoryString
	CategoryInteger
	CategoryFloat
	CategoryTemporal
	CategoryBinary
	CategoryList
	CategoryBoolean
	CategoryJSON
)

// DataType describes a column type. Values are immutable; build custom ones with NewDataType.
type DataType struct {
	name              string
	category          TypeCategory
	canHaveParameter  bool
	requiresParameter bool
	canBeUnsigned     bool
}

type DataTypeOption func(*DataType)

// WithParameter lets the type take a size or precision argument.
func WithParameter(required bool) DataTypeOption {
	return func(t *DataType) {
		t.canHaveParameter = true
		t.requiresParameter = required
	}
}

func WithUnsignedSupport() DataTypeOption {
	return func(t *DataType) {
		t.canBeUnsigned = true
	}
}

func WithCategory(c TypeCategory) DataTypeOption {
	return func(t *DataType) {
		t.category = c
	}
}

func NewDataType(name string, opts ...DataTypeOption) DataType {
	t := DataType{name: strings.ToUpper(strings.TrimSpace(name))}
	for _, opt := range opts {
		opt(&t)
	}
	if t.category == CategoryList {
		t.canHaveParameter = true
		t.requiresParameter = true
	}
	return t
}

var (
	TypeChar       = NewDataType("CHAR", WithCategory(CategoryString), WithParameter(false))
	TypeVarchar    = NewDataType("VARCHAR", WithCategory(CategoryString), WithParameter(true))
	TypeTinyText   = NewDataType("TINYTEXT", WithCategory(CategoryString))
	TypeText       = NewDataType("TEXT", WithCategory(CategoryString))
	TypeMediumText = NewDataType("MEDIUMTEXT", WithCategory(CategoryString))
	TypeLongText   = NewDataType("LONGTEXT", WithCategory(CategoryString))

	TypeBinary     = NewDataType("BINARY", WithCategory(CategoryBinary), WithParameter(false))
	TypeVarbinary  = NewDataType("VARBINARY", WithCategory(CategoryBinary), WithParameter(true))
	TypeTinyBlob   = NewDataType("TINYBLOB", WithCategory(CategoryBinary))
	TypeBlob       = NewDataType("BLOB", WithCategory(CategoryBinary))
	TypeMediumBlob = NewDataType("MEDIUMBLOB", WithCategory(CategoryBinary))
	TypeLongBlob   = NewDataType("LONGBLOB", WithCategory(CategoryBinary))

	TypeEnum = NewDataType("ENUM", WithCategory(CategoryList))
	TypeSet  = NewDataType("SET", WithCategory(CategoryList))

	TypeBit       = NewDataType("BIT", WithCategory(CategoryOther), WithParameter(false))
	TypeBoolean   = NewDataType("BOOLEAN", WithCategory(CategoryBoolean))
	TypeTinyInt   = NewDataType("TINYINT", WithCategory(CategoryInteger), WithParameter(false), WithUnsignedSupport())
	TypeSmallInt  = NewDataType("SMALLINT", WithCategory(CategoryInteger), WithParameter(false), WithUnsignedSupport())
	TypeMediumInt = NewDataType("MEDIUMINT", WithCategory(CategoryInteger), WithParameter(false), WithUnsignedSupport())
	TypeInt       = NewDataType("INT", WithCategory(CategoryInteger), WithParameter(false), WithUnsignedSupport())
	TypeInteger   = NewDataType("INTEGER", WithCategory(CategoryInteger), WithParameter(false), WithUnsignedSupport())
	TypeBigInt    = NewDataType("BIGINT", WithCategory(CategoryInteger), WithParameter(false), WithUnsignedSupport())
	TypeFloat     = NewDataType("FLOAT", WithCategory(CategoryFloat), WithParameter(false), WithUnsignedSupport())
	TypeDouble    = NewDataType("DOUBLE", WithCategory(CategoryFloat), WithParameter(false), WithUnsignedSupport())
	TypeDecimal   = NewDataType("DECIMAL", WithCategory(CategoryFloat), WithParameter(false), WithUnsignedSupport())

	TypeDate      = NewDataType("DATE", WithCategory(CategoryTemporal))
	TypeDateTime  = NewDataType("DATETIME", WithCategory(CategoryTemporal), WithParameter(false))
	TypeTimestamp = NewDataType("TIMESTAMP", WithCategory(CategoryTemporal), WithParameter(false))
	TypeTime      = NewDataType("TIME", WithCategory(CategoryTemporal), WithParameter(false))
	TypeYear      = NewDataType("YEAR", WithCategory(CategoryTemporal))

	TypeJSON = NewDataType("JSON", WithCategory(CategoryJSON))
)

type dialectType struct {
	name string
	// dropParameter marks parameters the dialect has no syntax for, e.g. integer display widths.
	dropParameter bool
}

// dialectTypes overrides the catalog name per dialect. Types missing here keep their name.
var dialectTypes = map[Dialect]map[string]dialectType{
	PostgreSQL: {
		"TINYINT":    {name: "SMALLINT", dropParameter: true},
		"SMALLINT":   {name: "SMALLINT", dropParameter: true},
		"MEDIUMINT":  {name: "INTEGER", dropParameter: true},
		"INT":        {name: "INTEGER", dropParameter: true},
		"INTEGER":    {name: "INTEGER", dropParameter: true},
		"BIGINT":     {name: "BIGINT", dropParameter: true},
		"FLOAT":      {name: "REAL", dropParameter: true},
		"DOUBLE":     {name: "DOUBLE PRECISION", dropParameter: true},
		"DECIMAL":    {name: "NUMERIC"},
		"TINYTEXT":   {name: "TEXT"},
		"MEDIUMTEXT": {name: "TEXT"},
		"LONGTEXT":   {name: "TEXT"},
		"DATETIME":   {name: "TIMESTAMP"},
		"YEAR":       {name: "SMALLINT"},
	},
}

func (t DataType) Name() string {
	return t.name
}

func (t DataType) String() string {
	return t.name
}

func (t DataType) Category() TypeCategory {
	return t.category
}

func (t DataType) CanHaveParameter() bool {
	return t.canHaveParameter
}

func (t DataType) RequiresParameter() bool {
	return t.requiresParameter
}

func (t DataType) CanBeUnsigned() bool {
	return t.canBeUnsigned
}

func (t DataType) IsZero() bool {
	return t.name == ""
}

func (t DataType) IsInteger() bool {
	return t.category == CategoryInteger
}

func (t DataType) nameFor(d Dialect) dialectType {
	if dt, ok := dialectTypes[d][t.name]; ok {
		return dt
	}
	return dialectType{name: t.name}
}

// Render returns the type fragment for d, e.g. VARCHAR(64), INT UNSIGNED or ENUM('a', 'b').
func (t DataType) Render(d Dialect, param null.String, unsigned bool) (string, error) {
	if t.IsZero() {
		return "", missingField("data type is not set")
	}
	p := strings.TrimSpace(param.String)
	hasParam := param.Valid && p != ""
	if t.requiresParameter && !hasParam {
		return "", missingField("data type %s requires a parameter", t.name)
	}
	switch t.category {
	case CategoryBinary:
		if err := RejectDialect(d, PostgreSQL); err != nil {
			return "", notSupported("binary type %s is not available on dialect %s", t.name, d)
		}
	case CategoryList:
		if err := RejectDialect(d, SQLite, PostgreSQL); err != nil {
			return "", notSupported("list type %s is not available on dialect %s", t.name, d)
		}
		items := SplitAndTrimSpace(p, ";", true)
		if len(items) == 0 {
			return "", missingField("data type %s needs at least one value", t.name)
		}
		quoted := lo.Map(items, func(item string, _ int) string { return quoteString(d, item) })
		return t.name + "(" + strings.Join(quoted, ", ") + ")", nil
	}

	dt := t.nameFor(d)
	var b strings.Builder
	b.WriteString(dt.name)
	if t.canHaveParameter && hasParam && !dt.dropParameter {
		b.WriteString("(" + p + ")")
	}
	if unsigned && t.canBeUnsigned {
		if !d.Supports(FeatureUnsigned) && d != Unknown {
			return "", notSupported("UNSIGNED %s is not available on dialect %s", t.name, d)
		}
		b.WriteString(" UNSIGNED")
	}
	return b.String(), nil
}

var catalog = lo.KeyBy([]DataType{
	TypeChar, TypeVarchar, TypeTinyText, TypeText, TypeMediumText, TypeLongText,
	TypeBinary, TypeVarbinary, TypeTinyBlob, TypeBlob, TypeMediumBlob, TypeLongBlob,
	TypeEnum, TypeSet, TypeBit, TypeBoolean,
	TypeTinyInt, TypeSmallInt, TypeMediumInt, TypeInt, TypeInteger, TypeBigInt,
	TypeFloat, TypeDouble, TypeDecimal,
	TypeDate, TypeDateTime, TypeTimestamp, TypeTime, TypeYear, TypeJSON,
}, func(t DataType) string { return t.name })

// LookupDataType finds a catalog type by name, case-insensitively.
func LookupDataType(name string) (DataType, bool) {
	t, ok := catalog[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}
