package sqlkit

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnAutoIncrement(t *testing.T) {
	want := map[Dialect]string{
		MySQL:      "id INTEGER PRIMARY KEY AUTO_INCREMENT",
		MariaDB:    "id INTEGER PRIMARY KEY AUTO_INCREMENT",
		SQLite:     "id INTEGER PRIMARY KEY AUTOINCREMENT",
		PostgreSQL: "id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
	}
	for d, s := range want {
		got, err := NewColumn("id", TypeInteger, PrimaryKeyAutoIncrement).SQL(d)
		require.NoError(t, err, d)
		assert.Equal(t, s, got, d)
	}
}

func TestColumnAutoIncrementFallback(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	for _, d := range Dialects {
		hook.Reset()
		c := NewColumn("code", TypeVarchar, PrimaryKeyAutoIncrement).WithParameter("64")
		got, err := c.Render(&RenderContext{Dialect: d, Logger: logger})
		require.NoError(t, err, d)
		assert.Equal(t, "code VARCHAR(64) PRIMARY KEY", got, d)
		assert.Equal(t, PrimaryKeyAutoIncrement, c.Constraint, "rendering must not modify the column")

		entry := hook.LastEntry()
		require.NotNil(t, entry, d)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "PRIMARY_KEY", entry.Data["applied"])
		assert.Equal(t, "code", entry.Data["column"])
	}

	// SQLite only auto-increments a bare INTEGER.
	hook.Reset()
	got, err := NewColumn("id", TypeBigInt, PrimaryKeyAutoIncrement).Render(&RenderContext{Dialect: SQLite, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, "id BIGINT PRIMARY KEY", got)
	assert.Len(t, hook.Entries, 1)
}

func TestColumnRender(t *testing.T) {
	tests := []struct {
		name    string
		column  *Column
		dialect Dialect
		want    string
	}{
		{"unique", NewColumn("email", TypeVarchar, Unique).WithParameter("128").WithNotNull(), MySQL, "email VARCHAR(128) NOT NULL UNIQUE"},
		{"primary key", NewColumn("code", TypeChar, PrimaryKey).WithParameter("8"), SQLite, "code CHAR(8) PRIMARY KEY"},
		{"unsigned", NewColumn("age", TypeTinyInt).WithUnsigned().WithNotNull(), MariaDB, "age TINYINT UNSIGNED NOT NULL"},
		{"bool default", NewColumn("active", TypeBoolean).WithDefault(true), MySQL, "active BOOLEAN DEFAULT 1"},
		{"bool default false", NewColumn("active", TypeBoolean).WithDefault(false), SQLite, "active BOOLEAN DEFAULT 0"},
		{"bool default postgres", NewColumn("active", TypeBoolean).WithDefault(true), PostgreSQL, "active BOOLEAN DEFAULT TRUE"},
		{"number default is quoted", NewColumn("qty", TypeInt).WithNotNull().WithDefault(5), MySQL, "qty INT NOT NULL DEFAULT '5'"},
		{"string default", NewColumn("status", TypeVarchar).WithParameter("16").WithDefault("it's new"), PostgreSQL, "status VARCHAR(16) DEFAULT 'it''s new'"},
		{"expression wins", NewColumn("created_at", TypeTimestamp).WithDefault("x").WithDefaultExpression("CURRENT_TIMESTAMP"), MySQL, "created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
		{"raw default", NewColumn("uid", TypeVarchar).WithParameter("36").WithDefault(Raw("(uuid())")), MySQL, "uid VARCHAR(36) DEFAULT (uuid())"},
		{"comment", NewColumn("name", TypeVarchar).WithParameter("32").WithComment("user's name"), MySQL, "name VARCHAR(32) COMMENT 'user''s name'"},
		{"comment skipped", NewColumn("name", TypeVarchar).WithParameter("32").WithComment("user's name"), SQLite, "name VARCHAR(32)"},
		{"postgres types", NewColumn("body", TypeLongText).WithNotNull(), PostgreSQL, "body TEXT NOT NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.column.SQL(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := tt.column.SQL(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestColumnRenderErrors(t *testing.T) {
	_, err := NewColumn("", TypeInt).SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	_, err = NewColumn("id", DataType{}).SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	_, err = NewColumn("name", TypeVarchar).SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))
	assert.Contains(t, err.Error(), "column name")

	_, err = NewColumn("n", TypeBigInt).WithUnsigned().SQL(PostgreSQL)
	assert.True(t, IsFeatureNotSupported(err))

	for _, expr := range []string{"", "  "} {
		_, err = NewColumn("ts", TypeTimestamp).WithDefaultExpression(expr).SQL(MySQL)
		assert.True(t, IsMissingRequiredField(err), "%q", expr)
	}
}

func TestColumnAutoIncrementDefault(t *testing.T) {
	for _, d := range Dialects {
		_, err := NewColumn("id", TypeInteger, PrimaryKeyAutoIncrement).WithDefault(0).SQL(d)
		assert.True(t, IsFeatureNotSupported(err), d)

		_, err = NewColumn("id", TypeInteger, PrimaryKeyAutoIncrement).WithDefaultExpression("1").SQL(d)
		assert.True(t, IsFeatureNotSupported(err), d)
	}

	// A column that falls back to a plain primary key keeps its default.
	logger, hook := logtest.NewNullLogger()
	got, err := NewColumn("code", TypeChar, PrimaryKeyAutoIncrement).WithParameter("4").WithDefault("none").
		Render(&RenderContext{Dialect: PostgreSQL, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, "code CHAR(4) PRIMARY KEY DEFAULT 'none'", got)
	assert.Len(t, hook.Entries, 1)
}

func TestColumnString(t *testing.T) {
	assert.Equal(t, "id BIGINT NOT NULL PRIMARY KEY", NewColumn("id", TypeBigInt, PrimaryKey).WithNotNull().String())
	assert.Contains(t, NewColumn("name", TypeVarchar).String(), "<invalid column")
}
