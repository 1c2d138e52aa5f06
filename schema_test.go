package sqlkit

import (
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Audit struct {
	CreatedAt time.Time `sqlkit:"expr=CURRENT_TIMESTAMP"`
	UpdatedAt *time.Time
}

type SchemaUser struct {
	ID       int64  `sqlkit:"incr"`
	Email    string `sqlkit:"type=VARCHAR(128);unique"`
	Nickname null.String
	Age      uint8
	Score    float64 `sqlkit:"default=0"`
	Role     string  `sqlkit:"type=CHAR(8);comment=access level"`
	Internal string  `sqlkit:"-"`
	Settings map[string]any
	Audit
}

type SchemaMembership struct {
	UserID int64 `sqlkit:"pk"`
	OrgID  int64 `sqlkit:"pk;name=organization_id"`
	Main   bool  `sqlkit:"null"`
}

type renamedTable struct {
	ID int `sqlkit:"pk"`
}

func (renamedTable) Table() Table {
	return Table{Name: "legacy_things", Comment: "kept for reports"}
}

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable(&SchemaUser{})
	require.NoError(t, err)
	assert.Equal(t, "schema_user", tbl.Name)
	assert.Equal(t, []string{"id", "email", "nickname", "age", "score", "role", "settings", "created_at", "updated_at"}, tbl.ColumnKeys())
	assert.Equal(t, []string{"id"}, tbl.PrimaryKeys())

	want := map[string]string{
		"id":         "id BIGINT NOT NULL PRIMARY KEY AUTO_INCREMENT",
		"email":      "email VARCHAR(128) NOT NULL UNIQUE",
		"nickname":   "nickname VARCHAR(255)",
		"age":        "age TINYINT UNSIGNED NOT NULL",
		"score":      "score DOUBLE NOT NULL DEFAULT '0'",
		"role":       "role CHAR(8) NOT NULL COMMENT 'access level'",
		"settings":   "settings JSON",
		"created_at": "created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP",
		"updated_at": "updated_at DATETIME",
	}
	for key, s := range want {
		got, err := tbl.Column(key).SQL(MySQL)
		require.NoError(t, err, key)
		assert.Equal(t, s, got, key)
	}
}

func TestParseTag(t *testing.T) {
	tags := ParseTag("type=ENUM; param=admin;member ; pk")
	assert.Equal(t, "ENUM", tags["type"])
	assert.Equal(t, "admin", tags["param"])
	assert.Equal(t, "true", tags["member"])
	assert.Equal(t, "true", tags["pk"])
	assert.Empty(t, ParseTag(" "))
	assert.Empty(t, ParseTag(";=x;"))

	tags = ParseTag(`type=ENUM;param=admin\;member;Comment= a=b `)
	assert.Equal(t, "admin;member", tags["param"])
	assert.Equal(t, "a=b", tags["comment"])

	type roles struct {
		Role string `sqlkit:"type=ENUM;param=admin\\;member"`
	}
	tbl, err := ParseTable(roles{})
	require.NoError(t, err)
	got, err := tbl.Column("role").SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "role ENUM('admin', 'member') NOT NULL", got)
}

func TestParseTableCompositeKey(t *testing.T) {
	tbl, err := ParseTable(SchemaMembership{})
	require.NoError(t, err)
	assert.Equal(t, "schema_membership", tbl.Name)
	assert.Equal(t, []string{"user_id", "organization_id"}, tbl.PrimaryKeys())

	got, err := NewTableCreate(tbl).SQL(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "schema_membership" (user_id BIGINT NOT NULL, organization_id BIGINT NOT NULL, main BOOLEAN, PRIMARY KEY (user_id, organization_id))`, got)
}

func TestParseTableCompositeAutoIncrement(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	prev := Logger()
	SetLogger(logger)
	defer SetLogger(prev)

	type pair struct {
		A int64 `sqlkit:"pk;incr"`
		B int64 `sqlkit:"pk"`
	}
	tbl, err := ParseTable(pair{})
	require.NoError(t, err)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "a", entry.Data["column"])
	assert.Equal(t, "pair", entry.Data["table"])
	assert.Equal(t, "PRIMARY_KEY_AUTOINCREMENT", entry.Data["requested"])
	assert.Equal(t, "PRIMARY_KEY", entry.Data["applied"])

	got, err := NewTableCreate(tbl).SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `pair` (a BIGINT NOT NULL, b BIGINT NOT NULL, PRIMARY KEY (a, b))", got)
}

func TestParseTableCache(t *testing.T) {
	a, err := ParseTable((*SchemaMembership)(nil))
	require.NoError(t, err)
	b, err := ParseTable(&SchemaMembership{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)

	a.Columns[0].Key = "changed"
	c, err := ParseTable(SchemaMembership{})
	require.NoError(t, err)
	assert.Equal(t, "user_id", c.Columns[0].Key)
}

func TestParseTableOverride(t *testing.T) {
	tbl, err := ParseTable(renamedTable{})
	require.NoError(t, err)
	assert.Equal(t, "legacy_things", tbl.Name)
	assert.Equal(t, "kept for reports", tbl.Comment)
	require.Len(t, tbl.Columns, 1)
	assert.Equal(t, "id", tbl.Columns[0].Key)
}

func TestParseTableErrors(t *testing.T) {
	_, err := ParseTable(nil)
	assert.True(t, IsMissingRequiredField(err))

	_, err = ParseTable(42)
	assert.True(t, IsInvalidValueType(err))

	type badParam struct {
		Code string `sqlkit:"type=VARCHAR"`
	}
	_, err = ParseTable(badParam{})
	assert.True(t, IsMissingRequiredField(err))

	type blankExpr struct {
		UpdatedAt time.Time `sqlkit:"expr="`
	}
	blank, err := ParseTable(blankExpr{})
	require.NoError(t, err)
	_, err = NewTableCreate(blank).SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	tbl := NewTable("given")
	same, err := ParseTable(tbl)
	require.NoError(t, err)
	assert.Same(t, tbl, same)
}
