package sqlkit

import (
	"testing"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	o := NewOrder().Rule("age", Descending).Rule("name", Ascending)
	assert.Equal(t, "ORDER BY age DESC, name ASC", o.String())

	o.Rule("age", Ascending)
	assert.Equal(t, "ORDER BY age ASC, name ASC", o.String())
	assert.Len(t, o.Rules(), 2)

	assert.Equal(t, "ORDER BY id DESC, created_at DESC", NewOrder().Desc("id", "created_at").String())
	assert.Equal(t, "", NewOrder().String())

	var nilOrder *Order
	assert.True(t, nilOrder.IsEmpty())

	_, err := NewOrder().Rule("age", Direction("UP")).Render(nil)
	assert.True(t, IsInvalidValueType(err))
	_, err = NewOrder().Asc("").Render(nil)
	assert.True(t, IsMissingRequiredField(err))
}

func TestLimitOffset(t *testing.T) {
	tests := []struct {
		dialect    Dialect
		limit      null.Int
		offset     null.Int
		wantLimit  string
		wantOffset string
	}{
		{MySQL, null.IntFrom(10), null.IntFrom(20), "10", "20"},
		{PostgreSQL, null.IntFrom(10), null.Int{}, "10", ""},
		{SQLite, null.IntFrom(0), null.IntFrom(0), "0", ""},
		{MySQL, null.Int{}, null.IntFrom(20), maxMySQLRows, "20"},
		{MariaDB, null.Int{}, null.IntFrom(5), maxMySQLRows, "5"},
		{SQLite, null.Int{}, null.IntFrom(20), "-1", "20"},
		{PostgreSQL, null.Int{}, null.IntFrom(20), "", "20"},
	}
	for _, tt := range tests {
		l, o, err := limitOffset(tt.dialect, tt.limit, tt.offset)
		require.NoError(t, err, tt.dialect)
		assert.Equal(t, tt.wantLimit, l, tt.dialect)
		assert.Equal(t, tt.wantOffset, o, tt.dialect)
	}

	_, _, err := limitOffset(MySQL, null.IntFrom(-1), null.Int{})
	assert.True(t, IsInvalidValueType(err))
	_, _, err = limitOffset(MySQL, null.Int{}, null.IntFrom(-3))
	assert.True(t, IsInvalidValueType(err))
	_, _, err = limitOffset(Unknown, null.Int{}, null.IntFrom(3))
	assert.True(t, IsFeatureNotSupported(err))
}
