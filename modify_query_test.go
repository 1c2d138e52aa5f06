package sqlkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	q := UpdateTable("users").
		Set("name", "Bob").
		Set("active", true).
		Where(NewCondition("id", Equals, 1))

	got, err := q.SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET name = 'Bob', active = 1 WHERE id = '1'", got)

	got, err = q.SQL(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET name = 'Bob', active = TRUE WHERE id = '1'`, got)

	queries, err := q.Prepare(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET name = $1, active = $2 WHERE id = $3`, queries[0].SQL)
	assert.Equal(t, []any{"Bob", true, 1}, queries[0].Args)

	got, err = UpdateTable("users").
		SetEntries(Entry{Key: "visits", Value: Raw("visits + 1")}).
		All().
		SQL(SQLite)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET visits = visits + 1", got)

	got, err = UpdateTable("users").Set("score", 1.5).Filter(Cond{"id in": []int{1, 2}}).SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET score = 1.5 WHERE id IN (1, 2)", got)
}

func TestUpdateErrors(t *testing.T) {
	_, err := UpdateTable("users").Set("name", "Bob").SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	_, err = UpdateTable("users").All().SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	_, err = UpdateTable("").Set("a", 1).All().SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	_, err = UpdateTable("users").Set("", 1).All().SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))
}

func TestModifyIgnoresNilConditions(t *testing.T) {
	_, err := UpdateTable("users").Set("active", false).Where(nil).SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	_, err = DeleteFrom("users").Where(nil, nil).SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))

	got, err := UpdateTable("users").Set("active", false).Where(nil).All().SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET active = 0", got)

	got, err = DeleteFrom("users").Where(nil, NewCondition("id", Equals, 7)).SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users` WHERE id = '7'", got)
}

func TestDelete(t *testing.T) {
	got, err := DeleteFrom("users").Where(NewCondition("age", LessThan, 18)).SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users` WHERE age < 18", got)

	got, err = DeleteFrom("sessions").All().SQL(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "sessions"`, got)

	queries, err := DeleteFrom("users").Filter(Cond{"name": "Bob"}).Prepare(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users" WHERE name = $1`, queries[0].SQL)
	assert.Equal(t, []any{"Bob"}, queries[0].Args)

	_, err = DeleteFrom("users").SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))
}
