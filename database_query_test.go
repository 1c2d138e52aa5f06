package sqlkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDatabase(t *testing.T) {
	got, err := CreateDatabase("shop").IfNotExists().CharacterSet(UTF8MB4).SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS `shop` CHARACTER SET utf8mb4", got)

	got, err = CreateDatabase("shop").SQL(MariaDB)
	require.NoError(t, err)
	assert.Equal(t, "CREATE DATABASE `shop`", got)

	got, err = CreateDatabase("shop").CharacterSet(UTF8MB4).SQL(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `CREATE DATABASE "shop" ENCODING 'UTF8'`, got)

	_, err = CreateDatabase("shop").IfNotExists().SQL(PostgreSQL)
	assert.True(t, IsFeatureNotSupported(err))

	_, err = CreateDatabase("shop").CharacterSet(UTF16).SQL(PostgreSQL)
	assert.True(t, IsFeatureNotSupported(err))

	_, err = CreateDatabase("shop").SQL(SQLite)
	assert.True(t, IsFeatureNotSupported(err))

	_, err = CreateDatabase("").SQL(MySQL)
	assert.True(t, IsMissingRequiredField(err))
}

func TestDropDatabase(t *testing.T) {
	got, err := DropDatabase("shop").IfExists().SQL(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "DROP DATABASE IF EXISTS `shop`", got)

	got, err = DropDatabase("shop").SQL(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, `DROP DATABASE "shop"`, got)

	_, err = DropDatabase("shop").SQL(SQLite)
	assert.True(t, IsFeatureNotSupported(err))
}
