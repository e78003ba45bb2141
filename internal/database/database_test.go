package database

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectTest_IsolatedDatabases(t *testing.T) {
	t.Parallel()

	db1, err := ConnectTest()
	require.NoError(t, err)
	db2, err := ConnectTest()
	require.NoError(t, err)

	require.NoError(t, db1.Create(&models.Post{Title: "t", Content: "c", AuthorID: "a"}).Error)

	var count int64
	require.NoError(t, db2.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count, "each ConnectTest call must return its own database")
}

func TestMigrate_RegisteredModels(t *testing.T) {
	t.Parallel()

	db, err := ConnectTest()
	require.NoError(t, err)

	for _, table := range []string{"posts", "contacts", "support_messages"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s missing", table)
	}
}
