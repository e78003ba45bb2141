package seed

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	t.Parallel()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	s := NewSeeder(db)
	require.NoError(t, s.Run(Options{
		NumAuthors:  2,
		NumPosts:    10,
		NumContacts: 4,
		ShouldClean: true,
	}))

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.EqualValues(t, 10, postCount)

	// Posts are spread across the synthetic authors.
	var authors []string
	require.NoError(t, db.Model(&models.Post{}).Distinct("author_id").Pluck("author_id", &authors).Error)
	assert.ElementsMatch(t, []string{"author-1", "author-2"}, authors)

	var contactCount int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&contactCount).Error)
	assert.EqualValues(t, 4, contactCount)

	// At least one contact is seeded inactive so the admin/public split shows.
	var inactive int64
	require.NoError(t, db.Model(&models.Contact{}).Where("is_active = ?", false).Count(&inactive).Error)
	assert.Positive(t, inactive)

	var msgCount int64
	require.NoError(t, db.Model(&models.SupportMessage{}).Count(&msgCount).Error)
	assert.EqualValues(t, 6, msgCount)
}

func TestSeeder_ClearAll(t *testing.T) {
	t.Parallel()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	f := NewFactory(db)
	require.NoError(t, f.CreatePostsBatch([]*models.Post{f.BuildPost("author-1")}))
	_, err = f.CreateContact(0)
	require.NoError(t, err)

	s := NewSeeder(db)
	require.NoError(t, s.ClearAll())

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Contact{}).Count(&count).Error)
	assert.Zero(t, count)
}
