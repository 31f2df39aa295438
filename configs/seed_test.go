package configs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
)

// openSeedDB points the package connection at a fresh in-memory database,
// mirroring the startup sequence in main.
func openSeedDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.SetupJoinTable(&entity.Product{}, "ModifierGroups", &entity.ProductModifierGroup{}))
	db = conn
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	openSeedDB(t)
	SetupDatabase()

	require.NoError(t, SeedLookups())
	require.NoError(t, SeedDemo())
	require.NoError(t, SeedDemo())

	var rests, opts int64
	require.NoError(t, db.Model(&entity.Restaurant{}).Count(&rests).Error)
	require.NoError(t, db.Model(&entity.ModifierOption{}).Count(&opts).Error)
	assert.EqualValues(t, 1, rests)
	assert.EqualValues(t, 4, opts)

	// the group attachments keep their menu position
	var joins []entity.ProductModifierGroup
	require.NoError(t, db.Order("sort_order").Find(&joins).Error)
	require.Len(t, joins, 2)
	assert.Equal(t, 0, joins[0].SortOrder)
	assert.Equal(t, 1, joins[1].SortOrder)
}

// A write that fails mid-seed must surface, not vanish.
func TestSeedDemoSurfacesWriteErrors(t *testing.T) {
	openSeedDB(t)
	// the join model is left out, so the many2many pass creates its table
	// without sort_order and the join-row writes cannot succeed
	require.NoError(t, db.AutoMigrate(
		&entity.RestaurantStatus{}, &entity.Restaurant{},
		&entity.Product{}, &entity.ModifierGroup{}, &entity.ModifierOption{},
	))

	require.NoError(t, SeedLookups())
	assert.Error(t, SeedDemo())
}
