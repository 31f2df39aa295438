package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
	"github.com/Usserslalo/delixmi-backend-sub003/repository"
)

// newTestDB opens a per-test in-memory database through the real GORM stack.
// The shared-cache named DSN keeps every pool connection on the same memory db.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.SetupJoinTable(&entity.Product{}, "ModifierGroups", &entity.ProductModifierGroup{}))
	// join model first, ahead of the many2many pass on Product; see
	// configs.SetupDatabase
	require.NoError(t, db.AutoMigrate(&entity.ProductModifierGroup{}))
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.RestaurantStatus{}, &entity.Restaurant{},
		&entity.Product{}, &entity.ModifierGroup{}, &entity.ModifierOption{},
		&entity.Cart{}, &entity.CartItem{}, &entity.CartItemSelection{},
	))
	require.True(t, db.Migrator().HasColumn(&entity.ProductModifierGroup{}, "sort_order"))
	return db
}

type fixture struct {
	t      *testing.T
	db     *gorm.DB
	svc    *CartService
	open   entity.RestaurantStatus
	closed entity.RestaurantStatus
	rest   entity.Restaurant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{t: t, db: db}

	f.open = entity.RestaurantStatus{StatusName: "Open"}
	require.NoError(t, db.Create(&f.open).Error)
	f.closed = entity.RestaurantStatus{StatusName: "Closed"}
	require.NoError(t, db.Create(&f.closed).Error)

	f.rest = f.restaurant("Testaurant", f.open.ID)

	f.svc = NewCartService(
		db,
		repository.NewCartRepository(db),
		repository.NewCatalogRepository(db),
		zap.NewNop(),
		d("20.00"),
	)
	return f
}

func (f *fixture) restaurant(name string, statusID uint) entity.Restaurant {
	f.t.Helper()
	r := entity.Restaurant{Name: name, RestaurantStatusID: statusID}
	require.NoError(f.t, f.db.Create(&r).Error)
	return r
}

func (f *fixture) product(rest entity.Restaurant, name, price string) entity.Product {
	f.t.Helper()
	p := entity.Product{Name: name, BasePrice: d(price), IsAvailable: true, RestaurantID: rest.ID}
	require.NoError(f.t, f.db.Create(&p).Error)
	return p
}

// group attaches a modifier group to the product and returns its options in
// delta order.
func (f *fixture) group(p entity.Product, name string, min, max int, deltas ...string) []entity.ModifierOption {
	f.t.Helper()
	g := entity.ModifierGroup{Name: name, MinSelect: min, MaxSelect: max}
	require.NoError(f.t, f.db.Create(&g).Error)
	require.NoError(f.t, f.db.Create(&entity.ProductModifierGroup{ProductID: p.ID, ModifierGroupID: g.ID}).Error)

	opts := make([]entity.ModifierOption, 0, len(deltas))
	for i, delta := range deltas {
		o := entity.ModifierOption{
			ModifierGroupID: g.ID,
			Name:            fmt.Sprintf("%s %d", name, i+1),
			PriceDelta:      d(delta),
			IsAvailable:     true,
			SortOrder:       i,
		}
		require.NoError(f.t, f.db.Create(&o).Error)
		opts = append(opts, o)
	}
	return opts
}

func (f *fixture) countItems() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&entity.CartItem{}).Count(&n).Error)
	return n
}

func (f *fixture) countCarts() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&entity.Cart{}).Count(&n).Error)
	return n
}
