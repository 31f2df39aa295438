package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
)

// CatalogRepository is the read-only view of the catalog the cart engine
// consumes. Every call hits the database: price and availability freshness
// matter more than latency here, so nothing is cached.
type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

// ProductInfo is the slice of product state a mutating cart call needs.
type ProductInfo struct {
	ID               uint
	BasePrice        decimal.Decimal
	IsAvailable      bool
	RestaurantID     uint
	RestaurantActive bool
}

type CatalogOption struct {
	OptionID   uint            `json:"optionId"`
	GroupID    uint            `json:"groupId"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

type CatalogGroup struct {
	GroupID   uint            `json:"groupId"`
	Name      string          `json:"name"`
	MinSelect int             `json:"minSelect"`
	MaxSelect int             `json:"maxSelect"`
	Options   []CatalogOption `json:"options"`
}

// ErrProductNotFound lets callers distinguish a missing product from a
// persistence failure without string matching.
var ErrProductNotFound = errors.New("product not found")

func (r *CatalogRepository) GetProduct(productID uint) (*ProductInfo, error) {
	var row struct {
		ID           uint
		BasePrice    decimal.Decimal
		IsAvailable  bool
		RestaurantID uint
		StatusName   string
	}
	err := r.DB.Table("products AS p").
		Select("p.id, p.base_price, p.is_available, p.restaurant_id, s.status_name").
		Joins("JOIN restaurants r ON r.id = p.restaurant_id").
		Joins("JOIN restaurant_statuses s ON s.id = r.restaurant_status_id").
		Where("p.id = ? AND p.deleted_at IS NULL", productID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ProductInfo{
		ID:               row.ID,
		BasePrice:        row.BasePrice,
		IsAvailable:      row.IsAvailable,
		RestaurantID:     row.RestaurantID,
		RestaurantActive: row.StatusName == "Open",
	}, nil
}

// GetOptionsByIDs loads current option rows for the given ids. Options deleted
// since an item was added simply come back missing.
func (r *CatalogRepository) GetOptionsByIDs(ids []uint) ([]entity.ModifierOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var opts []entity.ModifierOption
	err := r.DB.Where("id IN ?", ids).Find(&opts).Error
	return opts, err
}

// GetModifierGroups returns the product's groups in menu order, options
// included.
func (r *CatalogRepository) GetModifierGroups(productID uint) ([]CatalogGroup, error) {
	var groups []entity.ModifierGroup
	err := r.DB.
		Joins("JOIN product_modifier_groups pmg ON pmg.modifier_group_id = modifier_groups.id").
		Where("pmg.product_id = ?", productID).
		Order("pmg.sort_order, modifier_groups.id").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	out := make([]CatalogGroup, 0, len(groups))
	for _, g := range groups {
		cg := CatalogGroup{
			GroupID:   g.ID,
			Name:      g.Name,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
			Options:   make([]CatalogOption, 0, len(g.Options)),
		}
		for _, o := range g.Options {
			cg.Options = append(cg.Options, CatalogOption{
				OptionID:   o.ID,
				GroupID:    o.ModifierGroupID,
				Name:       o.Name,
				PriceDelta: o.PriceDelta,
			})
		}
		out = append(out, cg)
	}
	return out, nil
}
