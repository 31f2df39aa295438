package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
)

// CartRepository is the persistence port for carts. Cart rows are always
// hard-deleted: soft-deleted leftovers would collide with the identity and
// owner unique indexes on re-add.
type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetOrCreateCart upserts the cart for (user, restaurant) in one statement.
// The unique index decides the winner of two concurrent first adds; there is
// no read-branch-write window.
func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, userID, restaurantID uint) (*entity.Cart, error) {
	c := entity.Cart{UserID: userID, RestaurantID: restaurantID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "restaurant_id"}},
		DoNothing: true,
	}).Create(&c).Error; err != nil {
		return nil, err
	}
	if c.ID != 0 {
		return &c, nil
	}
	var existing entity.Cart
	if err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *CartRepository) GetCart(userID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Selections").
		Preload("Items.Product").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCarts returns every cart of the user with items, selections, products
// and the restaurant status preloaded, for summaries and checkout validation.
func (r *CartRepository) ListCarts(userID uint, restaurantID *uint) ([]entity.Cart, error) {
	q := r.DB.Where("user_id = ?", userID)
	if restaurantID != nil {
		q = q.Where("restaurant_id = ?", *restaurantID)
	}
	var carts []entity.Cart
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Selections").
		Preload("Items.Product").
		Preload("Restaurant.RestaurantStatus").
		Order("id").
		Find(&carts).Error
	return carts, err
}

// ItemsForProduct loads the existing lines for one product in the cart,
// selections included, for identity resolution.
func (r *CartRepository) ItemsForProduct(tx *gorm.DB, cartID, productID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Preload("Selections").
		Find(&items).Error
	return items, err
}

// CreateItem inserts the line plus its selections in one create. A concurrent
// identical add loses on the (cart_id, product_id, selections_key) index and
// surfaces gorm.ErrDuplicatedKey for the caller to retry as a merge.
func (r *CartRepository) CreateItem(tx *gorm.DB, cartID uint, item *entity.CartItem) error {
	item.CartID = cartID
	return tx.Create(item).Error
}

func (r *CartRepository) IncrementQty(tx *gorm.DB, itemID uint, by int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", by)).Error
}

// GetItemForUser verifies ownership by joining through the cart.
func (r *CartRepository) GetItemForUser(userID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.DB.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		Preload("Selections").
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) UpdateQty(tx *gorm.DB, itemID uint, qty int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).
		Update("quantity", qty).Error
}

func (r *CartRepository) DeleteItem(tx *gorm.DB, itemID uint) error {
	if err := tx.Exec(`DELETE FROM cart_item_selections WHERE cart_item_id = ?`, itemID).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.CartItem{}, itemID).Error
}

// DeleteCartIfEmpty reaps the cart once its last item is gone so no zero-item
// cart lingers.
func (r *CartRepository) DeleteCartIfEmpty(tx *gorm.DB, cartID uint) error {
	return tx.Exec(`
		DELETE FROM carts
		 WHERE id = ?
		   AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = carts.id)
	`, cartID).Error
}

// DeleteCarts clears the user's cart for one restaurant, or all of them.
// Children are deleted explicitly; FK cascade enforcement is driver-dependent.
func (r *CartRepository) DeleteCarts(tx *gorm.DB, userID uint, restaurantID *uint) (int64, error) {
	q := tx.Model(&entity.Cart{}).Where("user_id = ?", userID)
	if restaurantID != nil {
		q = q.Where("restaurant_id = ?", *restaurantID)
	}
	var cartIDs []uint
	if err := q.Pluck("id", &cartIDs).Error; err != nil {
		return 0, err
	}
	if len(cartIDs) == 0 {
		return 0, nil
	}

	if err := tx.Exec(`
		DELETE FROM cart_item_selections
		 WHERE cart_item_id IN (SELECT id FROM cart_items WHERE cart_id IN ?)
	`, cartIDs).Error; err != nil {
		return 0, err
	}
	if err := tx.Exec(`DELETE FROM cart_items WHERE cart_id IN ?`, cartIDs).Error; err != nil {
		return 0, err
	}
	res := tx.Unscoped().Where("id IN ?", cartIDs).Delete(&entity.Cart{})
	return res.RowsAffected, res.Error
}

// IsDuplicateItem reports whether err is the losing side of the duplicate-item
// race described on CreateItem.
func IsDuplicateItem(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
