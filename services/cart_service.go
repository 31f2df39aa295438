package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
	"github.com/Usserslalo/delixmi-backend-sub003/pkg/apperr"
	"github.com/Usserslalo/delixmi-backend-sub003/repository"
)

// Mutation event names reported to the client.
const (
	EventItemAdded      = "item_added"
	EventQuantityUpdate = "quantity_updated"
	EventItemRemoved    = "item_removed"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	Catalog     *repository.CatalogRepository
	Logger      *zap.Logger
	DeliveryFee decimal.Decimal
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, cat *repository.CatalogRepository, logger *zap.Logger, deliveryFee decimal.Decimal) *CartService {
	return &CartService{DB: db, CartRepo: cr, Catalog: cat, Logger: logger, DeliveryFee: deliveryFee}
}

// ----- DTOs from Controller -----

type AddToCartIn struct {
	ProductID  uint          `json:"productId" binding:"required"`
	Quantity   int           `json:"quantity" binding:"min=1"`
	Selections []SelectionIn `json:"selections"`
}

type MutationResult struct {
	Event    string          `json:"event"`
	Item     entity.CartItem `json:"item"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartLine struct {
	ID          uint                       `json:"id"`
	ProductID   uint                       `json:"productId"`
	ProductName string                     `json:"productName"`
	Quantity    int                        `json:"quantity"`
	PriceAtAdd  decimal.Decimal            `json:"priceAtAdd"`
	Subtotal    decimal.Decimal            `json:"subtotal"`
	Selections  []entity.CartItemSelection `json:"selections"`
}

type CartView struct {
	RestaurantID uint            `json:"restaurantId"`
	Items        []CartLine      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type CartSummary struct {
	RestaurantID   uint            `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	ItemCount      int             `json:"itemCount"`
	TotalQuantity  int             `json:"totalQuantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	EstimatedTotal decimal.Decimal `json:"estimatedTotal"`
}

type CheckoutIssue struct {
	Code      string           `json:"code"`
	ItemID    uint             `json:"itemId"`
	ProductID uint             `json:"productId"`
	Blocking  bool             `json:"blocking"`
	Message   string           `json:"message"`
	OldPrice  *decimal.Decimal `json:"oldPrice,omitempty"`
	NewPrice  *decimal.Decimal `json:"newPrice,omitempty"`
}

type CheckoutValidation struct {
	IsValid bool            `json:"isValid"`
	Issues  []CheckoutIssue `json:"issues"`
}

// fail passes typed errors through and converts anything else into an opaque
// internal failure after logging the full context server-side.
func (s *CartService) fail(op string, err error, fields ...zap.Field) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	s.Logger.Error(op, append(fields, zap.Error(err))...)
	return apperr.Internal(err)
}

// Add runs the full mutating pipeline: product + restaurant preconditions,
// selection validation, identity resolution, pricing, then a single write
// transaction. Nothing is written until validation has passed.
func (s *CartService) Add(userID uint, in *AddToCartIn) (*MutationResult, error) {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	p, err := s.Catalog.GetProduct(in.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, apperr.NotFound(apperr.CodeProductNotFound, "product not found")
	}
	if err != nil {
		return nil, s.fail("load product", err, zap.Uint("productId", in.ProductID))
	}
	if !p.IsAvailable {
		return nil, apperr.PreconditionFailed(apperr.CodeProductUnavailable, "product is not available")
	}
	if !p.RestaurantActive {
		return nil, apperr.PreconditionFailed(apperr.CodeRestaurantInactive, "restaurant is not accepting orders")
	}

	groups, err := s.Catalog.GetModifierGroups(in.ProductID)
	if err != nil {
		return nil, s.fail("load modifier groups", err, zap.Uint("productId", in.ProductID))
	}
	resolved, err := ValidateSelections(groups, in.Selections)
	if err != nil {
		return nil, err
	}

	optionIDs := make([]uint, 0, len(resolved))
	deltas := make([]decimal.Decimal, 0, len(resolved))
	for _, r := range resolved {
		optionIDs = append(optionIDs, r.OptionID)
		deltas = append(deltas, r.PriceDelta)
	}

	var out MutationResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetOrCreateCart(tx, userID, p.RestaurantID)
		if err != nil {
			return err
		}

		items, err := s.CartRepo.ItemsForProduct(tx, cart.ID, p.ID)
		if err != nil {
			return err
		}
		if match := ResolveIdentity(items, optionIDs); match != nil {
			return s.mergeInto(tx, match, in.Quantity, &out)
		}

		unit := UnitPrice(p.BasePrice, deltas)
		sels := make([]entity.CartItemSelection, 0, len(resolved))
		for _, r := range resolved {
			sels = append(sels, entity.CartItemSelection{
				ModifierGroupID:  r.GroupID,
				ModifierOptionID: r.OptionID,
				PriceDelta:       r.PriceDelta,
			})
		}
		line := &entity.CartItem{
			ProductID:     p.ID,
			Quantity:      in.Quantity,
			PriceAtAdd:    unit,
			SelectionsKey: SelectionsKey(optionIDs),
			Selections:    sels,
		}
		// the insert runs under a savepoint: on postgres a unique violation
		// aborts the transaction and the merge retry still has to query
		if err := tx.SavePoint("cart_item_insert").Error; err != nil {
			return err
		}
		if err := s.CartRepo.CreateItem(tx, cart.ID, line); err != nil {
			if repository.IsDuplicateItem(err) {
				if rerr := tx.RollbackTo("cart_item_insert").Error; rerr != nil {
					return rerr
				}
				// lost the duplicate-item race; the winner holds the identical
				// configuration, so merge into it
				items, ierr := s.CartRepo.ItemsForProduct(tx, cart.ID, p.ID)
				if ierr != nil {
					return ierr
				}
				match := ResolveIdentity(items, optionIDs)
				if match == nil {
					return apperr.Conflict(apperr.CodeCartConflict, "cart changed concurrently, retry the request")
				}
				return s.mergeInto(tx, match, in.Quantity, &out)
			}
			return err
		}
		out = MutationResult{Event: EventItemAdded, Item: *line, Subtotal: LineSubtotal(unit, in.Quantity)}
		return nil
	})
	if err != nil {
		return nil, s.fail("add to cart", err, zap.Uint("userId", userID), zap.Uint("productId", in.ProductID))
	}
	return &out, nil
}

func (s *CartService) mergeInto(tx *gorm.DB, match *entity.CartItem, qty int, out *MutationResult) error {
	if err := s.CartRepo.IncrementQty(tx, match.ID, qty); err != nil {
		return err
	}
	match.Quantity += qty
	*out = MutationResult{
		Event:    EventQuantityUpdate,
		Item:     *match,
		Subtotal: LineSubtotal(match.PriceAtAdd, match.Quantity),
	}
	return nil
}

// UpdateQty sets the line quantity; zero removes the line. Stored selections
// are never re-validated against the current catalog — only product
// availability is re-checked.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) (*MutationResult, error) {
	it, err := s.CartRepo.GetItemForUser(userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(apperr.CodeCartItemNotFound, "cart item not found")
	}
	if err != nil {
		return nil, s.fail("load cart item", err, zap.Uint("itemId", itemID))
	}

	if qty == 0 {
		if err := s.removeLine(it); err != nil {
			return nil, err
		}
		return &MutationResult{Event: EventItemRemoved, Item: *it, Subtotal: decimal.Zero}, nil
	}

	p, err := s.Catalog.GetProduct(it.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, apperr.PreconditionFailed(apperr.CodeProductUnavailable, "product no longer exists")
	}
	if err != nil {
		return nil, s.fail("load product", err, zap.Uint("productId", it.ProductID))
	}
	if !p.IsAvailable {
		return nil, apperr.PreconditionFailed(apperr.CodeProductUnavailable, "product is not available")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, it.ID, qty)
	})
	if err != nil {
		return nil, s.fail("update quantity", err, zap.Uint("itemId", itemID))
	}
	it.Quantity = qty
	return &MutationResult{
		Event:    EventQuantityUpdate,
		Item:     *it,
		Subtotal: LineSubtotal(it.PriceAtAdd, qty),
	}, nil
}

// Remove hard-deletes the line after the ownership check.
func (s *CartService) Remove(userID, itemID uint) error {
	it, err := s.CartRepo.GetItemForUser(userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(apperr.CodeCartItemNotFound, "cart item not found")
	}
	if err != nil {
		return s.fail("load cart item", err, zap.Uint("itemId", itemID))
	}
	return s.removeLine(it)
}

func (s *CartService) removeLine(it *entity.CartItem) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.DeleteItem(tx, it.ID); err != nil {
			return err
		}
		return s.CartRepo.DeleteCartIfEmpty(tx, it.CartID)
	})
	if err != nil {
		return s.fail("remove cart item", err, zap.Uint("itemId", it.ID))
	}
	return nil
}

// Clear deletes the user's cart for the given restaurant, or all carts when
// restaurantID is nil.
func (s *CartService) Clear(userID uint, restaurantID *uint) (int64, error) {
	var removed int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.CartRepo.DeleteCarts(tx, userID, restaurantID)
		removed = n
		return err
	})
	if err != nil {
		return 0, s.fail("clear carts", err, zap.Uint("userId", userID))
	}
	if removed == 0 {
		return 0, apperr.NotFound(apperr.CodeNoCartsFound, "no carts to clear")
	}
	return removed, nil
}

// Get returns the cart view for one restaurant; an empty view when the user
// has no cart there, so the frontend can always render.
func (s *CartService) Get(userID, restaurantID uint) (*CartView, error) {
	c, err := s.CartRepo.GetCart(userID, restaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CartView{RestaurantID: restaurantID, Items: []CartLine{}, Subtotal: decimal.Zero}, nil
	}
	if err != nil {
		return nil, s.fail("load cart", err, zap.Uint("userId", userID))
	}
	return s.viewOf(c), nil
}

func (s *CartService) viewOf(c *entity.Cart) *CartView {
	view := &CartView{RestaurantID: c.RestaurantID, Items: make([]CartLine, 0, len(c.Items))}
	lines := make([]decimal.Decimal, 0, len(c.Items))
	for _, it := range c.Items {
		sub := LineSubtotal(it.PriceAtAdd, it.Quantity)
		lines = append(lines, sub)
		view.Items = append(view.Items, CartLine{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			PriceAtAdd:  it.PriceAtAdd,
			Subtotal:    sub,
			Selections:  it.Selections,
		})
	}
	view.Subtotal = CartSubtotal(lines)
	return view
}

// Summarize aggregates every cart of the user whose restaurant is currently
// active. The flat delivery fee applies only to non-empty carts.
func (s *CartService) Summarize(userID uint) ([]CartSummary, error) {
	carts, err := s.CartRepo.ListCarts(userID, nil)
	if err != nil {
		return nil, s.fail("list carts", err, zap.Uint("userId", userID))
	}

	out := make([]CartSummary, 0, len(carts))
	for _, c := range carts {
		if c.Restaurant.RestaurantStatus.StatusName != "Open" {
			continue
		}
		var totalQty int
		lines := make([]decimal.Decimal, 0, len(c.Items))
		for _, it := range c.Items {
			totalQty += it.Quantity
			lines = append(lines, LineSubtotal(it.PriceAtAdd, it.Quantity))
		}
		subtotal := CartSubtotal(lines)
		fee := decimal.Zero
		if len(c.Items) > 0 {
			fee = s.DeliveryFee
		}
		out = append(out, CartSummary{
			RestaurantID:   c.RestaurantID,
			RestaurantName: c.Restaurant.Name,
			ItemCount:      len(c.Items),
			TotalQuantity:  totalQty,
			Subtotal:       subtotal,
			DeliveryFee:    fee,
			EstimatedTotal: GrandTotal(subtotal, fee),
		})
	}
	return out, nil
}

// ValidateForCheckout re-checks every item in scope against the current
// catalog. Unavailable products and inactive restaurants block checkout;
// price drift is surfaced but does not.
func (s *CartService) ValidateForCheckout(userID uint, restaurantID *uint) (*CheckoutValidation, error) {
	carts, err := s.CartRepo.ListCarts(userID, restaurantID)
	if err != nil {
		return nil, s.fail("list carts", err, zap.Uint("userId", userID))
	}
	if len(carts) == 0 {
		return nil, apperr.NotFound(apperr.CodeNoCartsFound, "no carts to validate")
	}

	result := &CheckoutValidation{IsValid: true, Issues: []CheckoutIssue{}}
	for _, c := range carts {
		restaurantActive := c.Restaurant.RestaurantStatus.StatusName == "Open"
		for _, it := range c.Items {
			if !restaurantActive {
				result.IsValid = false
				result.Issues = append(result.Issues, CheckoutIssue{
					Code: apperr.CodeRestaurantInactive, ItemID: it.ID, ProductID: it.ProductID,
					Blocking: true, Message: "restaurant is not accepting orders",
				})
			}
			if !it.Product.IsAvailable {
				result.IsValid = false
				result.Issues = append(result.Issues, CheckoutIssue{
					Code: apperr.CodeProductUnavailable, ItemID: it.ID, ProductID: it.ProductID,
					Blocking: true, Message: "product is no longer available",
				})
			}

			current, err := s.currentUnitPrice(&it)
			if err != nil {
				return nil, s.fail("recompute price", err, zap.Uint("itemId", it.ID))
			}
			if !current.Equal(it.PriceAtAdd) {
				old := it.PriceAtAdd
				result.Issues = append(result.Issues, CheckoutIssue{
					Code: apperr.CodePriceChanged, ItemID: it.ID, ProductID: it.ProductID,
					Blocking: false, Message: "price changed since the item was added",
					OldPrice: &old, NewPrice: &current,
				})
			}
		}
	}
	return result, nil
}

// currentUnitPrice recomputes what the line would cost if added now. Options
// deleted from the catalog since the add contribute nothing.
func (s *CartService) currentUnitPrice(it *entity.CartItem) (decimal.Decimal, error) {
	ids := make([]uint, 0, len(it.Selections))
	for _, sel := range it.Selections {
		ids = append(ids, sel.ModifierOptionID)
	}
	opts, err := s.Catalog.GetOptionsByIDs(ids)
	if err != nil {
		return decimal.Zero, err
	}
	deltas := make([]decimal.Decimal, 0, len(opts))
	for _, o := range opts {
		deltas = append(deltas, o.PriceDelta)
	}
	return UnitPrice(it.Product.BasePrice, deltas), nil
}
