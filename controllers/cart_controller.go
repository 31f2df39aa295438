package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Usserslalo/delixmi-backend-sub003/pkg/resp"
	"github.com/Usserslalo/delixmi-backend-sub003/services"
	"github.com/Usserslalo/delixmi-backend-sub003/utils"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

func currentUser(c *gin.Context) (uint, bool) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return 0, false
	}
	return uid, true
}

// restaurantIDQuery parses the optional ?restaurantId= filter.
func restaurantIDQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("restaurantId")
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		resp.BadRequest(c, "invalid restaurantId")
		return nil, false
	}
	id := uint(n)
	return &id, true
}

// GET /cart?restaurantId=
func (h *CartController) Get(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	restID, ok := restaurantIDQuery(c)
	if !ok {
		return
	}
	if restID == nil {
		resp.BadRequest(c, "restaurantId is required")
		return
	}

	view, err := h.Svc.Get(uid, *restID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := h.Svc.Add(uid, &req)
	if err != nil {
		resp.Err(c, err)
		return
	}
	if result.Event == services.EventItemAdded {
		resp.Created(c, result)
		return
	}
	resp.OK(c, result)
}

// PATCH /cart/items/:id/quantity
func (h *CartController) UpdateQty(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}

	var body struct {
		Quantity *int `json:"quantity" binding:"required,min=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := h.Svc.UpdateQty(uid, uint(itemID), *body.Quantity)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, result)
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}

	if err := h.Svc.Remove(uid, uint(itemID)); err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, gin.H{"event": services.EventItemRemoved})
}

// DELETE /cart?restaurantId=
func (h *CartController) Clear(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	restID, ok := restaurantIDQuery(c)
	if !ok {
		return
	}

	removed, err := h.Svc.Clear(uid, restID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, gin.H{"cartsRemoved": removed})
}

// GET /cart/summary
func (h *CartController) Summary(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	summaries, err := h.Svc.Summarize(uid)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, summaries)
}

// GET /cart/validate?restaurantId=
func (h *CartController) Validate(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	restID, ok := restaurantIDQuery(c)
	if !ok {
		return
	}

	result, err := h.Svc.ValidateForCheckout(uid, restID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, result)
}
