package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
	"github.com/Usserslalo/delixmi-backend-sub003/pkg/apperr"
	"github.com/Usserslalo/delixmi-backend-sub003/pkg/resp"
	"github.com/Usserslalo/delixmi-backend-sub003/repository"
)

// CatalogController serves the public read side of the catalog: restaurants,
// their products and the modifier groups a cart add will be validated against.
type CatalogController struct {
	DB      *gorm.DB
	Catalog *repository.CatalogRepository
}

func NewCatalogController(db *gorm.DB, cat *repository.CatalogRepository) *CatalogController {
	return &CatalogController{DB: db, Catalog: cat}
}

// GET /restaurants
func (h *CatalogController) ListRestaurants(c *gin.Context) {
	var rows []struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		Address    string `json:"address"`
		StatusName string `json:"status"`
	}
	err := h.DB.Table("restaurants AS r").
		Select("r.id, r.name, r.address, s.status_name").
		Joins("JOIN restaurant_statuses s ON s.id = r.restaurant_status_id").
		Where("r.deleted_at IS NULL").
		Order("r.id").
		Scan(&rows).Error
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /restaurants/:id/products
func (h *CatalogController) ListProducts(c *gin.Context) {
	restID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	var products []entity.Product
	if err := h.DB.Where("restaurant_id = ?", uint(restID)).Order("id").Find(&products).Error; err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, products)
}

// GET /products/:id — product plus the modifier groups a configured add must
// satisfy.
func (h *CatalogController) ProductDetail(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}

	var product entity.Product
	if err := h.DB.First(&product, uint(productID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Err(c, apperr.NotFound(apperr.CodeProductNotFound, "product not found"))
			return
		}
		resp.Err(c, err)
		return
	}
	groups, err := h.Catalog.GetModifierGroups(product.ID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, gin.H{"product": product, "modifierGroups": groups})
}
