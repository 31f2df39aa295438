package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/configs"
	"github.com/Usserslalo/delixmi-backend-sub003/controllers"
	"github.com/Usserslalo/delixmi-backend-sub003/middlewares"
	"github.com/Usserslalo/delixmi-backend-sub003/repository"
	"github.com/Usserslalo/delixmi-backend-sub003/services"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, logger *zap.Logger) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, catalogRepo, logger, cfg.DeliveryFee)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	catalogCtrl := controllers.NewCatalogController(db, catalogRepo)
	cartCtrl := controllers.NewCartController(cartSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public catalog
	r.GET("/restaurants", catalogCtrl.ListRestaurants)
	r.GET("/restaurants/:id/products", catalogCtrl.ListProducts)
	r.GET("/products/:id", catalogCtrl.ProductDetail)

	// Cart (customer)
	cart := r.Group("/cart", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		cart.GET("", cartCtrl.Get)
		cart.GET("/summary", cartCtrl.Summary)
		cart.GET("/validate", cartCtrl.Validate)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id/quantity", cartCtrl.UpdateQty)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
	}
}
