package router

import (
	"smartler/internal/audit"
	"smartler/internal/auth"
	"smartler/internal/catalog"
	"smartler/internal/importer"
	"smartler/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *auth.Handler
	Catalog *catalog.Handler
	Import  *importer.Handler
	Audit   *audit.Handler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/properties", h.Catalog.ListProperties)
		protected.POST("/properties", h.Catalog.CreateProperty)

		protected.GET("/restaurants", h.Catalog.ListRestaurants)
		protected.POST("/restaurants", h.Catalog.CreateRestaurant)
		protected.DELETE("/restaurants/:id",
			middleware.RequireRole(auth.RoleAdmin), h.Catalog.DeleteRestaurant)

		protected.GET("/restaurants/:id/categories", h.Catalog.ListCategories)
		protected.POST("/restaurants/:id/categories", h.Catalog.CreateCategory)
		protected.PUT("/categories/:categoryID", h.Catalog.UpdateCategory)
		protected.DELETE("/categories/:categoryID",
			middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Catalog.DeleteCategory)

		protected.GET("/categories/:categoryID/subcategories", h.Catalog.ListSubcategories)
		protected.POST("/categories/:categoryID/subcategories", h.Catalog.CreateSubcategory)
		protected.DELETE("/subcategories/:subcategoryID",
			middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Catalog.DeleteSubcategory)

		protected.GET("/categories/:categoryID/items", h.Catalog.ListMenuItems)
		protected.POST("/categories/:categoryID/items", h.Catalog.CreateMenuItem)
		protected.GET("/items/:itemID", h.Catalog.GetMenuItem)
		protected.PUT("/items/:itemID", h.Catalog.UpdateMenuItem)
		protected.DELETE("/items/:itemID",
			middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Catalog.DeleteMenuItem)
		protected.POST("/items/:itemID/image", h.Catalog.UploadItemImage)

		protected.GET("/restaurants/:id/modifier-groups", h.Catalog.ListModifierGroups)
		protected.POST("/restaurants/:id/modifier-groups", h.Catalog.CreateModifierGroup)
		protected.GET("/modifier-groups/:groupID/items", h.Catalog.ListModifierItems)
		protected.DELETE("/modifier-groups/:groupID",
			middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Catalog.DeleteModifierGroup)

		// Import endpoints: ADMIN or MANAGER
		importRoutes := protected.Group("/")
		importRoutes.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager))
		{
			importRoutes.POST("/restaurants/:id/menu/import", h.Import.ImportMenu)
			importRoutes.POST("/menu/import", h.Import.ImportSystemMenu)
		}

		protected.GET("/audit",
			middleware.RequireRole(auth.RoleAdmin), h.Audit.Recent)
	}

	return r
}
