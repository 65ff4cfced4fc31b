// Package router assembles the Gin engine: middleware, handlers and routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"cashflow/internal/config"
	"cashflow/internal/handlers"
	"cashflow/internal/middleware"
	"cashflow/internal/services"
	"cashflow/internal/validator"

	_ "cashflow/internal/docs" // Import swagger docs
)

// New wires services and handlers on db and returns the routed engine.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	validator.Register()

	// Initialize services
	userService := services.NewUserService(db)
	entryService := services.NewEntryService(db)
	filterService := services.NewFilterStateService(db)
	autocompleteService := services.NewAutocompleteService(db)
	registry := services.NewReferenceRegistry(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	entryHandler := handlers.NewEntryHandler(entryService, filterService)
	referenceHandler := handlers.NewReferenceHandler(registry)
	autocompleteHandler := handlers.NewAutocompleteHandler(autocompleteService)

	router := gin.New()
	router.Use(requestid.New())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	if len(cfg.CORSAllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
		}))
	}

	if cfg.EnablePprof {
		pprof.Register(router)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Selection widgets answer anonymous callers with an empty list
	optional := router.Group("/")
	optional.Use(middleware.OptionalAuthMiddleware())
	optional.GET("/category-autocomplete/", autocompleteHandler.Categories)
	optional.GET("/subcategory-autocomplete/", autocompleteHandler.Subcategories)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	// Entry routes
	protected.GET("/", entryHandler.ListEntries)
	protected.GET("/reset-filters/", entryHandler.ResetFilters)
	protected.GET("/create-dds/", entryHandler.CreateForm)
	protected.POST("/create-dds/", entryHandler.CreateEntry)
	protected.GET("/update-dds/:id/", entryHandler.UpdateForm)
	protected.POST("/update-dds/:id/", entryHandler.UpdateEntry)
	protected.GET("/delete-dds/:id/", entryHandler.DeleteConfirm)
	protected.POST("/delete-dds/:id/", entryHandler.DeleteEntry)

	// Reference routes
	protected.GET("/references/", referenceHandler.Navigation)
	references := protected.Group("/reference/:kind")
	references.GET("", referenceHandler.List)
	references.GET("/create", referenceHandler.CreateForm)
	references.POST("/create", referenceHandler.Create)
	references.GET("/:id/update", referenceHandler.UpdateForm)
	references.POST("/:id/update", referenceHandler.Update)
	references.GET("/:id/delete", referenceHandler.DeleteConfirm)
	references.POST("/:id/delete", referenceHandler.Delete)

	return router
}
