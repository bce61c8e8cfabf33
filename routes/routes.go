package routes

import (
	"time"

	"bookrental/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and the global
// middleware. The form/display client is a browser app served from another
// origin, so the router answers CORS preflights.
func RegisterRoutes(r *gin.Engine, rentals *handlers.RentalHandler, catalog *handlers.CatalogHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRentalRoutes(r, rentals)
	RegisterCatalogRoutes(r, catalog)
}
