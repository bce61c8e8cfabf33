package routes

import (
	"bookrental/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the read-only book catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.CatalogHandler) {
	books := r.Group("/api/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
	}
}
