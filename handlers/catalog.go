package handlers

import (
	"errors"
	"net/http"

	catalogRepo "bookrental/database/repository/catalog"
	"bookrental/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the read-only book catalog.
type CatalogHandler struct {
	Repo   catalogRepo.BookRepository
	Logger *zap.Logger
}

func NewCatalogHandler(repo catalogRepo.BookRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Repo: repo, Logger: logger}
}

// ListBooks handles GET /api/books.
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	books, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListBooks: failed to fetch catalog", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch books", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// GetBook handles GET /api/books/:id.
func (h *CatalogHandler) GetBook(c *gin.Context) {
	book, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBookNotFound) {
			utils.JSONError(c, http.StatusNotFound, "book not found", "")
			return
		}
		h.Logger.Error("GetBook: failed to fetch book", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch book", "")
		return
	}
	c.JSON(http.StatusOK, book)
}
