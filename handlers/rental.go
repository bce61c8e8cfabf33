package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookrental/config"
	catalogRepo "bookrental/database/repository/catalog"
	"bookrental/models"
	"bookrental/services/rental"
	"bookrental/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RentalHandler exposes the booking session and rental history over HTTP.
// It is the boundary the form/display collaborator talks to.
type RentalHandler struct {
	Svc    rental.BookingSessionService
	Books  catalogRepo.BookRepository
	Logger *zap.Logger
}

// NewRentalHandler returns a handler wired to the session service and catalog.
func NewRentalHandler(svc rental.BookingSessionService, books catalogRepo.BookRepository, logger *zap.Logger) *RentalHandler {
	return &RentalHandler{Svc: svc, Books: books, Logger: logger}
}

// BeginSession handles POST /api/rental/session: open a draft for a book.
func (h *RentalHandler) BeginSession(c *gin.Context) {
	var body struct {
		BookID string `json:"bookId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	book, err := h.Books.GetByID(c.Request.Context(), body.BookID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBookNotFound) {
			utils.JSONError(c, http.StatusNotFound, "book not found", "")
			return
		}
		h.Logger.Error("BeginSession: catalog lookup failed", zap.String("bookId", body.BookID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch book", "")
		return
	}

	draft := h.Svc.Begin(*book)
	c.JSON(http.StatusOK, gin.H{"sessionId": draft.SessionID, "draft": draft})
}

// UpdateSession handles PATCH /api/rental/session: merge partial form fields.
func (h *RentalHandler) UpdateSession(c *gin.Context) {
	if h.Svc.Peek() == nil {
		utils.JSONError(c, http.StatusConflict, "no booking in progress", "")
		return
	}

	var fields rental.DraftUpdate
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft := h.Svc.Update(fields)
	resp := gin.H{"draft": draft}
	if suggested, ok := suggestedReturnDate(draft); ok {
		resp["suggestedReturnDate"] = suggested
	}
	c.JSON(http.StatusOK, resp)
}

// suggestedReturnDate offers a default return date once a collection date is
// chosen but no return date has been entered yet.
func suggestedReturnDate(draft *models.BookingDraft) (models.Date, bool) {
	if draft == nil || draft.Period.CollectionDate.IsZero() || !draft.Period.ReturnDate.IsZero() {
		return models.Date{}, false
	}
	return rental.DefaultReturnDate(draft.Period.CollectionDate, config.AppConfig.RentalPeriodDays), true
}

// PeekSession handles GET /api/rental/session: the recovery reader's view.
func (h *RentalHandler) PeekSession(c *gin.Context) {
	draft := h.Svc.Peek()
	if draft == nil {
		utils.JSONError(c, http.StatusNotFound, "no booking in progress", "")
		return
	}
	resp := gin.H{"draft": draft, "errors": h.Svc.Errors()}
	if suggested, ok := suggestedReturnDate(draft); ok {
		resp["suggestedReturnDate"] = suggested
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitSession handles POST /api/rental/session/submit.
func (h *RentalHandler) SubmitSession(c *gin.Context) {
	if h.Svc.Peek() == nil {
		utils.JSONError(c, http.StatusConflict, "no booking in progress", "")
		return
	}

	record, verrs, err := h.Svc.Submit(c.Request.Context())
	if len(verrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
		return
	}
	if err != nil {
		// Mirror write failed; the rental is committed regardless.
		h.Logger.Warn("SubmitSession: persistence degraded", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"rental": record})
}

// CancelSession handles DELETE /api/rental/session.
func (h *RentalHandler) CancelSession(c *gin.Context) {
	h.Svc.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// rentalView is a history entry with the dates rendered for display.
type rentalView struct {
	models.RentalRecord
	CollectionDateDisplay string `json:"collectionDateDisplay"`
	ReturnDateDisplay     string `json:"returnDateDisplay"`
}

// ListRentals handles GET /api/rentals: the renter's history in commit order.
func (h *RentalHandler) ListRentals(c *gin.Context) {
	records := h.Svc.History()
	views := make([]rentalView, 0, len(records))
	for _, r := range records {
		views = append(views, rentalView{
			RentalRecord:          r,
			CollectionDateDisplay: utils.FormatDisplayDate(r.Period.CollectionDate),
			ReturnDateDisplay:     utils.FormatDisplayDate(r.Period.ReturnDate),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rentals": views})
}

// ReturnRental handles POST /api/rentals/:id/return.
func (h *RentalHandler) ReturnRental(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid rental id", "")
		return
	}

	if err := h.Svc.MarkReturned(c.Request.Context(), id); err != nil {
		if errors.Is(err, rental.ErrRentalNotFound) {
			utils.JSONError(c, http.StatusNotFound, "rental not found", "")
			return
		}
		h.Logger.Warn("ReturnRental: persistence degraded", zap.Int64("rentalId", id), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "returned"})
}
