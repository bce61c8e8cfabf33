package routes

import (
	"bookrental/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRentalRoutes registers all endpoints for the booking session and
// rental history.
func RegisterRentalRoutes(r *gin.Engine, h *handlers.RentalHandler) {
	session := r.Group("/api/rental/session")
	{
		session.POST("", h.BeginSession)          // open a draft for a book
		session.PATCH("", h.UpdateSession)        // merge form field edits
		session.GET("", h.PeekSession)            // recovery snapshot
		session.POST("/submit", h.SubmitSession)  // validate and commit
		session.DELETE("", h.CancelSession)       // abandon the booking
	}

	rentals := r.Group("/api/rentals")
	{
		rentals.GET("", h.ListRentals)
		rentals.POST("/:id/return", h.ReturnRental)
	}
}
