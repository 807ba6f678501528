package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"albumizer/internal/domain"
)

// writeError maps domain errors to HTTP status codes. The services never see
// HTTP; this is the only place status codes are decided.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAlbumNotFound),
		errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCartLineNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrMissingAddress),
		errors.Is(err, domain.ErrInvalidCallback),
		errors.Is(err, domain.ErrInvalidAlbumTitle),
		errors.Is(err, domain.ErrAlbumNotPurchasable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrIntegrityViolation):
		// stale or tampered wizard state: the client must restart from the cart
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect": "/cart"})

	case errors.Is(err, domain.ErrDuplicateItem),
		errors.Is(err, domain.ErrDuplicateAlbumTitle),
		errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrInvalidStatusChange):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
