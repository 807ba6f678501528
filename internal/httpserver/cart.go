package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"albumizer/internal/domain"
	cartsvc "albumizer/internal/service/cart"
)

type addToCartRequest struct {
	AlbumID int64 `json:"albumId" binding:"required"`
}

type updateCartLineRequest struct {
	Quantity  *int   `json:"quantity"`
	AddressID *int64 `json:"addressId"`
}

func showCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, summary, err := svc.Summary(c.Request.Context(), currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines, "summary": toSummaryView(summary)})
	}
}

func addToCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "albumId required"})
			return
		}
		line, err := svc.Add(c.Request.Context(), currentUser(c), req.AlbumID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"line": line})
	}
}

// updateCartLineHandler changes the quantity and/or delivery address of one
// line. Quantity zero removes the line.
func updateCartLineHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		albumID, err := strconv.ParseInt(c.Param("albumID"), 10, 64)
		if err != nil {
			writeError(c, domain.ErrCartLineNotFound)
			return
		}
		var req updateCartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart line payload"})
			return
		}
		if req.Quantity == nil && req.AddressID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)

		if req.Quantity != nil {
			if *req.Quantity == 0 {
				if err := svc.Remove(ctx, userID, albumID); err != nil {
					writeError(c, err)
					return
				}
				c.JSON(http.StatusOK, gin.H{"removed": true})
				return
			}
			if err := svc.UpdateQuantity(ctx, userID, albumID, *req.Quantity); err != nil {
				writeError(c, err)
				return
			}
		}
		if req.AddressID != nil {
			if err := svc.SetDeliveryAddress(ctx, userID, albumID, *req.AddressID); err != nil {
				writeError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func removeCartLineHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		albumID, err := strconv.ParseInt(c.Param("albumID"), 10, 64)
		if err != nil {
			writeError(c, domain.ErrCartLineNotFound)
			return
		}
		if err := svc.Remove(c.Request.Context(), currentUser(c), albumID); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func emptyCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveAll(c.Request.Context(), currentUser(c)); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
