package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"albumizer/internal/domain"
	"albumizer/internal/integrity"
	addressrepo "albumizer/internal/repository/address"
	cartsvc "albumizer/internal/service/cart"
	ordersvc "albumizer/internal/service/order"
	paymentsvc "albumizer/internal/service/payment"
)

// The checkout wizard is stateless on the server side: each step returns a
// hash over the session and cart contents, and the next step refuses to run
// unless the client echoes it back unchanged. Any cart mutation between steps
// invalidates the hash and sends the user back to the cart.

type addressAssignment struct {
	AlbumID   int64 `json:"albumId" binding:"required"`
	AddressID int64 `json:"addressId" binding:"required"`
}

type checkoutAddressesRequest struct {
	Hash        string              `json:"hash" binding:"required"`
	Assignments []addressAssignment `json:"assignments"`
}

type checkoutStepRequest struct {
	Hash string `json:"hash" binding:"required"`
}

func sessionOf(c *gin.Context) integrity.Session {
	return integrity.Session{
		Username:   currentUsername(c),
		ClientIP:   c.ClientIP(),
		ClientHost: c.Request.Host,
		UserAgent:  c.Request.UserAgent(),
	}
}

// checkoutStartHandler opens the wizard: it returns the cart lines, the
// user's address book and the hash the address step requires.
func checkoutStartHandler(carts *cartsvc.Service, addresses addressrepo.Repository, guard *integrity.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := currentUser(c)

		lines, summary, err := carts.Summary(ctx, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		if len(lines) == 0 {
			writeError(c, domain.ErrEmptyCart)
			return
		}
		book, err := addresses.ListByOwner(ctx, userID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"lines":     lines,
			"summary":   toSummaryView(summary),
			"addresses": book,
			"hash":      guard.Hash(sessionOf(c), integrity.StepAddresses, lines),
		})
	}
}

// checkoutAddressesHandler assigns delivery addresses to cart lines and moves
// the wizard to the summary step.
func checkoutAddressesHandler(carts *cartsvc.Service, guard *integrity.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutAddressesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hash required"})
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		sess := sessionOf(c)

		lines, err := carts.List(ctx, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := guard.Validate(sess, integrity.StepAddresses, lines, req.Hash); err != nil {
			writeError(c, err)
			return
		}

		for _, a := range req.Assignments {
			if err := carts.SetDeliveryAddress(ctx, userID, a.AlbumID, a.AddressID); err != nil {
				writeError(c, err)
				return
			}
		}

		lines, breakdown, err := carts.OrderSummary(ctx, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"lines":     lines,
			"breakdown": toBreakdownView(breakdown),
			"hash":      guard.Hash(sess, integrity.StepSummary, lines),
		})
	}
}

// checkoutSummaryHandler confirms the priced summary and issues the final
// confirmation hash.
func checkoutSummaryHandler(carts *cartsvc.Service, guard *integrity.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutStepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hash required"})
			return
		}

		ctx := c.Request.Context()
		sess := sessionOf(c)

		lines, breakdown, err := carts.OrderSummary(ctx, currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if err := guard.Validate(sess, integrity.StepSummary, lines, req.Hash); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"lines":     lines,
			"breakdown": toBreakdownView(breakdown),
			"hash":      guard.Hash(sess, integrity.StepConfirm, lines),
		})
	}
}

// checkoutConfirmHandler turns the cart into an order and returns the payment
// redirect for it.
func checkoutConfirmHandler(carts *cartsvc.Service, orders *ordersvc.Service, rec *paymentsvc.Reconciler, guard *integrity.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutStepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hash required"})
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)

		lines, err := carts.List(ctx, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := guard.Validate(sessionOf(c), integrity.StepConfirm, lines, req.Hash); err != nil {
			writeError(c, err)
			return
		}

		ord, err := orders.CreateFromCart(ctx, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		redirect, err := rec.RedirectFor(ctx, ord.ID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":    ord,
			"payment":  redirect,
			"redirect": redirect.RedirectURL(),
		})
	}
}
