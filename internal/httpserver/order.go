package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"albumizer/internal/domain"
	ordersvc "albumizer/internal/service/order"
	paymentsvc "albumizer/internal/service/payment"
)

type statusAction string

const (
	actionSent    statusAction = "sent"
	actionBlock   statusAction = "block"
	actionUnblock statusAction = "unblock"
)

type blockOrderRequest struct {
	Clarification string `json:"clarification"`
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListFor(c.Request.Context(), currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func showOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ord, ok := ownOrder(c, svc)
		if !ok {
			return
		}
		info, err := svc.Info(c.Request.Context(), ord.ID)
		if err != nil {
			writeError(c, err)
			return
		}

		body := gin.H{
			"order":     info.Order,
			"items":     info.Items,
			"breakdown": toBreakdownView(info.Breakdown),
		}
		if info.Payment != nil {
			body["payment"] = ordersvc.PaymentInfo{
				Amount:          info.Payment.Amount.String(),
				TransactionDate: info.Payment.TransactionDate.Format(time.RFC3339),
				ReferenceCode:   info.Payment.ReferenceCode,
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

// payOrderHandler returns the provider redirect for paying an unpaid order,
// so an interrupted checkout can be resumed.
func payOrderHandler(svc *ordersvc.Service, rec *paymentsvc.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ord, ok := ownOrder(c, svc)
		if !ok {
			return
		}
		if ord.Status != domain.StatusOrdered {
			writeError(c, domain.ErrAlreadyPaid)
			return
		}
		redirect, err := rec.RedirectFor(c.Request.Context(), ord.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment": redirect, "redirect": redirect.RedirectURL()})
	}
}

// orderStatusHandler applies one back-office transition. The state machine in
// the service rejects anything the current status does not allow.
func orderStatusHandler(svc *ordersvc.Service, action statusAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			writeError(c, domain.ErrOrderNotFound)
			return
		}
		ctx := c.Request.Context()

		switch action {
		case actionSent:
			err = svc.MarkSent(ctx, id)
		case actionBlock:
			var req blockOrderRequest
			// the clarification body is optional
			_ = c.ShouldBindJSON(&req)
			err = svc.Block(ctx, id, req.Clarification)
		case actionUnblock:
			err = svc.Unblock(ctx, id)
		}
		if err != nil {
			writeError(c, err)
			return
		}

		ord, err := svc.Get(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": ord})
	}
}

// ownOrder loads the order from the :id parameter and hides orders made by
// other users behind a not-found answer.
func ownOrder(c *gin.Context, svc *ordersvc.Service) (*domain.Order, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrOrderNotFound)
		return nil, false
	}
	ord, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !ord.IsMadeBy(currentUser(c)) {
		writeError(c, domain.ErrOrderNotFound)
		return nil, false
	}
	return ord, true
}
