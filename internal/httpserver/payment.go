package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentsvc "albumizer/internal/service/payment"
	"albumizer/internal/simplepay"
)

const (
	callbackSuccessful   = simplepay.StatusSuccessful
	callbackCanceled     = simplepay.StatusCanceled
	callbackUnsuccessful = simplepay.StatusUnsuccessful
)

// paymentCallbackHandler receives the provider's redirect-back. The provider
// may deliver the same callback more than once; the reconciler absorbs the
// repeats.
func paymentCallbackHandler(rec *paymentsvc.Reconciler, status simplepay.CallbackStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := rec.HandleCallback(c.Request.Context(), paymentsvc.Callback{
			Pid:      c.Query("pid"),
			Ref:      c.Query("ref"),
			Checksum: c.Query("checksum"),
			Status:   status,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order":  result.Order,
			"paid":   result.Paid,
			"status": result.Order.Status.String(),
		})
	}
}
