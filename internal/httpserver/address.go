package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	addressrepo "albumizer/internal/repository/address"
)

type createAddressRequest struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

func listAddressesHandler(addresses addressrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := addresses.ListByOwner(c.Request.Context(), currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": list})
	}
}

func createAddressHandler(addresses addressrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address payload"})
			return
		}
		addr, err := addresses.Create(c.Request.Context(), addressrepo.CreateAddressInput{
			OwnerID: currentUser(c),
			Line1:   req.Line1,
			Line2:   req.Line2,
			ZipCode: req.ZipCode,
			City:    req.City,
			State:   req.State,
			Country: req.Country,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"address": addr})
	}
}
