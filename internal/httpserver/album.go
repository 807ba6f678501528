package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"albumizer/internal/domain"
	albumrepo "albumizer/internal/repository/album"
)

const latestPublicLimit = 20

func listPublicAlbumsHandler(albums albumrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := albums.LatestPublic(c.Request.Context(), latestPublicLimit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"albums": list})
	}
}

func listOwnAlbumsHandler(albums albumrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := albums.ListByOwner(c.Request.Context(), currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"albums": list})
	}
}

func showAlbumHandler(albums albumrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			writeError(c, domain.ErrAlbumNotFound)
			return
		}
		album, err := albums.GetByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		// private albums are indistinguishable from missing ones
		if !album.IsVisibleTo(currentUser(c)) {
			writeError(c, domain.ErrAlbumNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"album": album})
	}
}
