package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Album is a photo album owned by one user. PageCount is derived from the
// album's pages and drives the price: an album without pages costs nothing.
type Album struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	PageCount   int       `json:"pageCount"`
}

// IsOwnedBy reports whether the album belongs to the given user.
func (a *Album) IsOwnedBy(userID int64) bool {
	return a.OwnerID == userID
}

// IsVisibleTo reports whether the given user may browse the album.
func (a *Album) IsVisibleTo(userID int64) bool {
	return a.IsPublic || a.IsOwnedBy(userID)
}

// IsPurchasableBy reports whether the given user may order the album.
// Only visible albums with at least one page can be ordered.
func (a *Album) IsPurchasableBy(userID int64) bool {
	return a.IsVisibleTo(userID) && a.PageCount > 0
}

// ValidateAlbumTitle checks the 5-255 character rule after trimming. The
// limits count characters, not bytes, so multibyte titles are measured by
// their rune count.
func ValidateAlbumTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if n := utf8.RuneCountInString(trimmed); n < 5 || n > 255 {
		return ErrInvalidAlbumTitle
	}
	return nil
}
