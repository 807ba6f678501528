package domain

import "errors"

var (
	// ErrInvalidQuantity indicates a quantity outside the allowed range.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrDuplicateItem indicates the album is already in the user's cart.
	ErrDuplicateItem = errors.New("album already in cart")
	// ErrEmptyCart indicates an order was attempted with no cart lines.
	ErrEmptyCart = errors.New("shopping cart is empty")
	// ErrMissingAddress indicates a checkout step that requires delivery
	// addresses was attempted before all cart lines had one.
	ErrMissingAddress = errors.New("delivery address missing")
	// ErrIntegrityViolation indicates the cart changed between checkout steps
	// or the submitted validation hash was tampered with.
	ErrIntegrityViolation = errors.New("cart contents have changed")
	// ErrInvalidCallback indicates a payment callback with a bad checksum or
	// missing required fields.
	ErrInvalidCallback = errors.New("invalid payment callback")
	// ErrAlreadyPaid indicates a payment already exists for the order.
	ErrAlreadyPaid = errors.New("order already paid")
	// ErrInvalidStatusChange indicates a forbidden order status transition.
	ErrInvalidStatusChange = errors.New("invalid order status change")
	// ErrAlbumNotPurchasable indicates the album cannot be ordered by the
	// user: it is private to someone else or has no pages.
	ErrAlbumNotPurchasable = errors.New("album not purchasable")
	// ErrInvalidAlbumTitle indicates an album title outside 5-255 characters.
	ErrInvalidAlbumTitle = errors.New("invalid album title")
	// ErrDuplicateAlbumTitle indicates the owner already has an album with
	// the same title.
	ErrDuplicateAlbumTitle = errors.New("album title already used")

	ErrAlbumNotFound    = errors.New("album not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrUserNotFound     = errors.New("user not found")
)
