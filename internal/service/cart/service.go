// Package cart implements the shopping cart operations: one mutable line per
// (user, album), persisted immediately on every mutation.
package cart

import (
	"context"
	"fmt"

	"albumizer/internal/domain"
	"albumizer/internal/pricing"
	cartrepo "albumizer/internal/repository/cart"
)

type cartRepo interface {
	Add(ctx context.Context, in cartrepo.AddLineInput) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, albumID int64, quantity int) error
	SetAddress(ctx context.Context, userID, albumID, addressID int64) error
	Remove(ctx context.Context, userID, albumID int64) error
	RemoveAll(ctx context.Context, userID int64) error
}

type albumRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Album, error)
}

type addressRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
}

type Service struct {
	carts     cartRepo
	albums    albumRepo
	addresses addressRepo
	engine    *pricing.Engine
}

func New(carts cartrepo.Repository, albums albumRepo, addresses addressRepo, engine *pricing.Engine) *Service {
	return &Service{carts: carts, albums: albums, addresses: addresses, engine: engine}
}

// Add puts one copy of the album into the user's cart. Albums the user may
// not see are reported as not found; visible albums without pages are not
// purchasable; an album already in the cart is rejected, not merged.
func (s *Service) Add(ctx context.Context, userID, albumID int64) (*domain.CartLine, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if !album.IsVisibleTo(userID) {
		return nil, domain.ErrAlbumNotFound
	}
	if !album.IsPurchasableBy(userID) {
		return nil, domain.ErrAlbumNotPurchasable
	}
	return s.carts.Add(ctx, cartrepo.AddLineInput{
		UserID:   userID,
		AlbumID:  albumID,
		Quantity: domain.MinLineQuantity,
	})
}

// UpdateQuantity changes the line quantity. Zero is not handled here: the
// caller routes it to Remove instead.
func (s *Service) UpdateQuantity(ctx context.Context, userID, albumID int64, quantity int) error {
	if quantity < domain.MinLineQuantity || quantity > domain.MaxLineQuantity {
		return domain.ErrInvalidQuantity
	}
	return s.carts.UpdateQuantity(ctx, userID, albumID, quantity)
}

// SetDeliveryAddress assigns one of the user's own addresses to the line.
func (s *Service) SetDeliveryAddress(ctx context.Context, userID, albumID, addressID int64) error {
	addr, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if addr.OwnerID != userID {
		return domain.ErrAddressNotFound
	}
	return s.carts.SetAddress(ctx, userID, albumID, addressID)
}

// Remove deletes one line from the cart.
func (s *Service) Remove(ctx context.Context, userID, albumID int64) error {
	return s.carts.Remove(ctx, userID, albumID)
}

// RemoveAll empties the cart.
func (s *Service) RemoveAll(ctx context.Context, userID int64) error {
	return s.carts.RemoveAll(ctx, userID)
}

// List returns the cart lines in deterministic (user, album) order.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return s.carts.ListByUser(ctx, userID)
}

// Summary prices the cart without shipping or VAT.
func (s *Service) Summary(ctx context.Context, userID int64) ([]domain.CartLine, *pricing.CartSummary, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.pricingItems(ctx, lines)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.engine.Summarize(items)
	if err != nil {
		return nil, nil, err
	}
	return lines, summary, nil
}

// OrderSummary prices the cart as the order it would become: shipping groups
// per delivery address plus VAT. Every line must have an address by now.
func (s *Service) OrderSummary(ctx context.Context, userID int64) ([]domain.CartLine, *pricing.Breakdown, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	for _, line := range lines {
		if line.AddressID == nil {
			return nil, nil, domain.ErrMissingAddress
		}
	}
	items, err := s.pricingItems(ctx, lines)
	if err != nil {
		return nil, nil, err
	}
	breakdown, err := s.engine.Breakdown(items)
	if err != nil {
		return nil, nil, err
	}
	return lines, breakdown, nil
}

func (s *Service) pricingItems(ctx context.Context, lines []domain.CartLine) ([]pricing.Item, error) {
	items := make([]pricing.Item, 0, len(lines))
	for _, line := range lines {
		album, err := s.albums.GetByID(ctx, line.AlbumID)
		if err != nil {
			return nil, fmt.Errorf("album %d: %w", line.AlbumID, err)
		}
		items = append(items, pricing.Item{
			AlbumID:   album.ID,
			Title:     album.Title,
			PageCount: album.PageCount,
			Quantity:  line.Quantity,
			AddressID: line.AddressID,
		})
	}
	return items, nil
}
