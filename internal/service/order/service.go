// Package order implements the order lifecycle: creation from the shopping
// cart, the status state machine and the price/payment breakdown of an order.
package order

import (
	"context"
	"errors"
	"fmt"

	"albumizer/internal/domain"
	"albumizer/internal/pricing"
	orderrepo "albumizer/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByOrderer(ctx context.Context, ordererID int64) ([]domain.Order, error)
	ItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, clarification string) error
}

type cartRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
}

type albumRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Album, error)
}

type paymentRepo interface {
	GetByOrder(ctx context.Context, orderID int64) (*domain.Payment, error)
}

type Service struct {
	orders   orderRepo
	carts    cartRepo
	albums   albumRepo
	payments paymentRepo
	engine   *pricing.Engine
}

func New(orders orderrepo.Repository, carts cartRepo, albums albumRepo, payments paymentRepo, engine *pricing.Engine) *Service {
	return &Service{orders: orders, carts: carts, albums: albums, payments: payments, engine: engine}
}

// PaymentInfo is the payment part of an order info payload. Amount is
// rendered with two decimals.
type PaymentInfo struct {
	Amount          string `json:"amount"`
	TransactionDate string `json:"transactionDate"`
	ReferenceCode   string `json:"referenceCode"`
}

// Info is the full view of one order: the order row, its immutable items,
// the price breakdown and, once paid, the payment.
type Info struct {
	Order     *domain.Order      `json:"order"`
	Items     []domain.OrderItem `json:"items"`
	Breakdown *pricing.Breakdown `json:"-"`
	Payment   *domain.Payment    `json:"-"`
}

// CreateFromCart snapshots the user's cart lines into a new order and clears
// the cart, atomically. An empty cart fails with ErrEmptyCart; a line without
// a delivery address fails with ErrMissingAddress.
func (s *Service) CreateFromCart(ctx context.Context, userID int64) (*domain.Order, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]orderrepo.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		if line.AddressID == nil {
			return nil, domain.ErrMissingAddress
		}
		items = append(items, orderrepo.OrderItemInput{
			AlbumID:   line.AlbumID,
			Quantity:  line.Quantity,
			AddressID: *line.AddressID,
		})
	}

	return s.orders.Create(ctx, orderrepo.CreateOrderInput{
		OrdererID: userID,
		Items:     items,
	})
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// ListFor returns the user's orders in (orderer, purchase date) order.
func (s *Service) ListFor(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByOrderer(ctx, userID)
}

// Info assembles the full order view. The payment is attached when present;
// its absence is not an error, it just means the order is unpaid.
func (s *Service) Info(ctx context.Context, orderID int64) (*Info, error) {
	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.ItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.breakdownOf(ctx, items)
	if err != nil {
		return nil, err
	}

	info := &Info{Order: ord, Items: items, Breakdown: breakdown}

	pay, err := s.payments.GetByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}
	if err == nil {
		info.Payment = pay
	}
	return info, nil
}

// Total returns the computed order total: items, shipping and VAT.
func (s *Service) Total(ctx context.Context, orderID int64) (domain.Cents, error) {
	items, err := s.orders.ItemsByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	breakdown, err := s.breakdownOf(ctx, items)
	if err != nil {
		return 0, err
	}
	return breakdown.Total, nil
}

// SetStatus applies a status transition, enforcing the state machine.
func (s *Service) SetStatus(ctx context.Context, orderID int64, next domain.OrderStatus, clarification string) error {
	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !ord.Status.CanTransitionTo(next) {
		return fmt.Errorf("%s to %s: %w", ord.Status, next, domain.ErrInvalidStatusChange)
	}
	return s.orders.UpdateStatus(ctx, orderID, next, clarification)
}

// MarkSent moves a paid order to its terminal state.
func (s *Service) MarkSent(ctx context.Context, orderID int64) error {
	return s.SetStatus(ctx, orderID, domain.StatusSent, "")
}

// Block puts a paid order on hold with a clarification for the customer.
func (s *Service) Block(ctx context.Context, orderID int64, clarification string) error {
	return s.SetStatus(ctx, orderID, domain.StatusBlocked, clarification)
}

// Unblock releases a blocked order back into processing.
func (s *Service) Unblock(ctx context.Context, orderID int64) error {
	return s.SetStatus(ctx, orderID, domain.StatusPaidAndBeingProcessed, "")
}

func (s *Service) breakdownOf(ctx context.Context, items []domain.OrderItem) (*pricing.Breakdown, error) {
	inputs := make([]pricing.Item, 0, len(items))
	for _, item := range items {
		album, err := s.albums.GetByID(ctx, item.AlbumID)
		if err != nil {
			return nil, fmt.Errorf("album %d: %w", item.AlbumID, err)
		}
		addressID := item.AddressID
		inputs = append(inputs, pricing.Item{
			AlbumID:   album.ID,
			Title:     album.Title,
			PageCount: album.PageCount,
			Quantity:  item.Quantity,
			AddressID: &addressID,
		})
	}
	return s.engine.Breakdown(inputs)
}
