package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albumizer/internal/domain"
	"albumizer/internal/pricing"
	orderrepo "albumizer/internal/repository/order"
)

type stubOrderRepo struct {
	created    *orderrepo.CreateOrderInput
	order      *domain.Order
	items      []domain.OrderItem
	lastStatus domain.OrderStatus
	lastNote   string
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.created = &in
	return &domain.Order{
		ID:           77,
		OrdererID:    in.OrdererID,
		PurchaseDate: time.Now().UTC(),
		Status:       domain.StatusOrdered,
		StatusText:   domain.StatusOrdered.String(),
	}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if s.order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) ListByOrderer(_ context.Context, _ int64) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ItemsByOrder(_ context.Context, _ int64) ([]domain.OrderItem, error) {
	return s.items, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ int64, status domain.OrderStatus, clarification string) error {
	s.lastStatus = status
	s.lastNote = clarification
	return nil
}

type stubCartRepo struct {
	lines []domain.CartLine
}

func (s *stubCartRepo) ListByUser(_ context.Context, _ int64) ([]domain.CartLine, error) {
	return s.lines, nil
}

type stubAlbumRepo struct {
	albums map[int64]*domain.Album
}

func (s *stubAlbumRepo) GetByID(_ context.Context, id int64) (*domain.Album, error) {
	album, ok := s.albums[id]
	if !ok {
		return nil, domain.ErrAlbumNotFound
	}
	return album, nil
}

type stubPaymentRepo struct {
	payment *domain.Payment
}

func (s *stubPaymentRepo) GetByOrder(_ context.Context, _ int64) (*domain.Payment, error) {
	if s.payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return s.payment, nil
}

func testEngine() *pricing.Engine {
	return pricing.New(pricing.Config{
		BaseAlbumFee: 500,
		PerPageFee:   50,
		ShippingFee:  800,
		VATPercent:   24,
	})
}

func addrPtr(id int64) *int64 {
	return &id
}

func newService(orders *stubOrderRepo, carts *stubCartRepo, albums *stubAlbumRepo, payments *stubPaymentRepo) *Service {
	return &Service{orders: orders, carts: carts, albums: albums, payments: payments, engine: testEngine()}
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := newService(orders, &stubCartRepo{}, &stubAlbumRepo{}, &stubPaymentRepo{})

	_, err := svc.CreateFromCart(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Nil(t, orders.created)
}

func TestCreateFromCartRequiresAddresses(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := &stubCartRepo{lines: []domain.CartLine{{AlbumID: 5, Quantity: 1}}}
	svc := newService(orders, carts, &stubAlbumRepo{}, &stubPaymentRepo{})

	_, err := svc.CreateFromCart(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMissingAddress)
	assert.Nil(t, orders.created)
}

func TestCreateFromCartSnapshotsAllLines(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := &stubCartRepo{lines: []domain.CartLine{
		{AlbumID: 5, Quantity: 2, AddressID: addrPtr(4)},
		{AlbumID: 9, Quantity: 1, AddressID: addrPtr(6)},
	}}
	svc := newService(orders, carts, &stubAlbumRepo{}, &stubPaymentRepo{})

	ord, err := svc.CreateFromCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOrdered, ord.Status)

	require.NotNil(t, orders.created)
	require.Len(t, orders.created.Items, 2)
	assert.Equal(t, orderrepo.OrderItemInput{AlbumID: 5, Quantity: 2, AddressID: 4}, orders.created.Items[0])
	assert.Equal(t, orderrepo.OrderItemInput{AlbumID: 9, Quantity: 1, AddressID: 6}, orders.created.Items[1])
}

func TestInfoIncludesBreakdownAndPayment(t *testing.T) {
	orders := &stubOrderRepo{
		order: &domain.Order{ID: 77, OrdererID: 1, Status: domain.StatusPaidAndBeingProcessed},
		items: []domain.OrderItem{
			{OrderID: 77, AlbumID: 5, Quantity: 2, AddressID: 4},
			{OrderID: 77, AlbumID: 9, Quantity: 1, AddressID: 4},
		},
	}
	albums := &stubAlbumRepo{albums: map[int64]*domain.Album{
		5: {ID: 5, Title: "Holiday", PageCount: 4},
		9: {ID: 9, Title: "Empty", PageCount: 0},
	}}
	payments := &stubPaymentRepo{payment: &domain.Payment{OrderID: 77, Amount: 2728, ReferenceCode: "REF-1"}}
	svc := newService(orders, &stubCartRepo{}, albums, payments)

	info, err := svc.Info(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(2728), info.Breakdown.Total)
	require.NotNil(t, info.Payment)
	assert.Equal(t, "REF-1", info.Payment.ReferenceCode)
}

func TestInfoWithoutPayment(t *testing.T) {
	orders := &stubOrderRepo{
		order: &domain.Order{ID: 77, OrdererID: 1, Status: domain.StatusOrdered},
	}
	svc := newService(orders, &stubCartRepo{}, &stubAlbumRepo{}, &stubPaymentRepo{})

	info, err := svc.Info(context.Background(), 77)
	require.NoError(t, err)
	assert.Nil(t, info.Payment)
}

func TestSetStatusEnforcesTransitions(t *testing.T) {
	orders := &stubOrderRepo{order: &domain.Order{ID: 77, Status: domain.StatusOrdered}}
	svc := newService(orders, &stubCartRepo{}, &stubAlbumRepo{}, &stubPaymentRepo{})

	assert.ErrorIs(t, svc.MarkSent(context.Background(), 77), domain.ErrInvalidStatusChange)
	assert.ErrorIs(t, svc.Block(context.Background(), 77, "hold"), domain.ErrInvalidStatusChange)

	orders.order.Status = domain.StatusPaidAndBeingProcessed
	require.NoError(t, svc.Block(context.Background(), 77, "card review"))
	assert.Equal(t, domain.StatusBlocked, orders.lastStatus)
	assert.Equal(t, "card review", orders.lastNote)

	orders.order.Status = domain.StatusBlocked
	require.NoError(t, svc.Unblock(context.Background(), 77))
	assert.Equal(t, domain.StatusPaidAndBeingProcessed, orders.lastStatus)

	orders.order.Status = domain.StatusPaidAndBeingProcessed
	require.NoError(t, svc.MarkSent(context.Background(), 77))
	assert.Equal(t, domain.StatusSent, orders.lastStatus)

	orders.order.Status = domain.StatusSent
	assert.ErrorIs(t, svc.Block(context.Background(), 77, ""), domain.ErrInvalidStatusChange)
}

func TestIsMadeBy(t *testing.T) {
	ord := &domain.Order{ID: 77, OrdererID: 1}
	assert.True(t, ord.IsMadeBy(1))
	assert.False(t, ord.IsMadeBy(2))
}
