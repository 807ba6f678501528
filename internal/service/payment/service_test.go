package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albumizer/internal/domain"
	paymentrepo "albumizer/internal/repository/payment"
	"albumizer/internal/simplepay"
)

const testSecret = "a76562ae5654109c5c349d45a6e24d16"

type stubPaymentRepo struct {
	payment     *domain.Payment
	createErr   error
	createCalls int
}

func (s *stubPaymentRepo) Create(_ context.Context, in paymentrepo.CreatePaymentInput) (*domain.Payment, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.payment != nil {
		return nil, domain.ErrAlreadyPaid
	}
	s.payment = &domain.Payment{
		ID:            1,
		OrderID:       in.OrderID,
		Amount:        in.Amount,
		ReferenceCode: in.ReferenceCode,
	}
	return s.payment, nil
}

func (s *stubPaymentRepo) GetByOrder(_ context.Context, _ int64) (*domain.Payment, error) {
	if s.payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return s.payment, nil
}

type stubOrders struct {
	order       *domain.Order
	total       domain.Cents
	statusCalls int
}

func (s *stubOrders) Get(_ context.Context, _ int64) (*domain.Order, error) {
	if s.order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrders) Total(_ context.Context, _ int64) (domain.Cents, error) {
	return s.total, nil
}

func (s *stubOrders) SetStatus(_ context.Context, _ int64, next domain.OrderStatus, _ string) error {
	s.statusCalls++
	s.order.Status = next
	return nil
}

func testReconciler(payments paymentRepo, orders *stubOrders) *Reconciler {
	provider := simplepay.New(simplepay.Config{
		SellerID:   "albumizer",
		Secret:     testSecret,
		ServiceURL: "https://payments.example/pay",
	})
	return NewReconciler(payments, orders, provider)
}

func callbackChecksum(pid int64, ref string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("pid=%d&ref=%s&token=%s", pid, ref, testSecret)))
	return hex.EncodeToString(sum[:])
}

func validCallback(pid int64, status simplepay.CallbackStatus) Callback {
	return Callback{
		Pid:      fmt.Sprintf("%d", pid),
		Ref:      "REF-1",
		Checksum: callbackChecksum(pid, "REF-1"),
		Status:   status,
	}
}

func TestHandleCallbackMissingFields(t *testing.T) {
	payments := &stubPaymentRepo{}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}}
	rec := testReconciler(payments, orders)

	for _, cb := range []Callback{
		{},
		{Pid: "42", Ref: "REF-1"},
		{Pid: "42", Checksum: "abc"},
		{Ref: "REF-1", Checksum: "abc"},
		{Pid: "not-a-number", Ref: "REF-1", Checksum: "abc"},
	} {
		_, err := rec.HandleCallback(context.Background(), cb)
		assert.ErrorIs(t, err, domain.ErrInvalidCallback)
	}
	assert.Equal(t, 0, payments.createCalls)
	assert.Equal(t, 0, orders.statusCalls)
}

func TestHandleCallbackBadChecksum(t *testing.T) {
	payments := &stubPaymentRepo{}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}}
	rec := testReconciler(payments, orders)

	cb := validCallback(42, simplepay.StatusSuccessful)
	cb.Checksum = callbackChecksum(43, "REF-1")

	_, err := rec.HandleCallback(context.Background(), cb)
	assert.ErrorIs(t, err, domain.ErrInvalidCallback)
	assert.Equal(t, 0, payments.createCalls)
	assert.Equal(t, domain.StatusOrdered, orders.order.Status)
}

func TestHandleCallbackSuccessful(t *testing.T) {
	payments := &stubPaymentRepo{}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}, total: 2728}
	rec := testReconciler(payments, orders)

	res, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusSuccessful))
	require.NoError(t, err)

	assert.True(t, res.Paid)
	require.NotNil(t, res.Payment)
	assert.Equal(t, domain.Cents(2728), res.Payment.Amount)
	assert.Equal(t, "REF-1", res.Payment.ReferenceCode)
	assert.Equal(t, domain.StatusPaidAndBeingProcessed, orders.order.Status)
}

func TestHandleCallbackSuccessfulIsIdempotent(t *testing.T) {
	payments := &stubPaymentRepo{}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}, total: 2728}
	rec := testReconciler(payments, orders)

	first, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusSuccessful))
	require.NoError(t, err)
	second, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusSuccessful))
	require.NoError(t, err)

	assert.Equal(t, 1, payments.createCalls)
	assert.Equal(t, 1, orders.statusCalls)
	assert.Equal(t, first.Payment.ID, second.Payment.ID)
	assert.Equal(t, domain.StatusPaidAndBeingProcessed, orders.order.Status)
}

// racingPaymentRepo simulates a concurrent identical callback writing the
// payment between the existence check and the insert.
type racingPaymentRepo struct {
	existing *domain.Payment
	gets     int
}

func (s *racingPaymentRepo) Create(_ context.Context, _ paymentrepo.CreatePaymentInput) (*domain.Payment, error) {
	return nil, domain.ErrAlreadyPaid
}

func (s *racingPaymentRepo) GetByOrder(_ context.Context, _ int64) (*domain.Payment, error) {
	s.gets++
	if s.gets == 1 {
		return nil, domain.ErrPaymentNotFound
	}
	return s.existing, nil
}

func TestHandleCallbackCreateRaceFallsBackToExisting(t *testing.T) {
	existing := &domain.Payment{ID: 9, OrderID: 42, Amount: 2728, ReferenceCode: "REF-1"}
	payments := &racingPaymentRepo{existing: existing}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}, total: 2728}
	rec := testReconciler(payments, orders)

	res, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusSuccessful))
	require.NoError(t, err)
	assert.True(t, res.Paid)
	assert.Equal(t, existing, res.Payment)
}

func TestHandleCallbackCanceledLeavesOrderAlone(t *testing.T) {
	payments := &stubPaymentRepo{}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}}
	rec := testReconciler(payments, orders)

	res, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusCanceled))
	require.NoError(t, err)

	assert.False(t, res.Paid)
	assert.Nil(t, res.Payment)
	assert.Equal(t, 0, payments.createCalls)
	assert.Equal(t, domain.StatusOrdered, orders.order.Status)
}

func TestHandleCallbackUnsuccessfulLeavesOrderAlone(t *testing.T) {
	payments := &stubPaymentRepo{}
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}}
	rec := testReconciler(payments, orders)

	res, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusUnsuccessful))
	require.NoError(t, err)
	assert.False(t, res.Paid)
	assert.Equal(t, domain.StatusOrdered, orders.order.Status)
}

func TestHandleCallbackUnknownOrder(t *testing.T) {
	rec := testReconciler(&stubPaymentRepo{}, &stubOrders{})

	_, err := rec.HandleCallback(context.Background(), validCallback(42, simplepay.StatusSuccessful))
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRedirectForUsesOrderTotal(t *testing.T) {
	orders := &stubOrders{order: &domain.Order{ID: 42, Status: domain.StatusOrdered}, total: 2728}
	rec := testReconciler(&stubPaymentRepo{}, orders)

	req, err := rec.RedirectFor(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), req.Pid)
	assert.Equal(t, "27.28", req.Amount)
}
