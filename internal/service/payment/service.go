// Package payment reconciles callbacks from the external payment provider
// with local order state. The provider retries callbacks on its own, so the
// handler must tolerate being invoked repeatedly with identical parameters.
package payment

import (
	"context"
	"errors"
	"strconv"

	"albumizer/internal/domain"
	paymentrepo "albumizer/internal/repository/payment"
	"albumizer/internal/simplepay"
)

type paymentRepo interface {
	Create(ctx context.Context, in paymentrepo.CreatePaymentInput) (*domain.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*domain.Payment, error)
}

// orderSource is the slice of the order lifecycle the reconciler needs.
type orderSource interface {
	Get(ctx context.Context, orderID int64) (*domain.Order, error)
	Total(ctx context.Context, orderID int64) (domain.Cents, error)
	SetStatus(ctx context.Context, orderID int64, next domain.OrderStatus, clarification string) error
}

type Reconciler struct {
	payments paymentRepo
	orders   orderSource
	provider *simplepay.Client
}

func NewReconciler(payments paymentRepo, orders orderSource, provider *simplepay.Client) *Reconciler {
	return &Reconciler{payments: payments, orders: orders, provider: provider}
}

// Callback carries the raw provider callback parameters. Pid is the order id
// the redirect was built with, echoed back as a string.
type Callback struct {
	Pid      string
	Ref      string
	Checksum string
	Status   simplepay.CallbackStatus
}

// Result reports what the callback did.
type Result struct {
	Order   *domain.Order
	Payment *domain.Payment
	Paid    bool
}

// RedirectFor builds the provider redirect for paying the order's total.
func (r *Reconciler) RedirectFor(ctx context.Context, orderID int64) (*simplepay.Request, error) {
	if _, err := r.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	total, err := r.orders.Total(ctx, orderID)
	if err != nil {
		return nil, err
	}
	req := r.provider.PaymentRequest(orderID, total)
	return &req, nil
}

// HandleCallback verifies the checksum and advances order state. A checksum
// mismatch or missing field fails with ErrInvalidCallback and changes
// nothing. A successful callback for an already-paid order is an idempotent
// success: the existing payment is returned and no second one is created.
func (r *Reconciler) HandleCallback(ctx context.Context, cb Callback) (*Result, error) {
	if cb.Pid == "" || cb.Ref == "" || cb.Checksum == "" {
		return nil, domain.ErrInvalidCallback
	}
	orderID, err := strconv.ParseInt(cb.Pid, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidCallback
	}
	if err := r.provider.VerifyCallback(orderID, cb.Ref, cb.Checksum); err != nil {
		return nil, err
	}

	ord, err := r.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch cb.Status {
	case simplepay.StatusSuccessful:
		return r.settle(ctx, ord, cb.Ref)
	case simplepay.StatusCanceled, simplepay.StatusUnsuccessful:
		// informational only, the order stays as it is
		return &Result{Order: ord}, nil
	default:
		return nil, domain.ErrInvalidCallback
	}
}

func (r *Reconciler) settle(ctx context.Context, ord *domain.Order, ref string) (*Result, error) {
	existing, err := r.payments.GetByOrder(ctx, ord.ID)
	if err == nil {
		return &Result{Order: ord, Payment: existing, Paid: true}, nil
	}
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}

	total, err := r.orders.Total(ctx, ord.ID)
	if err != nil {
		return nil, err
	}

	pay, err := r.payments.Create(ctx, paymentrepo.CreatePaymentInput{
		OrderID:       ord.ID,
		Amount:        total,
		ReferenceCode: ref,
	})
	if errors.Is(err, domain.ErrAlreadyPaid) {
		// lost a race against an identical callback; report its outcome
		pay, err = r.payments.GetByOrder(ctx, ord.ID)
	}
	if err != nil {
		return nil, err
	}

	if ord.Status == domain.StatusOrdered {
		if err := r.orders.SetStatus(ctx, ord.ID, domain.StatusPaidAndBeingProcessed, ""); err != nil {
			return nil, err
		}
		ord.Status = domain.StatusPaidAndBeingProcessed
		ord.StatusText = ord.Status.String()
	}
	return &Result{Order: ord, Payment: pay, Paid: true}, nil
}
