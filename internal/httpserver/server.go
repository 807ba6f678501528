// Package httpserver translates HTTP requests into the operations of the
// checkout core. It owns status-code mapping and request parsing; all
// domain rules live in the services below it.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"albumizer/internal/integrity"
	addressrepo "albumizer/internal/repository/address"
	albumrepo "albumizer/internal/repository/album"
	userrepo "albumizer/internal/repository/user"
	cartsvc "albumizer/internal/service/cart"
	ordersvc "albumizer/internal/service/order"
	paymentsvc "albumizer/internal/service/payment"
)

// Deps carries everything the routes need.
type Deps struct {
	Users      userrepo.Repository
	Albums     albumrepo.Repository
	Addresses  addressrepo.Repository
	CartSvc    *cartsvc.Service
	OrderSvc   *ordersvc.Service
	Reconciler *paymentsvc.Reconciler
	Guard      *integrity.Guard

	AuthSecret   string
	AuthTokenTTL time.Duration
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	db         *pgxpool.Pool
}

// New builds a Server with all routes wired.
func New(addr string, logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
