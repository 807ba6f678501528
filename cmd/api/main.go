package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"albumizer/internal/config"
	"albumizer/internal/db"
	"albumizer/internal/httpserver"
	"albumizer/internal/integrity"
	"albumizer/internal/pricing"
	addressrepo "albumizer/internal/repository/address"
	albumrepo "albumizer/internal/repository/album"
	cartrepo "albumizer/internal/repository/cart"
	orderrepo "albumizer/internal/repository/order"
	paymentrepo "albumizer/internal/repository/payment"
	userrepo "albumizer/internal/repository/user"
	cartsvc "albumizer/internal/service/cart"
	ordersvc "albumizer/internal/service/order"
	paymentsvc "albumizer/internal/service/payment"
	"albumizer/internal/simplepay"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool)
	albums := albumrepo.NewPostgres(pool)
	addresses := addressrepo.NewPostgres(pool)
	carts := cartrepo.NewPostgres(pool)
	orders := orderrepo.NewPostgres(pool)
	payments := paymentrepo.NewPostgres(pool)

	engine := pricing.New(cfg.Pricing())
	guard := integrity.NewGuard(cfg.CartHashSecret)
	provider := simplepay.New(cfg.Payment())

	cartService := cartsvc.New(carts, albums, addresses, engine)
	orderService := ordersvc.New(orders, carts, albums, payments, engine)
	reconciler := paymentsvc.NewReconciler(payments, orderService, provider)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Users:        users,
		Albums:       albums,
		Addresses:    addresses,
		CartSvc:      cartService,
		OrderSvc:     orderService,
		Reconciler:   reconciler,
		Guard:        guard,
		AuthSecret:   cfg.AuthSecret,
		AuthTokenTTL: cfg.AuthTokenTTL,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
