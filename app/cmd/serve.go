package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/configs"
	"github.com/Rakhulsr/go-storefront-cart/app/metrics"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/Rakhulsr/go-storefront-cart/app/routes"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/sessions"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// cartStorage picks the server-side cart backend. The session backend
// returns nil: carts then stay in the cookie.
func cartStorage(ctx context.Context, env configs.ENV, db *gorm.DB) (repositories.CartStorage, func(), error) {
	noop := func() {}

	switch env.CartStorage {
	case configs.CartStorageSession:
		return nil, noop, nil
	case configs.CartStorageMySQL:
		return repositories.NewCartRepository(db), noop, nil
	case configs.CartStorageMemory:
		return repositories.NewMemoryCartRepository(), noop, nil
	case configs.CartStorageRedis:
		client, err := configs.OpenRedis(ctx, env)
		if err != nil {
			return nil, noop, err
		}
		return repositories.NewRedisCartRepository(client, env.CartTTL), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown CART_STORAGE %q", env.CartStorage)
	}
}

func buildDependencies(ctx context.Context, env configs.ENV, logger *zap.Logger, db *gorm.DB) (routes.Dependencies, func(), error) {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return routes.Dependencies{}, nil, err
	}
	csrfKey, err := configs.DecodeCSRFKey(env)
	if err != nil {
		return routes.Dependencies{}, nil, err
	}
	storage, cleanup, err := cartStorage(ctx, env, db)
	if err != nil {
		return routes.Dependencies{}, nil, err
	}

	secure := !env.IsDevelopment()
	return routes.Dependencies{
		DB:          db,
		Logger:      logger,
		Metrics:     metrics.New(),
		Sessions:    sessions.NewCookieSessionStore(secure, keys.Pairs()...),
		CartStorage: storage,
		TaxRate:     env.TaxRate,
		CSRFKey:     csrfKey,
		Secure:      secure,
		Indent:      env.IsDevelopment(),
	}, cleanup, nil
}

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight
// requests.
func Serve(ctx context.Context, env configs.ENV, logger *zap.Logger) error {
	db, err := configs.OpenConnection(ctx, env, logger)
	if err != nil {
		return err
	}

	deps, cleanup, err := buildDependencies(ctx, env, logger, db)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("cart_storage", env.CartStorage),
			zap.String("tax_rate", env.TaxRate.String()),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
