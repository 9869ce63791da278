package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Rakhulsr/go-storefront-cart/app/configs"
	"github.com/Rakhulsr/go-storefront-cart/app/db/seeders"
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/models/migrations"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/Rakhulsr/go-storefront-cart/app/routes"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/format"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewCommand(env configs.ENV, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "Storefront cart and checkout API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, env, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					return Serve(ctx, env, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(ctx, env, logger)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					logger.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Insert demo products and discount codes",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(ctx, env, logger)
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					logger.Info("seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateSessionKeys(c.Root().Writer)
				},
			},
			{
				Name:  "order-status",
				Usage: "Move an order to pending, processing, shipped, completed or cancelled",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Usage: "order code", Required: true},
					&cli.StringFlag{Name: "status", Usage: "new status name", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(ctx, env, logger)
					if err != nil {
						return err
					}
					return runOrderStatus(ctx, c.Root().Writer, newCheckoutService(db, env, logger), c.String("code"), c.String("status"))
				},
			},
			{
				Name:  "quote",
				Usage: "Price a stored cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cart", Usage: "cart id", Required: true},
					&cli.StringFlag{Name: "discount", Usage: "discount code to apply"},
					&cli.StringFlag{Name: "tier", Usage: "shipping tier code"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if env.CartStorage == configs.CartStorageSession {
						return fmt.Errorf("carts are kept in browser cookies with CART_STORAGE=%s; use mysql or redis", env.CartStorage)
					}

					db, err := configs.OpenConnection(ctx, env, logger)
					if err != nil {
						return err
					}
					storage, cleanup, err := cartStorage(ctx, env, db)
					if err != nil {
						return err
					}
					defer cleanup()

					req := services.CheckoutRequest{DiscountCode: c.String("discount"), ShippingTier: c.String("tier")}
					return runQuote(ctx, c.Root().Writer, db, storage, env, c.String("cart"), req)
				},
			},
		},
	}
}

func newCheckoutService(db *gorm.DB, env configs.ENV, logger *zap.Logger) *services.CheckoutService {
	discounts := services.NewDiscountService(repositories.NewDiscountRepository(db), routes.NewValidator())
	return services.NewCheckoutService(db,
		repositories.NewOrderRepository(db),
		repositories.NewProductRepository(db),
		discounts,
		services.NewShippingService(services.DefaultShippingTiers()),
		env.TaxRate, logger, nil)
}

func runOrderStatus(ctx context.Context, w io.Writer, checkout *services.CheckoutService, orderCode, statusName string) error {
	status, ok := models.ParseOrderStatus(statusName)
	if !ok {
		return fmt.Errorf("%w: unknown order status %q", services.ErrInvalidInput, statusName)
	}
	order, err := checkout.UpdateOrderStatus(ctx, orderCode, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "order %s is now %s\n", order.OrderCode, models.OrderStatusName(order.Status))
	return nil
}

func runQuote(ctx context.Context, w io.Writer, db *gorm.DB, storage repositories.CartStorage, env configs.ENV, cartID string, req services.CheckoutRequest) error {
	checkout := newCheckoutService(db, env, nil)

	// a quote never writes the cart record
	store := services.NewCartStore(storage, repositories.CartKey(cartID), nil, nil)
	if _, err := store.Peek(ctx); err != nil {
		return err
	}

	quote, err := checkout.Quote(ctx, store, req)
	if err != nil {
		return err
	}

	money := format.NewMoney(env.CurrencySymbol)
	for _, item := range quote.Items {
		fmt.Fprintf(w, "%-30s %3d x %10s = %10s\n", item.Name, item.Quantity, money.Format(item.UnitPrice), money.Format(item.LineTotal()))
	}
	if quote.Discount != nil {
		fmt.Fprintf(w, "discount %s: %s\n", quote.Discount.Code, quote.Discount.Message)
	}
	p := quote.Pricing
	fmt.Fprintf(w, "%-20s %12s\n", "subtotal", money.Format(p.Subtotal))
	fmt.Fprintf(w, "%-20s %12s\n", "discount", money.Format(p.DiscountAmount.Neg()))
	fmt.Fprintf(w, "%-20s %12s\n", "shipping", money.Format(p.ShippingCost))
	fmt.Fprintf(w, "%-20s %12s\n", "tax", money.Format(p.TaxAmount))
	fmt.Fprintf(w, "%-20s %12s\n", "total", money.Format(p.Total))
	return nil
}

func RunCli(ctx context.Context, env configs.ENV, logger *zap.Logger) error {
	cmd := NewCommand(env, logger)
	cmd.Writer = os.Stdout
	return cmd.Run(ctx, os.Args)
}
