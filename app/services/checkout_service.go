package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/metrics"
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	DiscountCode string `json:"discountCode" validate:"omitempty,max=64"`
	ShippingTier string `json:"shippingTier" validate:"omitempty,max=50"`
}

type Quote struct {
	Items        []models.LineItem          `json:"items"`
	ItemCount    int                        `json:"itemCount"`
	Pricing      models.PricingBreakdown    `json:"pricing"`
	ShippingTier string                     `json:"shippingTier,omitempty"`
	Discount     *models.DiscountValidation `json:"discount,omitempty"`
}

type CheckoutService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepositoryImpl
	discounts   *DiscountService
	shipping    *ShippingService
	taxRate     decimal.Decimal
	logger      *zap.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepositoryImpl,
	discounts *DiscountService,
	shipping *ShippingService,
	taxRate decimal.Decimal,
	logger *zap.Logger,
	m *metrics.Metrics,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		discounts:   discounts,
		shipping:    shipping,
		taxRate:     taxRate,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
	}
}

func (s *CheckoutService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// Quote prices the cart as it stands. A rejected discount code is reported
// in the quote and left out of the pricing; an empty cart still pays for
// a selected shipping tier.
func (s *CheckoutService) Quote(ctx context.Context, store *CartStore, req CheckoutRequest) (*Quote, error) {
	shippingCost, err := s.shipping.Cost(req.ShippingTier)
	if err != nil {
		return nil, err
	}

	var validation *models.DiscountValidation
	if req.DiscountCode != "" {
		result, err := s.discounts.Validate(ctx, req.DiscountCode)
		if err != nil {
			return nil, err
		}
		validation = &result
	}

	var discount *models.Discount
	if validation != nil {
		discount = validation.Discount()
	}

	items := store.Items()
	pricing, err := calc.Calculate(items, discount, shippingCost, s.taxRate)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Items:        items,
		ItemCount:    store.ItemCount(),
		Pricing:      pricing,
		ShippingTier: req.ShippingTier,
		Discount:     validation,
	}, nil
}

// PlaceOrder turns the cart into an order priced by Quote, takes the stock
// and clears the cart. Line items keep the price they were added at.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cartID string, store *CartStore, req CheckoutRequest) (*models.Order, error) {
	if len(store.Items()) == 0 {
		return nil, ErrEmptyCart
	}

	quote, err := s.Quote(ctx, store, req)
	if err != nil {
		return nil, err
	}
	if quote.Discount != nil && !quote.Discount.Valid {
		return nil, fmt.Errorf("%w: %s", ErrDiscountRejected, quote.Discount.Message)
	}

	orderItems := make([]models.OrderItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get product %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: product '%s' has insufficient stock. Available: %d, Requested: %d", ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
		}
		orderItems = append(orderItems, models.NewOrderItem(item))
	}

	now := s.now()
	order := &models.Order{
		CartID:         cartID,
		OrderCode:      fmt.Sprintf("INV-%s-%s", now.Format("20060102"), uuid.New().String()[:8]),
		OrderDate:      now,
		OrderItems:     orderItems,
		Subtotal:       quote.Pricing.Subtotal,
		DiscountAmount: quote.Pricing.DiscountAmount,
		ShippingTier:   req.ShippingTier,
		ShippingCost:   quote.Pricing.ShippingCost,
		TaxRate:        s.taxRate,
		TaxAmount:      quote.Pricing.TaxAmount,
		GrandTotal:     quote.Pricing.Total,
		Status:         models.OrderStatusPending,
	}
	if quote.Discount != nil {
		order.DiscountCode = quote.Discount.Code
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range orderItems {
			if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
				if errors.Is(err, repositories.ErrStockConflict) {
					return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
				}
				return fmt.Errorf("failed to reserve stock: %w", err)
			}
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrderPlaced()
	s.logger.Info("order placed",
		zap.String("order_code", order.OrderCode),
		zap.String("cart_id", cartID),
		zap.String("total", order.GrandTotal.StringFixed(2)),
	)

	// the order exists at this point; a cart that fails to clear is only logged
	if err := store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear cart after checkout", zap.String("order_code", order.OrderCode), zap.Error(err))
	}

	return order, nil
}

func (s *CheckoutService) Order(ctx context.Context, orderCode string) (*models.Order, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderCode)
	}
	return order, nil
}

// OrdersForCart lists the orders placed from one cart session, newest first.
func (s *CheckoutService) OrdersForCart(ctx context.Context, cartID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByCartID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, orderCode string, status int) (*models.Order, error) {
	if models.OrderStatusName(status) == "unknown" {
		return nil, fmt.Errorf("%w: unknown order status %d", ErrInvalidInput, status)
	}

	order, err := s.Order(ctx, orderCode)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status

	s.logger.Info("order status updated",
		zap.String("order_code", order.OrderCode),
		zap.String("status", models.OrderStatusName(status)),
	)
	return order, nil
}
