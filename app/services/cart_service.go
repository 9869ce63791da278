package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Rakhulsr/go-storefront-cart/app/metrics"
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartStore owns the line items of one cart and keeps them in step with a
// single durable record. It is not safe for concurrent use; create one per
// request or session.
type CartStore struct {
	storage repositories.CartStorage
	key     string
	logger  *zap.Logger
	metrics *metrics.Metrics

	items []models.LineItem
}

func NewCartStore(storage repositories.CartStorage, key string, logger *zap.Logger, m *metrics.Metrics) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{
		storage: storage,
		key:     key,
		logger:  logger.With(zap.String("cart_key", key)),
		metrics: m,
		items:   models.EmptyCartState().Items,
	}
}

// Load replaces the in-memory state with the durable record. Records that
// are missing, unparseable or not a JSON array reset the cart to empty and
// are overwritten; invalid or duplicate entries are dropped or merged and
// the cleaned record is written back. Load never fails.
func (s *CartStore) Load(ctx context.Context) models.CartState {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.reset(ctx, "read_failed", err)
		return s.State()
	}
	if !found {
		s.reset(ctx, "absent", nil)
		return s.State()
	}

	items, dirty, err := decodeCart(raw)
	if err != nil {
		s.reset(ctx, "corrupt", err)
		return s.State()
	}

	s.items = items
	if dirty {
		s.logger.Warn("dropped invalid cart entries", zap.Int("kept", len(items)))
		s.metrics.StorageRecovered("sanitized")
		if err := s.persist(ctx); err != nil {
			s.logger.Error("failed to rewrite sanitized cart", zap.Error(err))
		}
	}
	return s.State()
}

// Peek reads the durable record into memory without repairing it, so an
// absent or dirty record is left as it is. Unlike Load it reports read
// failures and corrupt records.
func (s *CartStore) Peek(ctx context.Context) (models.CartState, error) {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return models.EmptyCartState(), fmt.Errorf("failed to read cart: %w", err)
	}
	if !found {
		s.items = models.EmptyCartState().Items
		return s.State(), nil
	}

	items, _, err := decodeCart(raw)
	if err != nil {
		return models.EmptyCartState(), err
	}
	s.items = items
	return s.State(), nil
}

func (s *CartStore) reset(ctx context.Context, reason string, cause error) {
	s.items = models.EmptyCartState().Items
	if reason != "absent" {
		s.logger.Warn("resetting cart storage", zap.String("reason", reason), zap.Error(cause))
		s.metrics.StorageRecovered(reason)
	}
	if err := s.persist(ctx); err != nil {
		s.logger.Error("failed to write empty cart", zap.Error(err))
	}
}

// Add merges quantity into an existing line for the same product or
// appends a new line with the product's current price.
func (s *CartStore) Add(ctx context.Context, product models.Product, quantity int) error {
	if product.ID == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if quantity < 1 || quantity > models.MaxLineQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d, got %d", ErrInvalidInput, models.MaxLineQuantity, quantity)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	state := s.State()
	if i := state.Find(models.ProductID(product.ID)); i >= 0 {
		if s.items[i].Quantity > models.MaxLineQuantity-quantity {
			return fmt.Errorf("%w: at most %d of one product per cart", ErrInvalidInput, models.MaxLineQuantity)
		}
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, product.LineItem(quantity))
	}

	s.metrics.CartMutation("add")
	return s.persist(ctx)
}

// Remove drops the line for productID. Removing an absent product is a
// no-op.
func (s *CartStore) Remove(ctx context.Context, productID models.ProductID) error {
	i := s.State().Find(productID)
	if i < 0 {
		return nil
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.metrics.CartMutation("remove")
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity in place. Zero or less removes the line.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID models.ProductID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	if quantity > models.MaxLineQuantity {
		return fmt.Errorf("%w: quantity must be at most %d, got %d", ErrInvalidInput, models.MaxLineQuantity, quantity)
	}

	i := s.State().Find(productID)
	if i < 0 {
		return nil
	}

	s.items[i].Quantity = quantity
	s.metrics.CartMutation("update")
	return s.persist(ctx)
}

// Clear empties the cart and deletes the durable record.
func (s *CartStore) Clear(ctx context.Context) error {
	s.items = models.EmptyCartState().Items
	s.metrics.CartMutation("clear")

	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.metrics.PersistFailed()
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Items returns a copy of the line items in insertion order.
func (s *CartStore) Items() []models.LineItem {
	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartStore) State() models.CartState {
	return models.CartState{Items: s.items}
}

func (s *CartStore) ItemCount() int {
	return s.State().ItemCount()
}

func (s *CartStore) Subtotal() decimal.Decimal {
	return s.State().Subtotal()
}

// persist writes the current items. In-memory state is kept whether or not
// the write succeeds.
func (s *CartStore) persist(ctx context.Context) error {
	raw, err := encodeCart(s.items)
	if err != nil {
		s.metrics.PersistFailed()
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		s.metrics.PersistFailed()
		s.logger.Error("failed to persist cart", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func encodeCart(items []models.LineItem) (string, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeCart parses a durable record. A record that is not a JSON array is
// an ErrStorageCorruption. Entries that do not decode into a valid line item
// are dropped and repeated product ids are merged; dirty reports either.
func decodeCart(raw string) (items []models.LineItem, dirty bool, err error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false, fmt.Errorf("%w: record is not an array", ErrStorageCorruption)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorageCorruption, err)
	}

	items = make([]models.LineItem, 0, len(entries))
	for _, entry := range entries {
		var item models.LineItem
		if err := json.Unmarshal(entry, &item); err != nil || !item.Valid() {
			dirty = true
			continue
		}

		if i := (models.CartState{Items: items}).Find(item.ProductID); i >= 0 {
			items[i].Quantity = min(items[i].Quantity+item.Quantity, models.MaxLineQuantity)
			dirty = true
			continue
		}
		items = append(items, item)
	}
	return items, dirty, nil
}
