package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductID is the join key between a line item and the catalog. Persisted
// records may carry it as a JSON string or a JSON integer; it is always
// written back as a string.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("product id must be a string or an integer, got %s", data)
	}
	*id = ProductID(strconv.FormatInt(n, 10))
	return nil
}

func (id ProductID) String() string {
	return string(id)
}

// MaxLineQuantity caps the quantity of a single line.
const MaxLineQuantity = 9999

type LineItem struct {
	ProductID ProductID       `json:"productId"`
	Name      string          `json:"name,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Valid reports whether the item may exist in persisted state.
func (li LineItem) Valid() bool {
	return li.ProductID != "" && li.Quantity > 0 && li.Quantity <= MaxLineQuantity && !li.UnitPrice.IsNegative()
}

type CartState struct {
	Items []LineItem `json:"items"`
}

func EmptyCartState() CartState {
	return CartState{Items: []LineItem{}}
}

func (c CartState) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c CartState) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Find returns the index of the item with the given product id, or -1.
func (c CartState) Find(productID ProductID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
