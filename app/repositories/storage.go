package repositories

import "context"

// CartStorage is the durable key-value record a cart is serialized into.
// A missing key is reported as found == false, not as an error.
type CartStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func CartKey(cartID string) string {
	return "cart:" + cartID
}
