package services

import "errors"

var (
	// ErrStorageCorruption describes a cart record that could not be used.
	// Load recovers from it and never returns it.
	ErrStorageCorruption = errors.New("cart storage corrupted")

	ErrInvalidInput        = errors.New("invalid input")
	ErrPersist             = errors.New("cart could not be saved")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrDiscountRejected    = errors.New("discount code rejected")
	ErrUnknownShippingTier = errors.New("unknown shipping tier")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInsufficientStock   = errors.New("insufficient product stock")
)
