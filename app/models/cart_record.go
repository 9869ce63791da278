package models

import "time"

// CartRecord is the relational form of the durable cart record: the
// serialized line items stored verbatim under their storage key.
type CartRecord struct {
	Key       string `gorm:"size:128;primaryKey"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
