package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner is the unit-of-work boundary. Services open one transaction per logical
// operation and thread the handle through every repository call inside it, so
// ownership checks and the writes they guard can never be split across transactions.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
