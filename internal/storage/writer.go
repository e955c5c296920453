package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budgetforge/internal/storage/account"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
	"github.com/carson-networks/budgetforge/internal/storage/token"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
	"github.com/carson-networks/budgetforge/internal/storage/user"
)

// Writer groups the table writers of one database transaction.
type Writer struct {
	tx          bob.Tx
	User        user.IWriter
	Token       token.IWriter
	Account     account.IWriter
	Transaction transaction.IWriter
	Bill        bill.IWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:          tx,
		User:        user.NewWriter(tx),
		Token:       token.NewWriter(tx),
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Bill:        bill.NewWriter(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
