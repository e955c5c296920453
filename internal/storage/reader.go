package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budgetforge/internal/storage/account"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
	"github.com/carson-networks/budgetforge/internal/storage/token"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
	"github.com/carson-networks/budgetforge/internal/storage/user"
)

type Reader struct {
	Users        user.IReader
	Tokens       token.IReader
	Accounts     account.IReader
	Transactions transaction.IReader
	Bills        bill.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:        user.NewReader(exec),
		Tokens:       token.NewReader(exec),
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Bills:        bill.NewReader(exec),
	}
}
