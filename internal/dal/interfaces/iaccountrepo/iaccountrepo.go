package iaccountrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/account"
)

var ErrAccountNotFound = errors.New("account not found")

// IAccountRepository is an interface for account lookups.
type IAccountRepository interface {
	GetAccount(ctx context.Context, userID int64) (*account.Account, error)
}
