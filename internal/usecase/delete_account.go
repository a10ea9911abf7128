package usecase

import (
	"context"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// DeleteAccount removes every record of the current owner.
type DeleteAccount struct {
	account domain.AccountRepository
	logger  domain.Logger
}

// NewDeleteAccount creates a new DeleteAccount use case.
func NewDeleteAccount(account domain.AccountRepository, logger domain.Logger) *DeleteAccount {
	return &DeleteAccount{account: account, logger: logger}
}

// Execute deletes the owner's clients, tasks and orders.
func (uc *DeleteAccount) Execute(ctx context.Context) error {
	if err := uc.account.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete account data: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Warn("account", "all data deleted")
	}
	return nil
}
