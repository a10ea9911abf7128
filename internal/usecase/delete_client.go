package usecase

import (
	"context"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// DeleteClientInput contains the parameters for deleting a client.
type DeleteClientInput struct {
	ID string
}

// DeleteClient removes a client.
type DeleteClient struct {
	clients domain.ClientRepository
	logger  domain.Logger
}

// NewDeleteClient creates a new DeleteClient use case.
func NewDeleteClient(clients domain.ClientRepository, logger domain.Logger) *DeleteClient {
	return &DeleteClient{clients: clients, logger: logger}
}

// Execute deletes the client. Its tasks and orders are kept and will show
// the unknown-client fallback.
func (uc *DeleteClient) Execute(ctx context.Context, in DeleteClientInput) error {
	if err := uc.clients.Delete(ctx, in.ID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("client", "deleted "+in.ID)
	}
	return nil
}
