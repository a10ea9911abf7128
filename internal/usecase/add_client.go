package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// AddClientInput contains the draft to save.
type AddClientInput struct {
	Draft domain.ClientDraft
}

// AddClient saves a client through the creation contract, parking the
// draft in the local outbox when the server cannot be reached.
type AddClient struct {
	creator domain.ClientCreator
	outbox  domain.Outbox
	clock   domain.Clock
	logger  domain.Logger
}

// NewAddClient creates a new AddClient use case.
func NewAddClient(creator domain.ClientCreator, outbox domain.Outbox, clock domain.Clock, logger domain.Logger) *AddClient {
	return &AddClient{creator: creator, outbox: outbox, clock: clock, logger: logger}
}

// Execute returns domain.Synced when the server accepted the client and
// domain.LocalOnly when the draft was queued. Validation and other server
// errors are returned unchanged and nothing is queued.
func (uc *AddClient) Execute(ctx context.Context, in AddClientInput) (domain.SaveResult, error) {
	errs := domain.ValidateDraft(in.Draft)
	if len(errs) > 0 {
		return domain.SaveResult{}, domain.NewValidationError(errs[0])
	}

	client, err := uc.creator.CreateClient(ctx, in.Draft)
	if err == nil {
		return domain.Synced(client), nil
	}
	if !errors.Is(err, domain.ErrUnavailable) || uc.outbox == nil {
		return domain.SaveResult{}, err
	}

	pending := domain.PendingClient{
		ID:       uuid.NewString(),
		QueuedAt: uc.clock.Now(),
		Draft:    in.Draft,
		Reason:   err.Error(),
	}
	if qErr := uc.outbox.Enqueue(pending); qErr != nil {
		return domain.SaveResult{}, fmt.Errorf("queue client locally: %w (server: %v)", qErr, err)
	}
	if uc.logger != nil {
		uc.logger.Warn("client", fmt.Sprintf("queued %s locally: %v", in.Draft.Email, err))
	}
	return domain.LocalOnly(&pending, err.Error()), nil
}
