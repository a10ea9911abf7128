package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// AddInteractionInput contains the interaction to record.
type AddInteractionInput struct {
	Date     time.Time // Zero means now
	ClientID string
	Kind     domain.InteractionKind
	Content  string
}

// AddInteractionOutput contains the updated client.
type AddInteractionOutput struct {
	Client      *domain.Client
	Interaction domain.Interaction
}

// AddInteraction appends an entry to a client's contact history.
type AddInteraction struct {
	clients domain.ClientRepository
	clock   domain.Clock
}

// NewAddInteraction creates a new AddInteraction use case.
func NewAddInteraction(clients domain.ClientRepository, clock domain.Clock) *AddInteraction {
	return &AddInteraction{clients: clients, clock: clock}
}

// Execute records the interaction and moves LastContact forward.
func (uc *AddInteraction) Execute(ctx context.Context, in AddInteractionInput) (*AddInteractionOutput, error) {
	if !in.Kind.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("Invalid interaction type %q", in.Kind))
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.NewValidationError("Content is required")
	}

	client, err := uc.clients.Get(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	date := in.Date
	if date.IsZero() {
		date = uc.clock.Now()
	}
	it := domain.Interaction{
		ID:      uuid.NewString(),
		Kind:    in.Kind,
		Content: in.Content,
		Date:    date,
	}
	client.AddInteraction(it)

	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return &AddInteractionOutput{Client: client, Interaction: it}, nil
}
