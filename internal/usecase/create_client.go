package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// MsgNameEmailRequired is returned when a creation payload lacks name or email.
const MsgNameEmailRequired = "Name and email are required"

// Ensure CreateClient implements domain.ClientCreator.
var _ domain.ClientCreator = (*CreateClient)(nil)

// CreateClientInput contains the parameters for creating a client.
type CreateClientInput struct {
	LastContact  time.Time // Zero means now
	Interactions []domain.Interaction
	Draft        domain.ClientDraft
}

// CreateClientOutput contains the created client.
type CreateClientOutput struct {
	Client *domain.Client
}

// CreateClient is the client creation contract: it validates a draft,
// applies defaults and assigns an ID.
type CreateClient struct {
	clients domain.ClientRepository
	clock   domain.Clock
	logger  domain.Logger
}

// NewCreateClient creates a new CreateClient use case.
func NewCreateClient(clients domain.ClientRepository, clock domain.Clock, logger domain.Logger) *CreateClient {
	return &CreateClient{clients: clients, clock: clock, logger: logger}
}

// Execute creates the client. Name and email are required; status defaults
// to prospect and must otherwise be a known value.
func (uc *CreateClient) Execute(ctx context.Context, in CreateClientInput) (*CreateClientOutput, error) {
	d := in.Draft
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Email) == "" {
		return nil, domain.NewValidationError(MsgNameEmailRequired)
	}
	if d.Status != "" && !d.Status.IsValid() {
		return nil, domain.NewValidationError(domain.MsgStatusInvalid)
	}

	now := uc.clock.Now()
	client := d.NewClient(uuid.NewString(), now)
	if !in.LastContact.IsZero() {
		client.LastContact = in.LastContact
	}
	for _, it := range in.Interactions {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		client.Interactions = append(client.Interactions, it)
	}

	if err := uc.clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("client", fmt.Sprintf("created %s (%s)", client.ID, client.Email))
	}
	return &CreateClientOutput{Client: client}, nil
}

// CreateClient implements domain.ClientCreator.
func (uc *CreateClient) CreateClient(ctx context.Context, draft domain.ClientDraft) (*domain.Client, error) {
	out, err := uc.Execute(ctx, CreateClientInput{Draft: draft})
	if err != nil {
		return nil, err
	}
	return out.Client, nil
}
