package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// UpdateClientInput contains the fields to change. Nil means unchanged.
type UpdateClientInput struct {
	Name         *string
	Email        *string
	Phone        *string
	Company      *string
	Notes        *string
	Status       *domain.ClientStatus
	LastContact  *time.Time
	Tags         *[]string // Replaces the tag list
	Interactions *[]domain.Interaction
	ID           string
	AddTags      []string
}

func (in UpdateClientInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.Phone == nil && in.Company == nil &&
		in.Notes == nil && in.Status == nil && in.LastContact == nil && in.Tags == nil &&
		in.Interactions == nil && len(in.AddTags) == 0
}

// UpdateClientOutput contains the updated client.
type UpdateClientOutput struct {
	Client *domain.Client
}

// UpdateClient applies a partial update to a client.
type UpdateClient struct {
	clients domain.ClientRepository
}

// NewUpdateClient creates a new UpdateClient use case.
func NewUpdateClient(clients domain.ClientRepository) *UpdateClient {
	return &UpdateClient{clients: clients}
}

// Execute updates the client.
func (uc *UpdateClient) Execute(ctx context.Context, in UpdateClientInput) (*UpdateClientOutput, error) {
	if in.empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	client, err := uc.clients.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError(domain.MsgNameRequired)
		}
		client.Name = *in.Name
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return nil, domain.NewValidationError(domain.MsgEmailRequired)
		}
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Company != nil {
		client.Company = *in.Company
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, domain.NewValidationError(domain.MsgStatusInvalid)
		}
		client.Status = *in.Status
	}
	if in.LastContact != nil {
		client.LastContact = *in.LastContact
	}
	if in.Tags != nil {
		client.Tags = []string{}
		for _, t := range *in.Tags {
			client.AddTag(t)
		}
	}
	for _, t := range in.AddTags {
		client.AddTag(t)
	}
	if in.Interactions != nil {
		client.Interactions = append([]domain.Interaction{}, (*in.Interactions)...)
	}

	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return &UpdateClientOutput{Client: client}, nil
}
