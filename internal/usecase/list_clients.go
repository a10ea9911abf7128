package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/clientive/clientive/internal/domain"
)

// ListClientsInput contains the optional filters.
type ListClientsInput struct {
	Query  string              // Case-insensitive match on name, email or company
	Tag    string              // Exact tag
	Status domain.ClientStatus // Exact status
}

// ListClientsOutput contains the matching clients.
type ListClientsOutput struct {
	Clients []*domain.Client
}

// ListClients lists clients with optional filters.
type ListClients struct {
	clients domain.ClientRepository
}

// NewListClients creates a new ListClients use case.
func NewListClients(clients domain.ClientRepository) *ListClients {
	return &ListClients{clients: clients}
}

// Execute returns the clients that match every given filter.
func (uc *ListClients) Execute(ctx context.Context, in ListClientsInput) (*ListClientsOutput, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}
	all, err := uc.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(in.Query))
	out := make([]*domain.Client, 0, len(all))
	for _, c := range all {
		if in.Status != "" && c.Status != in.Status {
			continue
		}
		if in.Tag != "" && !slices.Contains(c.Tags, in.Tag) {
			continue
		}
		if q != "" && !matchesQuery(c, q) {
			continue
		}
		out = append(out, c)
	}
	return &ListClientsOutput{Clients: out}, nil
}

func matchesQuery(c *domain.Client, q string) bool {
	for _, s := range []string{c.Name, c.Email, c.Company} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
