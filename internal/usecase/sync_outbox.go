package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// SyncOutboxInput contains the parameters for replaying the outbox.
type SyncOutboxInput struct{}

// SyncFailure is a pending draft the server rejected.
type SyncFailure struct {
	Pending domain.PendingClient
	Err     error
}

// SyncOutboxOutput summarizes one replay.
type SyncOutboxOutput struct {
	Synced    []*domain.Client
	Failures  []SyncFailure
	Remaining int  // Entries still queued afterwards
	Offline   bool // The server was unreachable; replay stopped early
}

// SyncOutbox replays locally queued drafts against the creation contract.
type SyncOutbox struct {
	creator domain.ClientCreator
	outbox  domain.Outbox
	logger  domain.Logger
}

// NewSyncOutbox creates a new SyncOutbox use case.
func NewSyncOutbox(creator domain.ClientCreator, outbox domain.Outbox, logger domain.Logger) *SyncOutbox {
	return &SyncOutbox{creator: creator, outbox: outbox, logger: logger}
}

// Execute submits queued drafts oldest first. Accepted drafts leave the
// outbox. A rejected draft stays queued with its attempt count bumped.
// Replay stops at the first transport failure.
func (uc *SyncOutbox) Execute(ctx context.Context, _ SyncOutboxInput) (*SyncOutboxOutput, error) {
	pending, err := uc.outbox.List()
	if err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}

	out := &SyncOutboxOutput{}
	for _, p := range pending {
		if ctx.Err() != nil {
			break
		}
		client, err := uc.creator.CreateClient(ctx, p.Draft)
		if err == nil {
			if err := uc.outbox.Remove(p.ID); err != nil {
				return nil, fmt.Errorf("remove %s from outbox: %w", p.ID, err)
			}
			out.Synced = append(out.Synced, client)
			continue
		}

		p.Attempts++
		p.Reason = err.Error()
		if uErr := uc.outbox.Update(p); uErr != nil {
			return nil, fmt.Errorf("update outbox entry %s: %w", p.ID, uErr)
		}
		if errors.Is(err, domain.ErrUnavailable) {
			out.Offline = true
			break
		}
		out.Failures = append(out.Failures, SyncFailure{Pending: p, Err: err})
	}

	out.Remaining = len(pending) - len(out.Synced)
	if uc.logger != nil {
		uc.logger.Info("sync", fmt.Sprintf("synced %d, remaining %d, offline=%t", len(out.Synced), out.Remaining, out.Offline))
	}
	return out, nil
}
