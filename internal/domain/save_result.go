package domain

// SaveTier reports where a mutation landed.
type SaveTier int

const (
	// TierSynced means the server accepted the record.
	TierSynced SaveTier = iota
	// TierLocalOnly means the server could not be reached and the record
	// was kept locally for a later sync.
	TierLocalOnly
)

// String returns the tier name.
func (t SaveTier) String() string {
	if t == TierLocalOnly {
		return "local-only"
	}
	return "synced"
}

// SaveResult is the outcome of a client save. Exactly one of Client
// (synced) or Pending (local-only) is set.
// Fields are ordered to minimize memory padding.
type SaveResult struct {
	Client  *Client
	Pending *PendingClient
	Reason  string // why the record is local-only
	Tier    SaveTier
}

// Synced wraps a record the server accepted.
func Synced(c *Client) SaveResult {
	return SaveResult{Tier: TierSynced, Client: c}
}

// LocalOnly wraps a draft parked in the local outbox.
func LocalOnly(p *PendingClient, reason string) SaveResult {
	return SaveResult{Tier: TierLocalOnly, Pending: p, Reason: reason}
}

// IsSynced reports whether the server accepted the record.
func (r SaveResult) IsSynced() bool {
	return r.Tier == TierSynced
}
