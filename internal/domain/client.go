package domain

import (
	"slices"
	"strings"
	"time"
)

// Client is a customer record.
// Fields are ordered to minimize memory padding.
type Client struct {
	LastContact  time.Time     `json:"lastContact" yaml:"lastContact"`
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Email        string        `json:"email" yaml:"email"`
	Phone        string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	Company      string        `json:"company,omitempty" yaml:"company,omitempty"`
	Notes        string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status       ClientStatus  `json:"status" yaml:"status"`
	Tags         []string      `json:"tags" yaml:"tags"`
	Interactions []Interaction `json:"interactions" yaml:"interactions"`
}

// Interaction is one entry in a client's contact history.
type Interaction struct {
	Date    time.Time       `json:"date" yaml:"date"`
	ID      string          `json:"id" yaml:"id"`
	Kind    InteractionKind `json:"type" yaml:"type"`
	Content string          `json:"content" yaml:"content"`
}

// AddTag appends a tag unless it is empty or already present.
// Returns true if the tag was added.
func (c *Client) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(c.Tags, tag) {
		return false
	}
	c.Tags = append(c.Tags, tag)
	return true
}

// AddInteraction records an interaction and moves LastContact forward to its date.
func (c *Client) AddInteraction(in Interaction) {
	c.Interactions = append(c.Interactions, in)
	if in.Date.After(c.LastContact) {
		c.LastContact = in.Date
	}
}

// FindClient returns the first client with the given ID.
func FindClient(clients []*Client, id string) (*Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// ClientDraft is the partial client accepted by the creation contract.
// Zero values mean "not supplied"; defaults are applied on creation.
type ClientDraft struct {
	Name    string       `json:"name" yaml:"name"`
	Email   string       `json:"email" yaml:"email"`
	Phone   string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Company string       `json:"company,omitempty" yaml:"company,omitempty"`
	Notes   string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status  ClientStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Tags    []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NewClient materializes a draft into a client, applying creation defaults.
func (d ClientDraft) NewClient(id string, now time.Time) *Client {
	c := &Client{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Company:      d.Company,
		Notes:        d.Notes,
		Status:       d.Status,
		LastContact:  now,
		Tags:         []string{},
		Interactions: []Interaction{},
	}
	if c.Status == "" {
		c.Status = ClientProspect
	}
	for _, t := range d.Tags {
		c.AddTag(t)
	}
	return c
}
