package domain

import "time"

// Order is a purchase made by a client.
// Fields are ordered to minimize memory padding.
type Order struct {
	Date        time.Time   `json:"date" yaml:"date"`
	ID          string      `json:"id" yaml:"id"`
	ClientID    string      `json:"clientId" yaml:"clientId"`
	Product     string      `json:"product" yaml:"product"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Status      OrderStatus `json:"status" yaml:"status"`
	Amount      float64     `json:"amount" yaml:"amount"`
}
