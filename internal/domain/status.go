package domain

import "strings"

// ClientStatus represents where a client stands in the sales relationship.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientProspect ClientStatus = "prospect" // Default for new clients
	ClientLead     ClientStatus = "lead"
	ClientVIP      ClientStatus = "vip"
)

// AllClientStatuses returns all valid client status values in display order.
func AllClientStatuses() []ClientStatus {
	return []ClientStatus{ClientActive, ClientInactive, ClientProspect, ClientLead, ClientVIP}
}

// IsValid returns true if the status is a known value.
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientProspect, ClientLead, ClientVIP:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s ClientStatus) Display() string {
	switch s {
	case ClientActive:
		return "Active"
	case ClientInactive:
		return "Inactive"
	case ClientProspect:
		return "Prospect"
	case ClientLead:
		return "Lead"
	case ClientVIP:
		return "VIP"
	default:
		return string(s)
	}
}

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending" // Default for new orders
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// IsValid returns true if the status is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// TaskType categorizes a follow-up task.
type TaskType string

const (
	TaskCall     TaskType = "call"
	TaskEmail    TaskType = "email"
	TaskMeeting  TaskType = "meeting"
	TaskFollowUp TaskType = "follow-up" // Default for new tasks
)

// IsValid returns true if the type is a known value.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskCall, TaskEmail, TaskMeeting, TaskFollowUp:
		return true
	default:
		return false
	}
}

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium" // Default for new tasks
	PriorityHigh   Priority = "high"
)

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// InteractionKind categorizes an entry in a client's contact history.
type InteractionKind string

const (
	InteractionCall    InteractionKind = "call"
	InteractionEmail   InteractionKind = "email"
	InteractionMeeting InteractionKind = "meeting"
	InteractionNote    InteractionKind = "note"
)

// IsValid returns true if the kind is a known value.
func (k InteractionKind) IsValid() bool {
	switch k {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote:
		return true
	default:
		return false
	}
}

// clientStatusList renders the status set for validation messages:
// "active, inactive, prospect, lead, or vip".
func clientStatusList() string {
	all := AllClientStatuses()
	parts := make([]string, len(all))
	for i, s := range all {
		parts[i] = string(s)
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
}
