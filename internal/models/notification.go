// internal/models/notification.go
package models

// Notification priorities, set by the process that requests the send.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)
