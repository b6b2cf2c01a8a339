// internal/workers/notification/send-notification/models.go
package sendnotification

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "user" or "profile"
	NotificationType string                 `json:"notificationType"`
	OpportunityID    string                 `json:"opportunityId,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"notificationStatus"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"`             // ISO 8601
}

// Notification types
const (
	TypeNewMatch         = "new_match"
	TypeDeadlineReminder = "deadline_reminder"
	TypeOutcomeRecorded  = "outcome_recorded"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeUser    = "user"
	RecipientTypeProfile = "profile"
)
