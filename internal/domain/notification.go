package domain

type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
	DeliveryStatusBounced DeliveryStatus = "bounced"
	DeliveryStatusSkipped DeliveryStatus = "skipped"
)

// EmailNotification is the append-only delivery log: one row per send
// attempt, success or failure.
type EmailNotification struct {
	ID           int32          `json:"id"`
	UserID       *int32         `json:"user_id,omitempty"`
	ToEmail      string         `json:"to_email"`
	Subject      string         `json:"subject"`
	TemplateName string         `json:"template_name"`
	Status       DeliveryStatus `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	SentOn       *string        `json:"sent_on,omitempty"`
	CreatedOn    string         `json:"created_on"`
}

// NotificationPreference gates one notification type for one user. Absence
// of a row means enabled (default-allow).
type NotificationPreference struct {
	UserID           int32  `json:"user_id"`
	NotificationType string `json:"notification_type"`
	Enabled          bool   `json:"enabled"`
}

type DeliveryStats struct {
	TodaySent   int32 `json:"today_sent"`
	TodayFailed int32 `json:"today_failed"`
	TotalSent   int64 `json:"total_sent"`
	TotalFailed int64 `json:"total_failed"`
	LastSentOn  string `json:"last_sent_on,omitempty"`
}
