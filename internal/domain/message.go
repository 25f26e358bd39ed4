package domain

type MessageType string

const (
	MessageTypeDirect      MessageType = "direct"
	MessageTypeApplication MessageType = "application"
	MessageTypeInterview   MessageType = "interview"
	MessageTypeSystem      MessageType = "system"
)

type MessagePriority string

const (
	MessagePriorityLow    MessagePriority = "low"
	MessagePriorityNormal MessagePriority = "normal"
	MessagePriorityHigh   MessagePriority = "high"
	MessagePriorityUrgent MessagePriority = "urgent"
)

type Message struct {
	ID                   int32           `json:"id"`
	SenderID             int32           `json:"sender_id"`
	RecipientID          int32           `json:"recipient_id"`
	Subject              string          `json:"subject"`
	Content              string          `json:"content"`
	Type                 MessageType     `json:"message_type"`
	Priority             MessagePriority `json:"priority"`
	RelatedJobID         *int32          `json:"related_job_id,omitempty"`
	RelatedApplicationID *int32          `json:"related_application_id,omitempty"`
	IsRead               bool            `json:"is_read"`
	ReadOn               *string         `json:"read_on,omitempty"`
	CreatedOn            string          `json:"created_on"`
}

// Conversation aggregates one messaging partner's thread for the inbox view.
type Conversation struct {
	PartnerID           int32    `json:"partner_id"`
	PartnerName         string   `json:"partner_name"`
	PartnerRole         UserRole `json:"partner_role"`
	PartnerOrganization string   `json:"partner_organization,omitempty"`
	LatestMessage       Message  `json:"latest_message"`
	UnreadCount         int32    `json:"unread_count"`
}
