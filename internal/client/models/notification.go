package models

// Notification types.
const (
	NotificationMention = "mention"
	NotificationReply   = "reply"
)

// Notification is a purely local projection derived from the message stream.
// It is never sent to or persisted on the server.
type Notification struct {
	ID         string
	MessageID  string
	SenderName string
	Type       string
	Text       string
	Timestamp  int64
	IsRead     bool
}
