package chat

import (
	"strings"
	"sync"

	"github.com/haidang99/oceanchat/internal/client/models"
)

// NotificationLimit caps how many notifications are retained, newest first.
const NotificationLimit = 50

// Notifications projects mention and reply notifications out of the message
// stream. Everything here is local; nothing is sent to the server.
type Notifications struct {
	mu     sync.Mutex
	items  []models.Notification
	unread int
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

// Observe scans the transcript for messages addressed to the user: a reply
// to one of their messages, or a case-insensitive @username mention in the
// text. Reply wins when both apply. Own messages never notify, and a message
// already represented in the list is skipped. Dedup is keyed on the current
// list only, so a mention dropped by ClearAll or trimmed past the cap
// notifies again the next time it is scanned. New notifications are
// prepended newest first and the list is trimmed to NotificationLimit.
func (n *Notifications) Observe(msgs []models.Message, userID string, username string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	nameTag := "@" + strings.ToLower(username)

	seen := make(map[string]bool, len(n.items))
	for _, item := range n.items {
		seen[item.MessageID] = true
	}

	var fresh []models.Notification
	for _, msg := range msgs {
		if msg.UserID == userID {
			continue
		}
		if seen[msg.ID] {
			continue
		}

		isMention := strings.Contains(strings.ToLower(msg.Text), nameTag)
		isReply := msg.ReplyTo != nil && msg.ReplyTo.Username == username
		if !isMention && !isReply {
			continue
		}

		kind := models.NotificationMention
		if isReply {
			kind = models.NotificationReply
		}

		seen[msg.ID] = true
		fresh = append(fresh, models.Notification{
			ID:         "notif-" + msg.ID,
			MessageID:  msg.ID,
			SenderName: msg.Username,
			Type:       kind,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
		})
	}

	if len(fresh) == 0 {
		return
	}

	// newest first
	for i, j := 0, len(fresh)-1; i < j; i, j = i+1, j-1 {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	}

	n.items = append(fresh, n.items...)
	if len(n.items) > NotificationLimit {
		n.items = n.items[:NotificationLimit]
	}
	n.unread += len(fresh)
}

// List returns the notifications, newest first.
func (n *Notifications) List() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.items...)
}

// Unread returns the unread counter.
func (n *Notifications) Unread() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.unread
}

// MarkRead marks one notification as read and decrements the unread
// counter. The decrement applies even when the entry was already read,
// clamped at zero.
func (n *Notifications) MarkRead(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].IsRead = true
			break
		}
	}
	if n.unread > 0 {
		n.unread--
	}
}

// ClearAll drops every notification and resets the unread counter. Messages
// still in the transcript become eligible to notify again.
func (n *Notifications) ClearAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
	n.unread = 0
}
