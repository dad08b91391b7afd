package models

// ReplyInfo is a frozen copy of the message being replied to, captured at
// send time. It deliberately does not track the original message, which may
// later be pruned from the server log.
type ReplyInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// Message is one transcript entry. Messages are immutable once sent.
//
// UserColor is the sender's name color at the moment of sending, not a live
// reference to their current color. Timestamp is epoch milliseconds and
// defines the display order.
type Message struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Username  string     `json:"username"`
	Avatar    string     `json:"avatar,omitempty"`
	Text      string     `json:"text"`
	Timestamp int64      `json:"timestamp"`
	IsAI      bool       `json:"isAi,omitempty"`
	UserColor string     `json:"userColor,omitempty"`
	ReplyTo   *ReplyInfo `json:"replyTo,omitempty"`
}
