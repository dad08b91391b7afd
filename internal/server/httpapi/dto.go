package httpapi

import (
	"github.com/haidang99/oceanchat/internal/server/messages"
	"github.com/haidang99/oceanchat/internal/server/users"
)

// Wire-level DTOs. Field names match what the clients expect; the snapshot
// reply fields travel as a nested object but are stored flattened.

type userPayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Avatar    string `json:"avatar"`
	Color     string `json:"color"`
	NameColor string `json:"nameColor,omitempty"`
	Credits   int    `json:"credits"`
	Token     string `json:"token,omitempty"`
}

type replyPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

type messagePayload struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Avatar    string        `json:"avatar,omitempty"`
	Text      string        `json:"text"`
	Timestamp int64         `json:"timestamp"`
	IsAI      bool          `json:"isAi,omitempty"`
	UserColor string        `json:"userColor,omitempty"`
	ReplyTo   *replyPayload `json:"replyTo,omitempty"`
}

func toUserPayload(u *users.User) *userPayload {
	return &userPayload{
		ID:        u.ID,
		Username:  u.Username,
		Avatar:    u.Avatar,
		Color:     u.Color,
		NameColor: u.NameColor,
		Credits:   u.Credits,
		Token:     u.SessionToken,
	}
}

func toMessagePayload(m *messages.Message) *messagePayload {
	p := &messagePayload{
		ID:        m.ID,
		UserID:    m.UserID,
		Username:  m.Username,
		Avatar:    m.Avatar,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		IsAI:      m.IsAI,
		UserColor: m.UserColor,
	}
	if m.ReplyToID != "" {
		p.ReplyTo = &replyPayload{ID: m.ReplyToID, Username: m.ReplyToUsername, Text: m.ReplyToText}
	}
	return p
}

func fromMessagePayload(p *messagePayload) *messages.Message {
	m := &messages.Message{
		ID:        p.ID,
		UserID:    p.UserID,
		Username:  p.Username,
		Avatar:    p.Avatar,
		Text:      p.Text,
		Timestamp: p.Timestamp,
		IsAI:      p.IsAI,
		UserColor: p.UserColor,
	}
	if p.ReplyTo != nil {
		m.ReplyToID = p.ReplyTo.ID
		m.ReplyToUsername = p.ReplyTo.Username
		m.ReplyToText = p.ReplyTo.Text
	}
	return m
}
