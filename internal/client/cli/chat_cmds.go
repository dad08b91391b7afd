package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/common"
)

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// List prints the transcript. The selected message additionally shows its id
// and full timestamp, mirroring the tap-to-inspect behavior.
func (a *App) List(ctx context.Context) error {
	msgs := a.msgs.Messages()
	if len(msgs) == 0 {
		printlnFn("No messages yet. Say hi!")
		return nil
	}

	selected := a.chat.SelectedMessageID()
	for _, m := range msgs {
		var b strings.Builder

		if m.ReplyTo != nil {
			fmt.Fprintf(&b, "  ↪ %s: %s\n", m.ReplyTo.Username, truncate(m.ReplyTo.Text, 40))
		}

		name := m.Username
		if m.IsAI {
			name += " [AI]"
		}
		fmt.Fprintf(&b, "[%s] %s: %s", formatTimestamp(m.Timestamp), name, m.Text)

		if m.ID == selected {
			fmt.Fprintf(&b, "\n    id=%s sent=%s", m.ID, time.UnixMilli(m.Timestamp).Format(time.RFC3339))
		}

		printlnFn(b.String())
	}

	if a.chat.AIThinking() {
		printlnFn("Gemini AI is thinking...")
	}
	return nil
}

// Send posts a message. With no arguments it prompts for the text.
func (a *App) Send(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		text, err = GetSimpleText(a.reader, "Message", os.Stdout)
		if err != nil {
			return err
		}
	}

	if target := a.chat.ReplyingTo(); target != nil {
		printlnFn("Replying to " + target.Username + ": " + truncate(target.Text, 40))
	}

	if _, err := a.chat.SendMessage(ctx, text); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			printlnFn("Log in before chatting.")
		}
		return err
	}

	if a.msgs.Offline() {
		printlnFn("Message saved locally (offline mode).")
	}
	return nil
}

// Reply arms a reply target for the next send.
func (a *App) Reply(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: reply <message-id>")
		return nil
	}

	if err := a.chat.ReplyTo(args[0]); err != nil {
		printlnFn("No such message: " + args[0])
		return err
	}

	target := a.chat.ReplyingTo()
	printlnFn("Replying to " + target.Username + ". Your next message will reference it.")
	return nil
}

// Select toggles the inspect state of one message.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: select <message-id>")
		return nil
	}
	a.chat.SelectMessage(args[0])
	return nil
}

// Notifications prints the notification list, newest first.
func (a *App) Notifications(ctx context.Context) error {
	items := a.notifs.List()
	if len(items) == 0 {
		printlnFn("No notifications.")
		return nil
	}

	for _, n := range items {
		marker := "•"
		if n.IsRead {
			marker = " "
		}
		kind := "mentioned you"
		if n.Type == models.NotificationReply {
			kind = "replied to you"
		}
		printlnFn(fmt.Sprintf("%s %s %s %s: %s  (id=%s)",
			marker, formatTimestamp(n.Timestamp), n.SenderName, kind, truncate(n.Text, 50), n.ID))
	}
	return nil
}

// Read opens one notification and jumps to its message.
func (a *App) Read(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: read <notification-id>")
		return nil
	}

	items := a.notifs.List()
	var found *models.Notification
	for i := range items {
		if items[i].ID == args[0] {
			found = &items[i]
			break
		}
	}
	if found == nil {
		printlnFn("No such notification: " + args[0])
		return common.ErrorNotFound
	}

	msg, err := a.chat.OpenNotification(found)
	if err != nil {
		if errors.Is(err, common.ErrMessageTooOld) {
			printlnFn("That message is too old and no longer available.")
		}
		return err
	}

	printlnFn(fmt.Sprintf("[%s] %s: %s", formatTimestamp(msg.Timestamp), msg.Username, msg.Text))
	return nil
}

// ClearNotifications empties the notification list.
func (a *App) ClearNotifications(ctx context.Context) error {
	a.notifs.ClearAll()
	printlnFn("Notifications cleared.")
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
