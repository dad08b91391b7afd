package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/haidang99/oceanchat/internal/client/ai"
	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/client/session"
	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/logging"
)

// aiContextMessages is how much recent conversation the assistant sees.
const aiContextMessages = 10

// botTrigger in a message text summons the assistant.
const botTrigger = "@gemini"

var errEmptyMessage = errors.New("message is empty")

// Controller drives the interactive chat flows: sending, replying, message
// selection and the assistant round trip. It owns the per-session UI state
// that is not part of the transcript itself.
type Controller struct {
	store     *Store
	session   *session.Store
	notifs    *Notifications
	responder ai.Responder
	logger    logging.Logger

	// seams for tests
	now          func() time.Time
	randDigits   func() string
	aiReplyDelay time.Duration

	mu         sync.Mutex
	replyingTo *models.Message
	selectedID string
	aiThinking bool
	aiWG       sync.WaitGroup
}

func NewController(store *Store, sess *session.Store, notifs *Notifications, responder ai.Responder, logger logging.Logger) *Controller {
	return &Controller{
		store:        store,
		session:      sess,
		notifs:       notifs,
		responder:    responder,
		logger:       logger,
		now:          time.Now,
		randDigits:   func() string { return fmt.Sprintf("%05d", rand.Intn(100000)) },
		aiReplyDelay: time.Second,
	}
}

func (c *Controller) newMessageID() string {
	return strconv.FormatInt(c.now().UnixMilli(), 10) + c.randDigits()
}

// SendMessage runs the full send flow. The sender earns one credit before
// the message even goes out, the message is appended optimistically, and a
// bot mention triggers an assistant reply built from the conversation as it
// was before this message.
func (c *Controller) SendMessage(ctx context.Context, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyMessage
	}

	user := c.session.Current()
	if user == nil {
		return nil, common.ErrorUnauthorized
	}

	// credit for participating, granted regardless of delivery
	earned := *user
	earned.Credits = user.Credits + 1
	if err := c.session.UpdateLocal(ctx, &earned); err != nil {
		return nil, err
	}

	c.mu.Lock()
	var replyTo *models.ReplyInfo
	if c.replyingTo != nil {
		replyTo = &models.ReplyInfo{
			ID:       c.replyingTo.ID,
			Username: c.replyingTo.Username,
			Text:     c.replyingTo.Text,
		}
	}
	c.replyingTo = nil
	c.mu.Unlock()

	userMsg := &models.Message{
		ID:        c.newMessageID(),
		UserID:    user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Text:      text,
		Timestamp: c.now().UnixMilli(),
		UserColor: user.NameColor,
		ReplyTo:   replyTo,
	}

	// assistant context is frozen before the new message joins the transcript
	shouldAiReply := strings.Contains(strings.ToLower(text), botTrigger)
	var conversation []string
	if shouldAiReply {
		for _, m := range c.store.LastMessages(aiContextMessages) {
			conversation = append(conversation, m.Username+": "+m.Text)
		}
	}

	c.store.Append(ctx, userMsg)

	// the round trip and pacing delay run off the caller's goroutine so
	// sending never stalls the REPL
	if shouldAiReply {
		c.setAIThinking(true)
		c.aiWG.Add(1)
		go func() {
			defer c.aiWG.Done()
			c.answerMention(ctx, conversation, userMsg)
		}()
	}

	return userMsg, nil
}

func (c *Controller) answerMention(ctx context.Context, conversation []string, userMsg *models.Message) {
	defer c.setAIThinking(false)

	replyText, err := c.responder.Complete(ctx, conversation, userMsg.Text)
	if err != nil {
		c.logger.Warn(ctx, "assistant request failed", "error", err.Error())
		replyText = ai.FallbackReply
	}
	if replyText == "" {
		replyText = "..."
	}

	time.Sleep(c.aiReplyDelay)

	aiMsg := &models.Message{
		ID:        "ai-" + strconv.FormatInt(c.now().UnixMilli(), 10),
		UserID:    ai.BotUserID,
		Username:  ai.BotUsername,
		Avatar:    ai.BotAvatar,
		Text:      replyText,
		Timestamp: c.now().UnixMilli(),
		IsAI:      true,
		ReplyTo: &models.ReplyInfo{
			ID:       userMsg.ID,
			Username: userMsg.Username,
			Text:     userMsg.Text,
		},
	}

	c.store.Append(ctx, aiMsg)
}

func (c *Controller) setAIThinking(v bool) {
	c.mu.Lock()
	c.aiThinking = v
	c.mu.Unlock()
}

// AIThinking reports whether an assistant reply is in flight.
func (c *Controller) AIThinking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aiThinking
}

// Wait blocks until in-flight assistant replies have finished. Used on
// shutdown and in tests.
func (c *Controller) Wait() {
	c.aiWG.Wait()
}

// ReplyTo arms the reply target for the next sent message.
func (c *Controller) ReplyTo(messageID string) error {
	msg, ok := c.store.Get(messageID)
	if !ok {
		return common.ErrorNotFound
	}
	c.mu.Lock()
	c.replyingTo = msg
	c.mu.Unlock()
	return nil
}

// ClearReply drops the armed reply target.
func (c *Controller) ClearReply() {
	c.mu.Lock()
	c.replyingTo = nil
	c.mu.Unlock()
}

// ReplyingTo returns the armed reply target, or nil.
func (c *Controller) ReplyingTo() *models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replyingTo == nil {
		return nil
	}
	m := *c.replyingTo
	return &m
}

// SelectMessage toggles selection: selecting the already-selected message
// deselects it, selecting another moves the selection there. At most one
// message is selected at a time.
func (c *Controller) SelectMessage(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == messageID {
		c.selectedID = ""
	} else {
		c.selectedID = messageID
	}
}

// SelectedMessageID returns the selected message id, or "".
func (c *Controller) SelectedMessageID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// OpenNotification marks the notification read and jumps to its message:
// the message gets selected and is returned. A message that has since been
// pruned from the transcript yields ErrMessageTooOld.
func (c *Controller) OpenNotification(notif *models.Notification) (*models.Message, error) {
	c.notifs.MarkRead(notif.ID)

	msg, ok := c.store.Get(notif.MessageID)
	if !ok {
		return nil, common.ErrMessageTooOld
	}

	c.mu.Lock()
	c.selectedID = msg.ID
	c.mu.Unlock()

	return msg, nil
}

// Refresh syncs the transcript and re-projects notifications for the
// current user.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.store.FetchLatest(ctx); err != nil {
		return err
	}

	if user := c.session.Current(); user != nil {
		c.notifs.Observe(c.store.Messages(), user.ID, user.Username)
	}
	return nil
}

// StartPolling refreshes on the given interval until the context ends.
func (c *Controller) StartPolling(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Refresh(ctx); err != nil {
					c.logger.Warn(ctx, "refresh failed", "error", err.Error())
				}
			}
		}
	}()
}
