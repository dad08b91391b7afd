// Package ai generates assistant replies for messages that mention the bot.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// Bot identity constants used for assistant-authored messages.
const (
	BotUserID   = "gemini-ai"
	BotUsername = "Gemini AI"
	BotAvatar   = "https://avatar.vercel.sh/gemini"
)

// FallbackReply is used whenever the model cannot be reached, so a mention
// always gets an answer.
const FallbackReply = "Hic, có chút lỗi kỹ thuật rồi bạn ơi! 😅"

const model = "gemini-3-flash-preview"

// Responder produces a reply given the recent conversation and the message
// that triggered it.
type Responder interface {
	Complete(ctx context.Context, conversation []string, trigger string) (string, error)
}

// GeminiResponder calls the Gemini API. A nil client (no API key configured)
// degrades to the fallback reply.
type GeminiResponder struct {
	client *genai.Client
}

// NewGeminiResponder reads the API key from GEMINI_API_KEY. With no key set
// the responder still works, answering with FallbackReply only.
func NewGeminiResponder(ctx context.Context) *GeminiResponder {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return &GeminiResponder{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return &GeminiResponder{}
	}

	return &GeminiResponder{client: client}
}

func buildPrompt(conversation []string, trigger string) string {
	return fmt.Sprintf(
		"You are a helpful and funny chat bot in a group chat.\n"+
			"Context of recent chat: %s\n"+
			"User said: %q\n"+
			"Keep your response short (under 2 sentences), engaging, and friendly.",
		strings.Join(conversation, "\n"), trigger)
}

func (r *GeminiResponder) Complete(ctx context.Context, conversation []string, trigger string) (string, error) {
	if r.client == nil {
		return FallbackReply, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(conversation, trigger), genai.RoleUser),
	}

	resp, err := r.client.Models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.8),
		TopP:        genai.Ptr[float32](0.95),
	})
	if err != nil {
		return FallbackReply, nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackReply, nil
	}
	return text, nil
}
