package flow

import (
	"context"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/helmcode/agridetect/pkg/view"
)

// ChatFlow sends chat messages and records them in a transcript. Sends are
// neither queued nor deduplicated: overlapping calls may finish in any order.
type ChatFlow struct {
	api        ChatSender
	catalog    *i18n.Catalog
	sessionID  string
	replyDelay time.Duration
	sleep      func(time.Duration)

	Transcript *view.Transcript
}

type ChatOption func(*ChatFlow)

// WithReplyDelay sets the pause before a bot reply is shown.
func WithReplyDelay(d time.Duration) ChatOption {
	return func(f *ChatFlow) {
		f.replyDelay = d
	}
}

func WithSleep(sleep func(time.Duration)) ChatOption {
	return func(f *ChatFlow) {
		f.sleep = sleep
	}
}

// NewChatFlow builds a chat flow bound to sessionID. An empty sessionID
// sends messages without a session.
func NewChatFlow(api ChatSender, catalog *i18n.Catalog, sessionID string, opts ...ChatOption) *ChatFlow {
	f := &ChatFlow{
		api:        api,
		catalog:    catalog,
		sessionID:  sessionID,
		replyDelay: 500 * time.Millisecond,
		sleep:      time.Sleep,
		Transcript: view.NewTranscript(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *ChatFlow) SessionID() string {
	return f.sessionID
}

// Send appends the trimmed text as a user entry, then the bot reply or a
// localized error. Blank input is ignored and reports false.
func (f *ChatFlow) Send(ctx context.Context, text string) bool {
	message := strings.TrimSpace(text)
	if message == "" {
		return false
	}

	f.Transcript.Append(view.SenderUser, message)

	resp, err := f.api.Chat(ctx, model.ChatRequest{Message: message, SessionID: f.sessionID})
	if err != nil {
		log.WithError(err).WithField("session", f.sessionID).Error("chat request failed")
		f.Transcript.Append(view.SenderBot, f.catalog.T(i18n.ChatFailed))
		return true
	}

	if f.replyDelay > 0 {
		f.sleep(f.replyDelay)
	}
	f.Transcript.Append(view.SenderBot, resp.Response)
	f.Transcript.SetSuggestions(resp.Suggestions)
	return true
}

// SendSuggestion sends the i-th current suggestion as if it had been typed.
func (f *ChatFlow) SendSuggestion(ctx context.Context, i int) bool {
	text, ok := f.Transcript.Suggestion(i)
	if !ok {
		return false
	}
	return f.Send(ctx, text)
}
