package view

import (
	"sync"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChatEntry struct {
	Text   string    `json:"text" yaml:"text"`
	Sender Sender    `json:"sender" yaml:"sender"`
	Time   time.Time `json:"time" yaml:"time"`
}

// Clock is the hh:mm stamp shown next to a message.
func (e ChatEntry) Clock() string {
	return e.Time.Format("15:04")
}

// Transcript is the in-memory chat history plus the current suggestion
// buttons. Entries are kept in append order; it is safe for concurrent use.
type Transcript struct {
	mu          sync.Mutex
	entries     []ChatEntry
	suggestions []string
	now         func() time.Time
}

func NewTranscript() *Transcript {
	return NewTranscriptWithClock(time.Now)
}

func NewTranscriptWithClock(now func() time.Time) *Transcript {
	return &Transcript{now: now}
}

func (t *Transcript) Append(sender Sender, text string) ChatEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := ChatEntry{Text: text, Sender: sender, Time: t.now()}
	t.entries = append(t.entries, entry)
	return entry
}

// SetSuggestions replaces the suggestion list. An empty list keeps the
// current one.
func (t *Transcript) SetSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suggestions = append([]string(nil), suggestions...)
}

func (t *Transcript) Entries() []ChatEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ChatEntry(nil), t.entries...)
}

func (t *Transcript) Suggestions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.suggestions...)
}

// Suggestion returns the i-th suggestion (0-based).
func (t *Transcript) Suggestion(i int) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.suggestions) {
		return "", false
	}
	return t.suggestions[i], true
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
