// Package chat is the in-memory chat transcript.
package chat

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

var (
	ErrEmpty     = errors.New("empty message")
	ErrComposing = errors.New("reply pending")
)

// Message is one transcript entry. Failed marks the inline error bubble.
type Message struct {
	ID      string
	Role    Role
	Content string
	Failed  bool
}

// Transcript is append-only. At most one exchange is outstanding.
type Transcript struct {
	messages  []Message
	composing bool
	failure   string
}

// NewTranscript seeds the transcript with the bot greeting; failure is the
// fixed text appended when a round trip fails.
func NewTranscript(seed, failure string) *Transcript {
	t := &Transcript{failure: failure}
	t.append(RoleBot, seed, false)
	return t
}

func (t *Transcript) append(role Role, content string, failed bool) {
	t.messages = append(t.messages, Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Failed:  failed,
	})
}

// Send appends the trimmed user message and returns the text to post.
func (t *Transcript) Send(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}
	if t.composing {
		return "", ErrComposing
	}
	t.append(RoleUser, text, false)
	t.composing = true
	return text, nil
}

func (t *Transcript) Reply(text string) {
	if !t.composing {
		return
	}
	t.composing = false
	t.append(RoleBot, text, false)
}

func (t *Transcript) Fail() {
	if !t.composing {
		return
	}
	t.composing = false
	t.append(RoleBot, t.failure, true)
}

func (t *Transcript) Composing() bool { return t.composing }

// Messages returns a copy of the transcript in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
