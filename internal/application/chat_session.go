package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

// QuickQuestions are common farming questions offered as one-key input
// prefills. Selecting one only populates the pending input; sending
// still takes an explicit action.
var QuickQuestions = []string{
	"How often should I irrigate my crops?",
	"Which fertilizer should I use?",
	"How do I control pests organically?",
	"What does today's weather mean for my field?",
}

// ChatSession is an append-only transcript of user and assistant turns
// with at most one outstanding request at a time.
type ChatSession struct {
	gateway ports.Gateway
	clock   ports.Clock

	mu       sync.Mutex
	turns    []domain.Turn
	language domain.Language
	pending  string
	inFlight bool
}

func NewChatSession(gateway ports.Gateway, clock ports.Clock) *ChatSession {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ChatSession{
		gateway:  gateway,
		clock:    clock,
		language: domain.LanguageEnglish,
	}
}

func (c *ChatSession) Language() domain.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// SetLanguage selects the language attached to turns sent after the
// change. Past turns are never edited.
func (c *ChatSession) SetLanguage(language domain.Language) error {
	if !language.Valid() {
		return &domain.ValidationError{Field: "language", Reason: fmt.Sprintf("unsupported language %q", language)}
	}

	c.mu.Lock()
	c.language = language
	c.mu.Unlock()
	return nil
}

// Transcript returns a copy of the turns in send order.
func (c *ChatSession) Transcript() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Turn(nil), c.turns...)
}

// Busy reports whether an assistant request is outstanding.
func (c *ChatSession) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// PrefillQuickQuestion puts a quick question into the pending input
// without sending it.
func (c *ChatSession) PrefillQuickQuestion(index int) (string, bool) {
	if index < 0 || index >= len(QuickQuestions) {
		return "", false
	}

	c.mu.Lock()
	c.pending = QuickQuestions[index]
	pending := c.pending
	c.mu.Unlock()
	return pending, true
}

func (c *ChatSession) PendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *ChatSession) SetPendingInput(text string) {
	c.mu.Lock()
	c.pending = text
	c.mu.Unlock()
}

// Send appends the user turn optimistically and issues the gateway
// call. Blank text and concurrent sends are rejected before anything
// is appended. On failure the user turn stays in the transcript and no
// assistant turn is added.
func (c *ChatSession) Send(ctx context.Context, text string) (domain.Turn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Turn{}, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return domain.Turn{}, domain.ErrChatBusy
	}
	language := c.language
	c.inFlight = true
	c.pending = ""
	c.turns = append(c.turns, domain.Turn{
		Speaker:  domain.SpeakerUser,
		Text:     trimmed,
		Language: language,
		SentAt:   c.clock.Now(),
	})
	c.mu.Unlock()

	reply, err := c.gateway.Chat(ctx, trimmed, language)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		return domain.Turn{}, fmt.Errorf("chat: %w", err)
	}

	turn := domain.Turn{
		Speaker:         domain.SpeakerAssistant,
		Text:            reply.Response,
		Language:        reply.Language,
		Recommendations: reply.Recommendations,
		SentAt:          c.clock.Now(),
	}
	c.turns = append(c.turns, turn)
	return turn, nil
}
