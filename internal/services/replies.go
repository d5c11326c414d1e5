package services

import (
	"errors"
	"math/rand"
)

// WelcomeMessage seeds every new conversation.
const WelcomeMessage = "Welcome to the conversation!"

// DefaultReplies is the stock phrase catalog bot replies are drawn from.
func DefaultReplies() []string {
	return []string{
		"That's interesting! Tell me more.",
		"I see. How does that make you feel?",
		"Could you elaborate on that?",
		"Interesting perspective. What led you to think that way?",
		"I understand. Is there anything else on your mind?",
	}
}

// ReplyCatalog picks bot replies uniformly at random from a fixed phrase
// list. Selection is stateless: every pick is independent of conversation
// content and of previous picks.
type ReplyCatalog struct {
	phrases []string
	pick    func(n int) int
}

// NewReplyCatalog builds a catalog over phrases. pick maps n to [0, n) and
// exists so tests can inject a deterministic source; pass nil to use the
// shared math/rand source.
func NewReplyCatalog(phrases []string, pick func(n int) int) (*ReplyCatalog, error) {
	if len(phrases) == 0 {
		return nil, errors.New("reply catalog must not be empty")
	}
	if pick == nil {
		pick = rand.Intn
	}
	return &ReplyCatalog{phrases: phrases, pick: pick}, nil
}

// Choose returns one phrase from the catalog.
func (c *ReplyCatalog) Choose() string {
	return c.phrases[c.pick(len(c.phrases))]
}
