// Package prompts serves externally configured prompt text from Parameter
// Store with compiled-in fallbacks, so prompt configuration can never fail a
// chat request.
package prompts

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Getter is the parameter retrieval capability the source depends on.
// Satisfied by paramstore.Client.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

const (
	defaultSystemPrompt = "You are the portfolio owner's assistant on their personal site. " +
		"Answer visitor questions in the first person, professionally and concisely, " +
		"using only the portfolio context provided with each question. " +
		"If the context does not contain the answer, say you don't have that information."

	defaultChatTemplate = "[Portfolio Context]\n{{context}}\n\n[Visitor Question]\n{{question}}\n\n" +
		"Answer the visitor question using only the portfolio context above."
)

// Source loads the system prompt and templates once and caches them for the
// process lifetime. A failed load falls back to defaults for that call and
// is retried on the next one. Safe for concurrent use.
type Source struct {
	getter Getter
	prefix string

	mu        sync.RWMutex
	loaded    bool
	system    string
	templates map[string]string
}

func New(getter Getter, paramPrefix string) (*Source, error) {
	if getter == nil {
		return nil, errors.New("prompts: getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("prompts: parameter prefix must not be empty")
	}
	return &Source{getter: getter, prefix: paramPrefix}, nil
}

// SystemPrompt returns the configured system prompt, or the default when the
// underlying store is unreachable. Never fails.
func (s *Source) SystemPrompt(ctx context.Context) string {
	if s.ensureLoaded(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.system != "" {
			return s.system
		}
	}
	return defaultSystemPrompt
}

// Template returns the configured template for key, or the compiled-in
// default. Unknown keys yield the chat template so rendering always has a
// usable shape. Never fails.
func (s *Source) Template(ctx context.Context, key string) string {
	if s.ensureLoaded(ctx) {
		s.mu.RLock()
		v := s.templates[key]
		s.mu.RUnlock()
		if v != "" {
			return v
		}
	}
	return defaultChatTemplate
}

func (s *Source) ensureLoaded(ctx context.Context) bool {
	s.mu.RLock()
	if s.loaded {
		s.mu.RUnlock()
		return true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return true
	}

	system, err := s.getter.GetParameter(ctx, s.prefix+"/system_prompt")
	if err != nil {
		return false
	}
	chat, err := s.getter.GetParameter(ctx, s.prefix+"/templates/chat")
	if err != nil {
		return false
	}

	s.system = strings.TrimSpace(system)
	s.templates = map[string]string{"chat": strings.TrimSpace(chat)}
	s.loaded = true
	return true
}
