package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// TokenRenderer implements Renderer using basic string replacement
type TokenRenderer struct{}

// NewTokenRenderer creates a new TokenRenderer
func NewTokenRenderer() *TokenRenderer {
	return &TokenRenderer{}
}

// Render implements Renderer.Render
func (r *TokenRenderer) Render(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading template: %w", err)
	}

	result := &Result{
		Original: original,
		Rendered: original,
	}

	current := string(original)
	for _, rule := range rules {
		if rule.Token == "" {
			continue
		}

		next := strings.ReplaceAll(current, rule.Token, rule.Value)
		if next != current {
			result.WasModified = true
			result.Count += strings.Count(current, rule.Token)
		}

		current = next
	}

	result.Rendered = []byte(current)
	return result, nil
}

// ValidateRules implements Renderer.ValidateRules
func (r *TokenRenderer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Token == "" {
			return errors.Errorf("rule %d: token is required", i)
		}
		if rule.Value == "" {
			return errors.Errorf("rule %d: value is required", i)
		}
		if strings.Contains(rule.Value, rule.Token) {
			return errors.Errorf("rule %d: value %q contains its own token", i, rule.Value)
		}
	}
	return nil
}
