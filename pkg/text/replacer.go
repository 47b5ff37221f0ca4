// Package text renders day templates by literal token replacement.
// There is deliberately no template engine here: the per-day templates
// carry a single fixed token and a plain substring replace is the whole
// contract.
package text

import (
	"context"
	"io"
)

// Rule defines a single literal replacement applied to template content.
type Rule struct {
	// Token is the literal text to replace (e.g. "dayXX")
	Token string

	// Value is the replacement text (e.g. "day7")
	Value string
}

// Result contains the outcome of rendering one template.
type Result struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// Count is the total number of token occurrences replaced
	Count int

	// Original is the template content before replacement
	Original []byte

	// Rendered is the content after replacement
	Rendered []byte
}

// Renderer is the interface for template rendering.
type Renderer interface {
	// Render applies the rules to the template content, replacing every
	// occurrence of each token
	Render(ctx context.Context, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that all rules are usable
	ValidateRules(rules []Rule) error
}
