package usecase

import "regexp"

// placeholderPattern matches {{name}} placeholders in prompt templates.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// RenderTemplate substitutes {{name}} placeholders with values from vars.
// Unresolved placeholders become the empty string; they are never left
// literal and rendering never fails.
func RenderTemplate(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return vars[name]
	})
}

// BuildUserPrompt renders the user half of the model prompt from an
// externally configured template: the grounding context section followed by
// the visitor question section. The system prompt travels to the LLM port
// separately.
func BuildUserPrompt(template, contextText, question string) string {
	return RenderTemplate(template, map[string]string{
		"context":  contextText,
		"question": question,
	})
}
