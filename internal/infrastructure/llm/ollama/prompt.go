package ollama

import (
	"strings"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

func buildClassificationPrompt(text string, candidates []domain.DocumentType) string {
	const maxSnippet = 4000
	snippet := text
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		labels = append(labels, `"`+string(c)+`"`)
	}

	return `You are a zero-shot document classifier.
Rank the candidate labels [` + strings.Join(labels, ", ") + `] for the document below.
Return a strict JSON object with keys:
labels (array of the candidate labels, most likely first), scores (array of numbers from 0 to 1, same order).
Use every candidate label exactly once. No markdown, no extra keys.

Document:
` + snippet
}
