package search

import (
	"fmt"
	"strings"
)

// maxFormattedEntries caps the number of organic entries rendered into the
// prompt, regardless of how many the provider returned.
const maxFormattedEntries = 5

// Placeholders keep the block structure stable when the provider omits
// sub-fields.
const (
	noTitle       = "No title"
	noLink        = "No link"
	noDescription = "No description"
)

// FormatResults renders a search Result as a plain-text block for prompt
// injection. Pure function. A failed result yields a single error line and
// nothing else. Otherwise the block contains, in fixed order: numbered organic
// entries, the featured answer if present, and the knowledge panel if present.
func FormatResults(result Result) string {
	if result.Failed() {
		return fmt.Sprintf("Error performing search: %s", result.Error)
	}

	var b strings.Builder

	organic := result.Organic
	if len(organic) > maxFormattedEntries {
		organic = organic[:maxFormattedEntries]
	}

	for i, entry := range organic {
		title := entry.Title
		if title == "" {
			title = noTitle
		}
		link := entry.Link
		if link == "" {
			link = noLink
		}
		snippet := entry.Snippet
		if snippet == "" {
			snippet = noDescription
		}

		fmt.Fprintf(&b, "%d. %s\n   URL: %s\n   Description: %s\n\n", i+1, title, link, snippet)
	}

	if box := result.AnswerBox; box != nil {
		fmt.Fprintf(&b, "Featured Medical Answer: %s\n%s\n%s\n\n", box.Title, box.Answer, box.Snippet)
	}

	if kg := result.KnowledgeGraph; kg != nil {
		fmt.Fprintf(&b, "Medical Knowledge: %s\n%s\n\n", kg.Title, kg.Description)
	}

	return b.String()
}
