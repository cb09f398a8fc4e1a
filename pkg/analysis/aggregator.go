// Package analysis aggregates study log entries.
package analysis

import "studymanager/pkg/notion"

// Tally maps a mistake text to the number of entries that recorded it.
type Tally map[string]int

// Aggregate counts the first mistake text of every page. The text is used
// verbatim as the key. Pages without mistake text contribute nothing.
func Aggregate(pages []notion.Page) Tally {
	tally := make(Tally)
	for _, page := range pages {
		text, ok := firstMistake(page)
		if !ok {
			continue
		}
		tally[text]++
	}
	return tally
}

func firstMistake(page notion.Page) (string, bool) {
	prop, ok := page.Properties[notion.PropertyMistakes]
	if !ok || len(prop.RichText) == 0 {
		return "", false
	}
	text := prop.RichText[0].Text.Content
	if text == "" {
		return "", false
	}
	return text, true
}
