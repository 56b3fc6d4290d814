package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes every tag and attribute.
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy keeps basic formatting (paragraphs, emphasis, links, lists).
	ugcPolicy = bluemonday.UGCPolicy()
)

// HTML cleans rich-text descriptions rendered by the landing page. Input the
// policy accepts as is comes back unchanged, so quotes and ampersands in plain
// copy are stored as typed.
func HTML(input string) string {
	return clean(ugcPolicy, input)
}

// Text strips all markup from input.
func Text(input string) string {
	return clean(strictPolicy, input)
}

// HTMLPtr applies HTML to an optional value.
func HTMLPtr(input *string) *string {
	if input == nil {
		return nil
	}
	out := HTML(*input)
	return &out
}

// clean returns the policy output only when it removed something; bluemonday
// entity-escapes text even when it drops nothing.
func clean(policy *bluemonday.Policy, input string) string {
	input = strings.TrimSpace(input)
	out := strings.TrimSpace(policy.Sanitize(input))
	if html.UnescapeString(out) == html.UnescapeString(input) {
		return input
	}
	return out
}
