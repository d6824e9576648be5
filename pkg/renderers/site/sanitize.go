package site

import (
	"github.com/microcosm-cc/bluemonday"
)

// descriptionPolicy allows the formatting subset catalog authors use in
// descriptions while dropping scripts and event handlers wholesale.
var descriptionPolicy = bluemonday.UGCPolicy()

// textPolicy strips all markup, for summaries and page titles.
var textPolicy = bluemonday.StrictPolicy()

func sanitizeHTML(input string) string {
	if input == "" {
		return ""
	}
	return descriptionPolicy.Sanitize(input)
}

func sanitizeText(input string) string {
	if input == "" {
		return ""
	}
	return textPolicy.Sanitize(input)
}
