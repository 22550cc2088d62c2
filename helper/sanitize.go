package helper

import "github.com/microcosm-cc/bluemonday"

var (
	richTextPolicy = bluemonday.UGCPolicy()
	plainPolicy    = bluemonday.StrictPolicy()
)

// SanitizeRichText keeps the inline markup allowed in block text and drops
// scripts, styles and event handlers.
func SanitizeRichText(s string) string {
	return richTextPolicy.Sanitize(s)
}

// StripTags removes every tag from s.
func StripTags(s string) string {
	return plainPolicy.Sanitize(s)
}
