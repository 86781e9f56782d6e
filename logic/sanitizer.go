package logic

import (
	"github.com/microcosm-cc/bluemonday"
)

type contentSanitizer struct {
	policy *bluemonday.Policy
}

func newContentSanitizer() *contentSanitizer {
	return &contentSanitizer{bluemonday.UGCPolicy()}
}

// Only HTML is rewritten; markdown and plain text are stored as received.
func (cs *contentSanitizer) sanitize(contentType, content string) string {
	if !isHtml(contentType) {
		return content
	}
	return cs.policy.Sanitize(content)
}
