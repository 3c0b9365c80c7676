package editor

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.RequireNoReferrerOnLinks(true)
	return p
}

// Sanitize keeps the user-generated HTML the editor toolbar can produce and
// drops everything else: scripts, event handlers, styles and unsafe URLs.
func Sanitize(src string) string {
	return policy.Sanitize(src)
}
