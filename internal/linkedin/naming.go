package linkedin

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

const maxStemLength = 80

// FileStem names export files "<context>_<kind>", where the context is the
// queried username, company or post with anything unsafe for a file name
// replaced.
func FileStem(kind Kind, context string) string {
	if kind.IsBulk() {
		return "linkedin_" + string(kind)
	}

	context = strings.TrimPrefix(context, "https://")
	context = strings.TrimPrefix(context, "http://")
	context = strings.TrimPrefix(context, "www.")
	context = strings.Trim(unsafeChars.ReplaceAllString(context, "-"), "-")
	if len(context) > maxStemLength {
		context = strings.TrimRight(context[:maxStemLength], "-")
	}
	if context == "" {
		context = "linkedin"
	}
	return context + "_" + string(kind)
}
