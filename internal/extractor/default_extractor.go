package extractor

import (
	"regexp"
	"strings"
)

// DefaultPattern is the ECMAScript form of the default token rule, written
// out when the configuration is exported for the purging tool.
const DefaultPattern = `[\w-/:]+(?<!:)`

// tokenRun matches a maximal run of word characters, hyphens, slashes and
// colons. RE2 has no lookbehind, so trailing colons are trimmed afterwards.
var tokenRun = regexp.MustCompile(`[\w\-/:]+`)

// DefaultExtractor is the extractor used when no per-extension override
// applies. With SplitVariants unset its output equals DefaultPattern applied
// with the global flag.
type DefaultExtractor struct {
	// SplitVariants also emits each colon separated segment of a token such
	// as "hover:bg-red-500", after the full token.
	SplitVariants bool
}

// NewDefaultExtractor returns a DefaultExtractor.
func NewDefaultExtractor(splitVariants bool) DefaultExtractor {
	return DefaultExtractor{SplitVariants: splitVariants}
}

// Extract implements Extractor.
func (d DefaultExtractor) Extract(content string) []string {
	runs := tokenRun.FindAllString(content, -1)
	tokens := make([]string, 0, len(runs))

	for _, run := range runs {
		token := strings.TrimRight(run, ":")
		if token == "" {
			continue
		}
		tokens = append(tokens, token)

		if d.SplitVariants && strings.Contains(token, ":") {
			for _, segment := range strings.Split(token, ":") {
				if segment != "" {
					tokens = append(tokens, segment)
				}
			}
		}
	}

	return tokens
}

// ID implements Identifier.
func (d DefaultExtractor) ID() string {
	if d.SplitVariants {
		return "default+variants"
	}
	return "default"
}
