package formatter

import (
	"regexp"
	"strings"
)

// placeholderRule describes the effect of one recognized template
// placeholder. Placeholders with collapseWhenEmpty drop out of the template
// entirely (together with any trailing separator literal) when their value
// is empty, instead of substituting an empty string.
type placeholderRule struct {
	token             string
	collapseWhenEmpty bool
}

var placeholderRules = []placeholderRule{
	{token: "{board}"},
	{token: "{sub}", collapseWhenEmpty: true},
	{token: "{com}"},
	{token: "{url}"},
}

// collapsePatterns match a collapsible placeholder together with the
// separator literal attached after it (spaces around dashes, colons or
// pipes, or a plain space), so an absent value leaves no stray punctuation
// behind.
var collapsePatterns = map[string]*regexp.Regexp{}

func init() {
	for _, rule := range placeholderRules {
		if rule.collapseWhenEmpty {
			collapsePatterns[rule.token] = regexp.MustCompile(
				regexp.QuoteMeta(rule.token) + `( *[-:|]+ *| +)?`)
		}
	}
}

// renderTemplate substitutes the recognized placeholders with the provided
// values, applying the collapse rule for absent optional values.
func renderTemplate(template string, values map[string]string) string {
	out := template
	for _, rule := range placeholderRules {
		value := values[rule.token]
		if value == "" && rule.collapseWhenEmpty {
			out = collapsePatterns[rule.token].ReplaceAllString(out, "")
			continue
		}
		out = strings.ReplaceAll(out, rule.token, value)
	}
	return out
}
