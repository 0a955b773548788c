package formatter

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHtml removes all markup from a post body. Line-break tags become a
// single space so adjacent words don't run together; entity references are
// decoded once the tags are gone.
func StripHtml(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// tokenizer signals EOF through ErrorToken
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				sb.WriteByte(' ')
			}
		}
	}
}
