// Package formatter renders a thread into announcement text. It produces
// one platform-independent base message; platform publishers append their
// own suffix and enforce their own ceiling with FitWithSuffix.
package formatter

import (
	"fmt"
	"strings"

	"github.com/boardcast/boardcast/model"
)

// Ellipsis marks the point where a body was shortened to fit a platform
// ceiling.
const Ellipsis = "…"

type Formatter struct {
	// Template with {board}, {sub}, {com} and {url} placeholders.
	Template string

	// DomainName builds the thread's public URL as {domain}/{board}/res/{id}.
	DomainName string

	// BodyLimit is the base character cut applied to the cleaned body before
	// platform suffixing.
	BodyLimit int
}

func NewFormatter(template, domainName string, bodyLimit int) *Formatter {
	return &Formatter{Template: template, DomainName: domainName, BodyLimit: bodyLimit}
}

// Format builds the base message for one thread.
func (f *Formatter) Format(t model.Thread) model.Message {
	body := strings.TrimSpace(StripHtml(t.BodyHtml))
	body = Truncate(body, f.BodyLimit)

	url := fmt.Sprintf("%s/%s/res/%d", f.DomainName, t.Board, t.Id)

	values := map[string]string{
		"{board}": t.Board,
		"{com}":   body,
		"{url}":   url,
	}
	if subject := strings.TrimSpace(t.Subject); subject != "" {
		values["{sub}"] = subject + " -"
	}

	return model.Message{
		Text:      renderTemplate(f.Template, values),
		SourceUrl: url,
	}
}

// Truncate cuts s to at most limit characters (not bytes).
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// FitWithSuffix appends suffix to text, shortening text (never the suffix)
// so the combined length stays within limit. An ellipsis marks the cut when
// shortening was necessary.
func FitWithSuffix(text, suffix string, limit int) string {
	textLen := len([]rune(text))
	suffixLen := len([]rune(suffix))
	if textLen+suffixLen <= limit {
		return text + suffix
	}

	keep := limit - suffixLen - len([]rune(Ellipsis))
	if keep < 0 {
		keep = 0
	}
	return Truncate(text, keep) + Ellipsis + suffix
}
