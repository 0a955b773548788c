// Package publisher holds the per-platform adapters. Each adapter owns its
// authenticated client, its text-length ceiling and its suffix rules.
package publisher

import (
	"context"
	"strings"

	"github.com/boardcast/boardcast/model"
)

// Publisher publishes one formatted message to one platform. Publish never
// panics past this boundary: remote failures come back as plain errors and
// the orchestrator converts them into a failed outcome.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, msg model.Message) error
}

// HashtagByteSpan locates "#tag" inside the final text and returns its span
// as UTF-8 byte offsets, the form richtext annotations are anchored in. The
// last occurrence wins, so a body that happens to contain the hashtag never
// steals the annotation from the appended suffix. Call it only after all
// truncation and suffixing is done, or the span will point at the wrong
// bytes.
func HashtagByteSpan(text, tag string) (start, end int, ok bool) {
	needle := "#" + tag
	start = strings.LastIndex(text, needle)
	if start < 0 {
		return 0, 0, false
	}
	return start, start + len(needle), true
}
