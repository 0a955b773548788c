package model

// Message is the platform-independent formatted announcement for one thread.
// Platform publishers append their own suffix and enforce their own length
// ceiling on top of it.
type Message struct {
	// Text is the base rendered template, body already trimmed to the
	// configured base limit.
	Text string

	// SourceUrl points at the thread on the board, used for link previews
	// and "see more" suffixes.
	SourceUrl string
}

// Outcome is the per-attempt result of publishing one thread to one
// platform. It is ephemeral and only drives whether the dedup key gets
// recorded.
type Outcome struct {
	Platform  string
	Key       string
	Succeeded bool
}
