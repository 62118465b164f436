package tracing

// Span attribute keys for editor tracing.
// These constants define the semantic conventions for span attributes
// recorded on input event spans.
const (
	// Input attributes
	AttrMode    = "editor.mode"
	AttrKey     = "editor.key"
	AttrOutcome = "editor.outcome"

	// Cursor attributes
	AttrOffsetBefore = "cursor.offset.before"
	AttrOffsetAfter  = "cursor.offset.after"
	AttrRow          = "cursor.row"
	AttrCol          = "cursor.col"

	// Viewport attributes
	AttrTopLine = "viewport.top_line"

	// Buffer attributes
	AttrBufferLen = "buffer.length"
)

// Outcome values for the editor.outcome attribute.
const (
	OutcomeApplied     = "applied"
	OutcomeBlocked     = "blocked"
	OutcomeUnsupported = "unsupported"
)

// SpanPrefixInput prefixes every input event span name, e.g. "editor.insert".
const SpanPrefixInput = "editor."
