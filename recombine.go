package odf

import "fmt"

// Anchor is the position policy for a text edit.
type Anchor string

const (
	AnchorStart   Anchor = "start"   // insert before the existing body
	AnchorEnd     Anchor = "end"     // insert after the existing body
	AnchorReplace Anchor = "replace" // discard the existing body
)

// ParseAnchor validates a user-supplied anchor string.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case AnchorStart, AnchorEnd, AnchorReplace:
		return Anchor(s), nil
	}
	return "", fmt.Errorf("%w: anchor must be %q, %q or %q, got %q",
		ErrValidation, AnchorStart, AnchorEnd, AnchorReplace, s)
}

// EditRequest describes a requested edit against an existing body.
type EditRequest struct {
	Text   string
	Anchor Anchor
}

// Apply computes the text body resulting from an edit. It is a pure
// function: no I/O, no hidden state.
//
// AnchorStart and AnchorEnd concatenate with exactly one separating
// paragraph boundary, even when either side is empty: appending "A" to an
// empty body yields ["", "A"], not ["A"]. AnchorReplace discards the
// existing body entirely. The inserted text is itself split into
// paragraphs by the writer's splitting rule (see Split).
func Apply(existing TextBody, req EditRequest) TextBody {
	switch req.Anchor {
	case AnchorStart:
		out := Split(req.Text)
		return append(out, existing...)
	case AnchorEnd:
		out := append(TextBody(nil), existing...)
		return append(out, Split(req.Text)...)
	default:
		// AnchorReplace; unknown anchors are rejected by ParseAnchor before
		// reaching here, and replace keeps Apply total over its domain.
		return Split(req.Text)
	}
}
