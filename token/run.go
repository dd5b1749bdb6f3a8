package token

import "github.com/jcorbin/mdstream/mdmath"

// StyleFlags is a bitset of the inline styles that can stack on a run.
type StyleFlags uint8

// StyleFlags bits.
const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
	StyleCode
	StyleStrikethrough
	StyleLink
	StyleMath
)

// Has reports whether f includes bit.
func (f StyleFlags) Has(bit StyleFlags) bool { return f&bit != 0 }

// ImageRef is the payload of an image run.
type ImageRef struct {
	Alt string
	Src string
}

// InlineRun is one coalesced run of inline content, per spec.md §3. LinkURL
// is meaningful only when Style has StyleLink set; Image only when non-nil;
// Math only when Style has StyleMath set.
type InlineRun struct {
	Text    string
	Style   StyleFlags
	LinkURL string
	Image   *ImageRef
	Math    *mdmath.Node
}

// Coalescable reports whether b may be merged into a by appending b.Text to
// a.Text, per spec.md §3's coalescing rule: same style, same link URL, same
// image (or neither), and neither carries a math payload.
func Coalescable(a, b InlineRun) bool {
	if a.Style != b.Style {
		return false
	}
	if a.Style.Has(StyleLink) && a.LinkURL != b.LinkURL {
		return false
	}
	if !equalImage(a.Image, b.Image) {
		return false
	}
	if a.Math != nil || b.Math != nil {
		return false
	}
	return true
}

func equalImage(a, b *ImageRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Alignment is a confirmed table column's alignment.
type Alignment int

// Alignment values.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)
