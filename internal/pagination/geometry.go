// Package pagination lays a resume onto discrete fixed-size pages for
// export as a portable document. It decides page breaks, avoids orphaned
// section headers, and treats each responsibility bullet as an atomic
// unbreakable unit. Like the screen renderer it is a pure function of an
// immutable snapshot.
package pagination

// All lengths are in points (1/72 inch).

// A4 page geometry with 20mm margins.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 56.7

	// ContentWidth is the horizontal space available to text.
	ContentWidth = PageWidth - 2*Margin

	// ContentBottom is the vertical cursor limit of the nominal page.
	ContentBottom = PageHeight - Margin
)

// lineSpacing is the line height multiplier applied to the font size.
const lineSpacing = 1.35

// bulletIndent is the horizontal space reserved for the bullet marker.
const bulletIndent = 12.0

// Vertical gaps between layout elements.
const (
	gapAfterName    = 6.0
	gapAfterContact = 14.0
	gapAfterHeader  = 4.0
	gapAfterEntry   = 8.0
	gapAfterSection = 10.0
)

// TextStyle identifies the font variant and size used to measure and render
// a block of text.
type TextStyle struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold"`
}

// Text styles used by the document layout.
var (
	StyleName     = TextStyle{Size: 24, Bold: true}
	StyleContact  = TextStyle{Size: 10}
	StyleHeader   = TextStyle{Size: 12, Bold: true}
	StyleHeading  = TextStyle{Size: 11, Bold: true}
	StyleSubtitle = TextStyle{Size: 10}
	StyleBody     = TextStyle{Size: 10}
)

// LineHeight returns the vertical extent of one line in this style.
func (s TextStyle) LineHeight() float64 {
	return s.Size * lineSpacing
}
