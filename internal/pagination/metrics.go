package pagination

// FontMetrics measures rendered text width. It is an injected capability so
// the layout engine stays testable without a real text engine: tests supply
// a deterministic fixed-width implementation.
type FontMetrics interface {
	// LineWidth returns the width of text rendered in the given style, in points.
	LineWidth(text string, style TextStyle) float64
}

// HelveticaMetrics approximates Helvetica advance widths from the standard
// AFM tables, scaled per thousand units of font size. Close enough for page
// break decisions; the export layer renders with the same font family.
type HelveticaMetrics struct{}

// helveticaWidths holds per-glyph advance widths in 1/1000 em for the ASCII
// range of Helvetica regular.
var helveticaWidths = map[rune]float64{
	' ': 278, '!': 278, '"': 355, '#': 556, '$': 556, '%': 889, '&': 667,
	'\'': 191, '(': 333, ')': 333, '*': 389, '+': 584, ',': 278, '-': 333,
	'.': 278, '/': 278,
	'0': 556, '1': 556, '2': 556, '3': 556, '4': 556, '5': 556, '6': 556,
	'7': 556, '8': 556, '9': 556,
	':': 278, ';': 278, '<': 584, '=': 584, '>': 584, '?': 556, '@': 1015,
	'A': 667, 'B': 667, 'C': 722, 'D': 722, 'E': 667, 'F': 611, 'G': 778,
	'H': 722, 'I': 278, 'J': 500, 'K': 667, 'L': 556, 'M': 833, 'N': 722,
	'O': 778, 'P': 667, 'Q': 778, 'R': 722, 'S': 667, 'T': 611, 'U': 722,
	'V': 667, 'W': 944, 'X': 667, 'Y': 667, 'Z': 611,
	'[': 278, '\\': 278, ']': 278, '^': 469, '_': 556, '`': 333,
	'a': 556, 'b': 556, 'c': 500, 'd': 556, 'e': 556, 'f': 278, 'g': 556,
	'h': 556, 'i': 222, 'j': 222, 'k': 500, 'l': 222, 'm': 833, 'n': 556,
	'o': 556, 'p': 556, 'q': 556, 'r': 333, 's': 500, 't': 278, 'u': 556,
	'v': 500, 'w': 722, 'x': 500, 'y': 500, 'z': 500,
	'{': 334, '|': 260, '}': 334, '~': 584, '•': 350,
}

// defaultGlyphWidth covers glyphs outside the table.
const defaultGlyphWidth = 600.0

// boldWidthFactor widens bold text relative to the regular weight.
const boldWidthFactor = 1.06

// LineWidth returns the approximate rendered width of text in points.
func (HelveticaMetrics) LineWidth(text string, style TextStyle) float64 {
	var units float64
	for _, r := range text {
		if w, ok := helveticaWidths[r]; ok {
			units += w
		} else {
			units += defaultGlyphWidth
		}
	}
	width := units / 1000 * style.Size
	if style.Bold {
		width *= boldWidthFactor
	}
	return width
}

// FixedMetrics measures every glyph at a constant width per point of font
// size, giving deterministic wrap boundaries in tests.
type FixedMetrics struct {
	// GlyphWidth is the width of one glyph per point of font size.
	// A value of 0.5 means a 10pt glyph is 5pt wide.
	GlyphWidth float64
}

// LineWidth returns rune count times the fixed glyph width.
func (m FixedMetrics) LineWidth(text string, style TextStyle) float64 {
	return float64(len([]rune(text))) * m.GlyphWidth * style.Size
}
