package pagination

import "strings"

// wrapText greedily wraps text to the given width using the measurement
// function. A single word wider than the width gets its own line and
// overflows horizontally rather than being broken mid-word; that is a
// cosmetic defect, not an error.
func wrapText(text string, style TextStyle, width float64, metrics FontMetrics) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if metrics.LineWidth(candidate, style) <= width {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}

	return lines
}
