package preview

import (
	"fmt"
	"strings"
)

// RenderText flattens a rendered document into plain text. The AI analysis
// and enhancement paths send this projection when they need resume text
// rather than the structured model.
func RenderText(doc *Document) string {
	var sb strings.Builder

	if doc.Name != "" {
		sb.WriteString(doc.Name)
		sb.WriteString("\n")
	}
	if doc.Contact != "" {
		sb.WriteString(doc.Contact)
		sb.WriteString("\n")
	}

	for _, section := range doc.Sections {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(section.Title))
		sb.WriteString("\n")

		if section.Paragraph != "" {
			sb.WriteString(section.Paragraph)
			sb.WriteString("\n")
		}
		for _, entry := range section.Entries {
			heading := entry.Heading
			if entry.Subtitle != "" {
				heading = fmt.Sprintf("%s, %s", entry.Heading, entry.Subtitle)
			}
			sb.WriteString(fmt.Sprintf("%s (%s)\n", heading, entry.DateRange))
			for _, bullet := range entry.Bullets {
				sb.WriteString("- ")
				sb.WriteString(bullet)
				sb.WriteString("\n")
			}
		}
		if len(section.Tags) > 0 {
			sb.WriteString(strings.Join(section.Tags, ", "))
			sb.WriteString("\n")
		}
		for _, item := range section.Items {
			sb.WriteString("- ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
