package pagination

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Block is one positioned run of wrapped text lines on a page. X and Y are
// the top-left corner of the first line, in points from the page's top-left.
type Block struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Style  TextStyle `json:"style"`
	Lines  []string  `json:"lines"`
	Bullet bool      `json:"bullet,omitempty"`
}

// Page is one fixed-size page of positioned blocks. Overflow marks a page
// whose content exceeds the nominal vertical bound: a cosmetic defect that
// is rendered anyway, never an error.
type Page struct {
	Number   int     `json:"number"`
	Blocks   []Block `json:"blocks"`
	Overflow bool    `json:"overflow,omitempty"`
}

// Renderer lays a resume onto pages using an injected text measurement
// capability.
type Renderer struct {
	metrics FontMetrics
}

// NewRenderer creates a paginated renderer. A nil metrics argument selects
// the built-in Helvetica approximation.
func NewRenderer(metrics FontMetrics) *Renderer {
	if metrics == nil {
		metrics = HelveticaMetrics{}
	}
	return &Renderer{metrics: metrics}
}

// Render lays out the resume and returns the ordered page sequence. The
// input snapshot is never mutated, and rendering never fails: content that
// cannot fit an empty page overflows the nominal bound instead.
func (r *Renderer) Render(data *types.ResumeData) []Page {
	l := &layout{metrics: r.metrics, y: Margin, pageNumber: 1}

	l.renderHeader(data.PersonalInfo)
	l.renderSummary(data)
	l.renderExperience(data)
	l.renderEducation(data)
	l.renderSkills(data)
	l.renderCertifications(data)

	return l.finish()
}

// layout tracks the running vertical cursor and accumulates pages.
type layout struct {
	metrics    FontMetrics
	pages      []Page
	blocks     []Block
	y          float64
	pageNumber int
	overflow   bool
}

func (l *layout) remaining() float64 {
	return ContentBottom - l.y
}

func (l *layout) hasContent() bool {
	return len(l.blocks) > 0
}

// breakPage closes the current page and starts the next one with the cursor
// reset to the top margin.
func (l *layout) breakPage() {
	l.pages = append(l.pages, Page{Number: l.pageNumber, Blocks: l.blocks, Overflow: l.overflow})
	l.pageNumber++
	l.blocks = nil
	l.y = Margin
	l.overflow = false
}

// ensure guarantees that height points are available on the current page,
// breaking to a new page when the current one already has content. On an
// empty page the content is placed regardless; the overflow flag is raised
// by place when it spills past the bound.
func (l *layout) ensure(height float64) {
	if height > l.remaining() && l.hasContent() {
		l.breakPage()
	}
}

// place appends a block at the cursor and advances it. Content spilling
// past the nominal bound marks the page as overflowing.
func (l *layout) place(x float64, lines []string, style TextStyle, bullet bool) {
	if len(lines) == 0 {
		return
	}
	height := float64(len(lines)) * style.LineHeight()
	if l.y+height > ContentBottom {
		l.overflow = true
	}
	l.blocks = append(l.blocks, Block{X: x, Y: l.y, Style: style, Lines: lines, Bullet: bullet})
	l.y += height
}

// placeFlow places lines one at a time, breaking pages between lines as
// needed. Used for content with no atomicity requirement, like the summary
// paragraph and the skills row.
func (l *layout) placeFlow(x float64, lines []string, style TextStyle) {
	for _, line := range lines {
		l.ensure(style.LineHeight())
		l.place(x, []string{line}, style, false)
	}
}

// sectionHeader places a section header, breaking to a new page first when
// the header plus at least one following line would not fit: headers are
// never orphaned at the bottom of a page.
func (l *layout) sectionHeader(title string, followHeight float64) {
	need := StyleHeader.LineHeight() + gapAfterHeader + followHeight
	l.ensure(need)
	l.place(Margin, []string{title}, StyleHeader, false)
	l.y += gapAfterHeader
}

func (l *layout) endSection() {
	l.y += gapAfterSection
}

func (l *layout) wrap(text string, style TextStyle, width float64) []string {
	return wrapText(text, style, width, l.metrics)
}

// placeHeadingWithDate places a bold heading at the left margin and a
// right-aligned date range on the same baseline.
func (l *layout) placeHeadingWithDate(heading, date string) {
	startY := l.y
	headingLines := l.wrap(heading, StyleHeading, ContentWidth)
	if len(headingLines) == 0 {
		headingLines = []string{""}
	}
	l.place(Margin, headingLines, StyleHeading, false)
	if date != "" {
		dateX := PageWidth - Margin - l.metrics.LineWidth(date, StyleSubtitle)
		l.blocks = append(l.blocks, Block{X: dateX, Y: startY, Style: StyleSubtitle, Lines: []string{date}})
	}
}

func (l *layout) renderHeader(info types.PersonalInfo) {
	if name := strings.TrimSpace(info.FullName); name != "" {
		l.place(Margin, l.wrap(name, StyleName, ContentWidth), StyleName, false)
		l.y += gapAfterName
	}
	if contact := info.ContactLine(); contact != "" {
		l.place(Margin, l.wrap(contact, StyleContact, ContentWidth), StyleContact, false)
	}
	if l.hasContent() {
		l.y += gapAfterContact
	}
}

func (l *layout) renderSummary(data *types.ResumeData) {
	if !data.HasSummary() {
		return
	}
	l.sectionHeader(types.SectionSummary, StyleBody.LineHeight())
	l.placeFlow(Margin, l.wrap(data.Summary, StyleBody, ContentWidth), StyleBody)
	l.endSection()
}

func (l *layout) renderExperience(data *types.ResumeData) {
	if !data.HasExperiences() {
		return
	}
	// The first entry's heading and company line are placed atomically, so
	// the header must reserve room for both to avoid being orphaned.
	l.sectionHeader(types.SectionExperience, StyleHeading.LineHeight()+StyleSubtitle.LineHeight())

	for _, exp := range data.Experiences {
		if exp.IsEmpty() {
			continue
		}

		// Entry heading and company line stay together.
		l.ensure(StyleHeading.LineHeight() + StyleSubtitle.LineHeight())
		l.placeHeadingWithDate(exp.Position, exp.DateRange())
		if strings.TrimSpace(exp.Company) != "" {
			l.place(Margin, []string{exp.Company}, StyleSubtitle, false)
		}

		// Each responsibility bullet is atomic: its wrapped lines share one
		// page. Distinct bullets of the same entry may land on different pages.
		for _, resp := range types.NonBlank(exp.Responsibilities) {
			lines := l.wrap(resp, StyleBody, ContentWidth-bulletIndent)
			l.ensure(float64(len(lines)) * StyleBody.LineHeight())
			l.place(Margin+bulletIndent, lines, StyleBody, true)
		}

		l.y += gapAfterEntry
	}
	l.endSection()
}

func (l *layout) renderEducation(data *types.ResumeData) {
	if !data.HasEducation() {
		return
	}
	l.sectionHeader(types.SectionEducation, StyleHeading.LineHeight()+StyleSubtitle.LineHeight())

	for _, edu := range data.Education {
		if edu.IsEmpty() {
			continue
		}
		// Education entries are short; keep each one whole.
		l.ensure(StyleHeading.LineHeight() + StyleSubtitle.LineHeight())
		l.placeHeadingWithDate(edu.Degree, edu.YearRange())
		if line := edu.InstitutionLine(); line != "" {
			l.place(Margin, []string{line}, StyleSubtitle, false)
		}
		l.y += gapAfterEntry
	}
	l.endSection()
}

func (l *layout) renderSkills(data *types.ResumeData) {
	skills := types.NonBlank(data.Skills)
	if len(skills) == 0 {
		return
	}
	l.sectionHeader(types.SectionSkills, StyleBody.LineHeight())
	l.placeFlow(Margin, l.wrap(strings.Join(skills, types.ContactSeparator), StyleBody, ContentWidth), StyleBody)
	l.endSection()
}

func (l *layout) renderCertifications(data *types.ResumeData) {
	certs := types.NonBlank(data.Certifications)
	if len(certs) == 0 {
		return
	}
	l.sectionHeader(types.SectionCertifications, StyleBody.LineHeight())
	for _, cert := range certs {
		lines := l.wrap(cert, StyleBody, ContentWidth-bulletIndent)
		l.ensure(float64(len(lines)) * StyleBody.LineHeight())
		l.place(Margin+bulletIndent, lines, StyleBody, true)
	}
	l.endSection()
}

// finish closes the trailing page and returns the sequence. Even an empty
// resume yields one page.
func (l *layout) finish() []Page {
	l.pages = append(l.pages, Page{Number: l.pageNumber, Blocks: l.blocks, Overflow: l.overflow})
	return l.pages
}
