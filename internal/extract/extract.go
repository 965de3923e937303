// Package extract flattens a document's structural content tree into plain
// text.
//
// Paragraphs become lines; tables become delimited regions so downstream
// consumers can still detect tabular data inside otherwise-flat text.
// Extraction is pure: identical input produces byte-identical output.
package extract

import (
	"strings"

	"github.com/jpl-au/docbridge/internal/gdocs"
)

// Table region markers. Kept on their own lines so the region is detectable
// with a line scan.
const (
	TableOpen  = "[TABLE]"
	TableClose = "[/TABLE]"
)

const cellSeparator = " | "

// Text flattens a document into plain text. Element kinds other than
// paragraph and table are skipped so unknown structure never aborts
// extraction. The result is trimmed of leading and trailing whitespace.
func Text(doc *gdocs.Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	writeElements(&b, doc.Body.Content)
	return strings.TrimSpace(b.String())
}

func writeElements(b *strings.Builder, elements []gdocs.StructuralElement) {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			writeParagraph(b, el.Paragraph)
		case el.Table != nil:
			writeTable(b, el.Table)
		}
	}
}

// writeParagraph concatenates the paragraph's runs and terminates the line.
// The Docs API includes the paragraph's terminal newline inside the last
// run; trimming it first keeps the output at exactly one line break per
// paragraph for both shapes of input.
func writeParagraph(b *strings.Builder, p *gdocs.Paragraph) {
	var text strings.Builder
	for _, el := range p.Elements {
		if el.TextRun != nil {
			text.WriteString(el.TextRun.Content)
		}
	}
	b.WriteString(strings.TrimSuffix(text.String(), "\n"))
	b.WriteString("\n")
}

// writeTable renders rows as cell texts joined by the column separator,
// wrapped in the table markers with a blank line before the region.
func writeTable(b *strings.Builder, t *gdocs.Table) {
	b.WriteString("\n")
	b.WriteString(TableOpen)
	b.WriteString("\n")
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cellText(cell))
		}
		b.WriteString(strings.Join(cells, cellSeparator))
		b.WriteString("\n")
	}
	b.WriteString(TableClose)
	b.WriteString("\n")
}

// cellText extracts a cell's nested content with the same element rules and
// trims it, so multi-paragraph cells collapse cleanly into one column value.
func cellText(cell gdocs.TableCell) string {
	var b strings.Builder
	writeElements(&b, cell.Content)
	return strings.TrimSpace(b.String())
}
