// Package export renders pipeline output into downloadable documents.
// Language models answer in loose markdown, so the DOCX writer understands
// just enough of it (headings, bullets, numbered points, bold runs) to
// produce something readable in a word processor.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	bodyFont  = "Calibri"
	bodySize  = 11
	titleSize = 16
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[-*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// MarkdownDocx writes a DOCX file at path containing the given markdown
// under a bold title line. Unrecognized markdown falls back to plain
// paragraphs rather than failing the export.
func MarkdownDocx(title, markdown, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	if title != "" {
		writeRun(doc.AddParagraph(""), title, true, titleSize)
		doc.AddParagraph("")
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			writeRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			writeInline(doc.AddParagraph(""), "• "+m[1])
			continue
		}
		if reNumbered.MatchString(trimmed) {
			writeInline(doc.AddParagraph(""), trimmed)
			continue
		}
		writeInline(doc.AddParagraph(""), trimmed)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 15
	case 2:
		return 13
	case 3:
		return 12
	default:
		return bodySize
	}
}

func writeRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInlineMarks(text)).Font(bodyFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// writeInline splits a line on **bold** spans so emphasis survives into the
// document instead of showing up as literal asterisks.
func writeInline(p *docx.Paragraph, text string) {
	plain := reBold.Split(text, -1)
	bold := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range plain {
		if part != "" {
			p.AddText(stripInlineMarks(part)).Font(bodyFont).Size(bodySize).Color("000000")
		}
		if i < len(bold) {
			p.AddText(stripInlineMarks(bold[i][1])).Font(bodyFont).Size(bodySize).Color("000000").Bold(true)
		}
	}
}

func stripInlineMarks(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
