package storage

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// writeShowNotes renders a styled docx companion document listing the
// podcast's segments and their summaries.
func writeShowNotes(manifest Manifest, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), manifest.Title, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Generated %s  |  %.0f seconds  |  voice: %s, style: %s",
		manifest.CreatedAt.Format("2006-01-02 15:04"), manifest.DurationSec, manifest.Voice, manifest.Style), false, fontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Segments", true, 15)
	for _, e := range manifest.Entries {
		line := fmt.Sprintf("%d. [%s - %s] %s", e.Rank, formatTimestamp(e.SourceStart), formatTimestamp(e.SourceEnd), e.Summary)
		if e.Degraded {
			line += " (original audio)"
		}
		addStyledRun(doc.AddParagraph(""), line, false, fontSize)
	}

	if len(manifest.FailedSegments) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Segments without narration", true, 15)
		for _, id := range manifest.FailedSegments {
			addStyledRun(doc.AddParagraph(""), "- "+id, false, fontSize)
		}
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func formatTimestamp(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
