package podcast

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	notesFontName = "Times New Roman"
	notesFontSize = 13
)

// writeShowNotes writes the flat-text show notes file that the web
// listing parses for title and date.
func writeShowNotes(p Podcast, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "PODCAST: %s\n", p.Title)
	fmt.Fprintf(&b, "Generated: %s\n\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "INTRO: %s\n", p.Intro)
	b.WriteString("KEY POINTS:\n")

	for i, kp := range p.KeyPoints {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, kp.Title)
		fmt.Fprintf(&b, "   %s\n", kp.Text)
	}

	fmt.Fprintf(&b, "\nOUTRO: %s\n", p.Outro)
	if p.AudioFile != "" {
		fmt.Fprintf(&b, "\nFULL PODCAST AUDIO: %s\n", p.AudioFile)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write show notes: %w", err)
	}
	return nil
}

// writeShowNotesDocx renders the same show notes as a styled document
// for sharing with meeting participants.
func writeShowNotesDocx(p Podcast, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), p.Title, true, 16)
	addStyledRun(doc.AddParagraph(""), "Generated "+p.CreatedAt.Format("2006-01-02 15:04"), false, notesFontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Introduction", true, 14)
	addStyledRun(doc.AddParagraph(""), p.Intro, false, notesFontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Key Points", true, 14)
	for i, kp := range p.KeyPoints {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, kp.Title), true, notesFontSize)
		addStyledRun(doc.AddParagraph(""), kp.Text, false, notesFontSize)
	}
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Outro", true, 14)
	addStyledRun(doc.AddParagraph(""), p.Outro, false, notesFontSize)

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addStyledRun(par *docx.Paragraph, text string, bold bool, size uint64) {
	run := par.AddText(text).Font(notesFontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
