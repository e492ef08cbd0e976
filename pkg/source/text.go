// Package source turns plain text, markdown-ish notes and HTML pages into
// raw documents with structural hints for the normalizer.
package source

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/xhad/textotest/internal/models"
)

var (
	markdownHeading = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	titleLine       = regexp.MustCompile(`(?i)^title:\s*(.+)$`)
	chapterHeading  = regexp.MustCompile(`(?i)^(chapter|section|unit|lesson|part|module)\s+([0-9]+|[ivxlc]+)\b`)
	numberedHeading = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\p{Lu}`)
	symbolBullet    = regexp.MustCompile(`^[•◦▪‣●○■□➢➤*+\-]\s+(.+)$`)
	listItem        = regexp.MustCompile(`^(\d+|[a-zA-Z])[.)]\s+(.+)$`)
	tableRule       = regexp.MustCompile(`^\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?$`)
)

// maxHeadingWords bounds how long an unmarked line may be and still read as
// a heading.
const maxHeadingWords = 10

type builder struct {
	text  strings.Builder
	hints []models.Hint
}

func (b *builder) line(s string, kind models.HintKind) {
	start := b.text.Len()
	b.text.WriteString(s)
	if kind != "" {
		b.hints = append(b.hints, models.Hint{Start: start, End: b.text.Len(), Kind: kind})
	}
	b.text.WriteByte('\n')
}

func (b *builder) cells(cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.text.WriteByte('\t')
		}
		start := b.text.Len()
		b.text.WriteString(c)
		b.hints = append(b.hints, models.Hint{Start: start, End: b.text.Len(), Kind: models.HintTableCell})
	}
	b.text.WriteByte('\n')
}

// FromText derives hints from line shapes: markdown headings, ALL CAPS and
// numbered headings, Chapter/Section lines, Title: lines, list bullets and
// pipe or tab separated table rows. Markers are removed from the text.
func FromText(text string) models.RawDocument {
	var b builder
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			b.line("", "")
		case tableRule.MatchString(line):
		case markdownHeading.MatchString(line):
			b.line(markdownHeading.FindStringSubmatch(line)[1], models.HintHeading)
		case titleLine.MatchString(line):
			b.line(titleLine.FindStringSubmatch(line)[1], models.HintHeading)
		case isTableRow(line):
			b.cells(splitRow(line))
		case symbolBullet.MatchString(line):
			b.line(symbolBullet.FindStringSubmatch(line)[1], models.HintBullet)
		case isHeading(line):
			b.line(line, models.HintHeading)
		case listItem.MatchString(line):
			b.line(listItem.FindStringSubmatch(line)[2], models.HintBullet)
		default:
			b.line(line, "")
		}
	}

	return models.RawDocument{
		Text:  b.text.String(),
		Hints: b.hints,
	}
}

func isHeading(line string) bool {
	if len(strings.Fields(line)) > maxHeadingWords || strings.ContainsAny(line[len(line)-1:], ".!?,;") {
		return false
	}
	if chapterHeading.MatchString(line) || numberedHeading.MatchString(line) {
		return true
	}
	return allCaps(line)
}

func allCaps(line string) bool {
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 3
}

func isTableRow(line string) bool {
	if strings.Contains(line, "\t") {
		return len(splitRow(line)) >= 2
	}
	return strings.Count(line, "|") >= 2 && len(splitRow(line)) >= 2
}

func splitRow(line string) []string {
	sep := "|"
	if !strings.Contains(line, "|") {
		sep = "\t"
	}
	var cells []string
	for _, c := range strings.Split(strings.Trim(line, "|"), sep) {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}
