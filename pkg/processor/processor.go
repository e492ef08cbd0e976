package processor

import (
	"fmt"
	"hash/fnv"
	"iter"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/xhad/textotest/internal/models"
)

type ProcessorConfig struct {
	MinChunkLength  int
	Abbreviations   []string
	KeepBoilerplate bool
}

type Processor struct {
	config        ProcessorConfig
	abbreviations map[string]bool
}

func NewWithConfig(config ProcessorConfig) Processor {
	if config.MinChunkLength == 0 {
		config.MinChunkLength = 2
	}

	abbreviations := make(map[string]bool)
	for _, a := range defaultAbbreviations() {
		abbreviations[a] = true
	}
	for _, a := range config.Abbreviations {
		abbreviations[strings.ToLower(strings.TrimSuffix(a, "."))] = true
	}

	return Processor{
		config:        config,
		abbreviations: abbreviations,
	}
}

type regionKind int

const (
	kindPlain regionKind = iota
	kindHeading
	kindBullet
	kindTableRow
)

type region struct {
	text string
	kind regionKind
}

// Normalize collects Chunks into a per-run Document with a content-derived seed.
func (p *Processor) Normalize(raw models.RawDocument) models.Document {
	var chunks []models.Chunk
	for c := range p.Chunks(raw) {
		chunks = append(chunks, c)
	}

	seed := Seed(chunks)
	id := raw.ID
	if id == "" && len(chunks) > 0 {
		id = fmt.Sprintf("doc-%016x", seed)
	}

	return models.Document{
		ID:     id,
		Seed:   seed,
		Chunks: chunks,
	}
}

// Chunks returns a lazy sequence of chunks in source order. Each range over
// the sequence re-segments the input from the start.
func (p *Processor) Chunks(raw models.RawDocument) iter.Seq[models.Chunk] {
	return func(yield func(models.Chunk) bool) {
		if strings.TrimSpace(raw.Text) == "" {
			return
		}

		order, section := 0, 0
		for _, r := range p.regions(raw) {
			text := p.cleanText(r.text)
			if len(text) < p.config.MinChunkLength {
				continue
			}

			parts := []string{text}
			if r.kind == kindPlain || r.kind == kindBullet {
				parts = p.SplitSentences(text)
			}
			if r.kind == kindHeading && order > 0 {
				section++
			}

			for _, part := range parts {
				if len(part) < p.config.MinChunkLength {
					continue
				}
				chunk := models.Chunk{
					Text:       part,
					OrderIndex: order,
					Section:    section,
					IsHeading:  r.kind == kindHeading,
					IsBullet:   r.kind == kindBullet,
					IsTableRow: r.kind == kindTableRow,
				}
				order++
				if !yield(chunk) {
					return
				}
			}
		}
	}
}

// Seed hashes chunk text so identical input always yields the same seed.
func Seed(chunks []models.Chunk) uint64 {
	h := fnv.New64a()
	for _, c := range chunks {
		h.Write([]byte(c.Text))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

func (p *Processor) regions(raw models.RawDocument) []region {
	text := sanitizeUTF8(raw.Text)
	hints := validHints(raw.Hints, len(text))

	var out []region
	pos := 0
	for i := 0; i < len(hints); {
		h := hints[i]
		if h.Start > pos {
			out = append(out, plainRegions(text[pos:h.Start])...)
		}

		if h.Kind == models.HintTableCell {
			// Cells on the same line form one row.
			cells := []string{text[h.Start:h.End]}
			end := h.End
			j := i + 1
			for j < len(hints) && hints[j].Kind == models.HintTableCell && !strings.Contains(text[end:hints[j].Start], "\n") {
				cells = append(cells, text[hints[j].Start:hints[j].End])
				end = hints[j].End
				j++
			}
			out = append(out, region{text: strings.Join(cells, " | "), kind: kindTableRow})
			pos, i = end, j
			continue
		}

		kind := kindBullet
		if h.Kind == models.HintHeading {
			kind = kindHeading
		}
		out = append(out, region{text: text[h.Start:h.End], kind: kind})
		pos = h.End
		i++
	}
	if pos < len(text) {
		out = append(out, plainRegions(text[pos:])...)
	}

	return out
}

// validHints clamps hints to the text, orders them and drops overlaps.
func validHints(hints []models.Hint, n int) []models.Hint {
	var valid []models.Hint
	for _, h := range hints {
		if h.Start < 0 {
			h.Start = 0
		}
		if h.End > n {
			h.End = n
		}
		if h.Start >= h.End {
			continue
		}
		switch h.Kind {
		case models.HintHeading, models.HintBullet, models.HintTableCell:
			valid = append(valid, h)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End < valid[j].End
	})

	out := valid[:0]
	end := 0
	for _, h := range valid {
		if h.Start < end {
			continue
		}
		out = append(out, h)
		end = h.End
	}
	return out
}

var paragraphBreak = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

func plainRegions(text string) []region {
	var out []region
	for _, para := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(para) == "" {
			continue
		}
		out = append(out, region{text: para, kind: kindPlain})
	}
	return out
}

var (
	pageMarker    = regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`)
	copyrightLine = regexp.MustCompile(`(?i)^\s*(copyright\s*©?|©)\s*\d{4}`)
)

func (p *Processor) cleanText(text string) string {
	text = strings.ToValidUTF8(text, " ")
	text = norm.NFKC.String(text)

	if !p.config.KeepBoilerplate {
		text = dropBoilerplate(text)
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

func dropBoilerplate(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if copyrightLine.MatchString(line) {
			continue
		}
		kept = append(kept, pageMarker.ReplaceAllString(line, " "))
	}
	return strings.Join(kept, "\n")
}

const closers = `"')]`

// SplitSentences splits collapsed text on terminal punctuation followed by
// whitespace and a sentence opener. Abbreviations, initials and decimals
// such as 3.14 never end a sentence.
func (p *Processor) SplitSentences(text string) []string {
	var sentences []string
	start := 0
	n := len(text)

	for i := 0; i < n; i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}

		j := i + 1
		for j < n && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
			j++
		}
		for j < n && strings.IndexByte(closers, text[j]) >= 0 {
			j++
		}

		if j < n {
			if text[j] != ' ' {
				i = j - 1
				continue
			}
			if c == '.' && p.isAbbreviation(text[start:i]) {
				i = j - 1
				continue
			}
			if !startsSentence(text[j+1:]) {
				i = j - 1
				continue
			}
		}

		if s := strings.TrimSpace(text[start:j]); s != "" {
			sentences = append(sentences, s)
		}
		start = j
		i = j - 1
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

func (p *Processor) isAbbreviation(before string) bool {
	word := before
	if idx := strings.LastIndexByte(before, ' '); idx >= 0 {
		word = before[idx+1:]
	}
	word = strings.TrimLeft(word, `"'([`)
	if word == "" {
		return false
	}

	// Single-letter initials: "J. K. Rowling".
	if r, size := utf8.DecodeRuneInString(word); size == len(word) && unicode.IsUpper(r) {
		return true
	}

	return p.abbreviations[strings.ToLower(word)]
}

func startsSentence(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r) || unicode.IsDigit(r) || strings.ContainsRune(`"'([`, r)
}

// sanitizeUTF8 replaces each invalid byte with a space so hint offsets stay valid.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(' ')
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func defaultAbbreviations() []string {
	return []string{
		"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs", "e.g", "i.e",
		"fig", "figs", "no", "vol", "approx", "inc", "ltd", "co", "corp", "dept",
		"est", "u.s", "u.k", "al", "cf", "ca", "ch", "sec", "eq", "pp", "jan",
		"feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	}
}
