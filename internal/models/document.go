package models

// HintKind names a structural cue supplied by the extraction collaborator.
type HintKind string

const (
	HintHeading   HintKind = "heading"
	HintBullet    HintKind = "bullet"
	HintTableCell HintKind = "table_cell"
)

// Hint marks a byte range of RawDocument.Text with a structural kind.
type Hint struct {
	Start int      `json:"start_offset"`
	End   int      `json:"end_offset"`
	Kind  HintKind `json:"kind"`
}

// RawDocument is already-extracted text plus the extractor's structural hints.
type RawDocument struct {
	ID       string
	URL      string
	Title    string
	Text     string
	Hints    []Hint
	Metadata map[string]interface{}
}

// Chunk is one normalized unit of source text: a sentence, heading, bullet or table row.
type Chunk struct {
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index"`
	Section    int    `json:"section"`
	IsHeading  bool   `json:"is_heading"`
	IsBullet   bool   `json:"is_bullet"`
	IsTableRow bool   `json:"is_table_row"`
}

// Document is the per-run chunk collection. Concepts and questions refer
// into it by OrderIndex, never by pointer.
type Document struct {
	ID     string
	Seed   uint64
	Chunks []Chunk
}

// Chunk returns the chunk with the given order index.
func (d Document) Chunk(orderIndex int) (Chunk, bool) {
	if orderIndex < 0 || orderIndex >= len(d.Chunks) {
		return Chunk{}, false
	}
	return d.Chunks[orderIndex], true
}

// Empty reports whether the document produced no chunks.
func (d Document) Empty() bool {
	return len(d.Chunks) == 0
}
