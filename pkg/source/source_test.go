package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/processor"
	"github.com/xhad/textotest/pkg/source"
)

type hinted struct {
	Kind models.HintKind
	Text string
}

func hints(raw models.RawDocument) []hinted {
	out := make([]hinted, 0, len(raw.Hints))
	for _, h := range raw.Hints {
		out = append(out, hinted{Kind: h.Kind, Text: raw.Text[h.Start:h.End]})
	}
	return out
}

const notes = `# Photosynthesis

Plants convert light into energy.

- Chlorophyll absorbs light.
• Oxygen is released.

| Element | Symbol |
|---------|--------|
| Iron    | Fe     |

CHAPTER SUMMARY
1. Introduction
2. Glucose stores chemical energy.
Chapter 3 Respiration
Title: Cells`

func TestFromText(t *testing.T) {
	raw := source.FromText(notes)

	assert.Equal(t, []hinted{
		{models.HintHeading, "Photosynthesis"},
		{models.HintBullet, "Chlorophyll absorbs light."},
		{models.HintBullet, "Oxygen is released."},
		{models.HintTableCell, "Element"},
		{models.HintTableCell, "Symbol"},
		{models.HintTableCell, "Iron"},
		{models.HintTableCell, "Fe"},
		{models.HintHeading, "CHAPTER SUMMARY"},
		{models.HintHeading, "1. Introduction"},
		{models.HintBullet, "Glucose stores chemical energy."},
		{models.HintHeading, "Chapter 3 Respiration"},
		{models.HintHeading, "Cells"},
	}, hints(raw))
	assert.NotContains(t, raw.Text, "# ")
	assert.NotContains(t, raw.Text, "---")
}

func TestFromText_Normalized(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})
	doc := p.Normalize(source.FromText(notes))

	var texts []string
	for _, c := range doc.Chunks {
		texts = append(texts, c.Text)
	}
	assert.Contains(t, texts, "Iron | Fe")
	assert.Contains(t, texts, "Plants convert light into energy.")

	first, ok := doc.Chunk(0)
	require.True(t, ok)
	assert.True(t, first.IsHeading)
	assert.Equal(t, "Photosynthesis", first.Text)
}

func TestFromText_TabTable(t *testing.T) {
	raw := source.FromText("Planet\tMoons\nMars\t2\n")

	assert.Equal(t, []hinted{
		{models.HintTableCell, "Planet"},
		{models.HintTableCell, "Moons"},
		{models.HintTableCell, "Mars"},
		{models.HintTableCell, "2"},
	}, hints(raw))
}

const page = `<html>
<head><title>Cell Biology</title><style>p { color: red; }</style></head>
<body>
  <nav><a href="/">Home</a> Privacy Policy</nav>
  <main>
    <h1>The Cell</h1>
    <p>Mitochondria produce energy for the cell.</p>
    <ul>
      <li>Ribosomes build proteins.
        <ul><li>Free ribosomes float in the cytoplasm.</li></ul>
      </li>
    </ul>
    <table>
      <tr><th>Organelle</th><th>Role</th></tr>
      <tr><td>Nucleus</td><td>Stores DNA</td></tr>
    </table>
    <script>var x = 1;</script>
  </main>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	raw, err := source.FromHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Cell Biology", raw.Title)
	assert.Equal(t, []hinted{
		{models.HintHeading, "The Cell"},
		{models.HintBullet, "Ribosomes build proteins."},
		{models.HintBullet, "Free ribosomes float in the cytoplasm."},
		{models.HintTableCell, "Organelle"},
		{models.HintTableCell, "Role"},
		{models.HintTableCell, "Nucleus"},
		{models.HintTableCell, "Stores DNA"},
	}, hints(raw))
	assert.Contains(t, raw.Text, "Mitochondria produce energy for the cell.")
	assert.NotContains(t, raw.Text, "var x")
	assert.NotContains(t, raw.Text, "Home")
}

func TestFromHTML_PlainBody(t *testing.T) {
	raw, err := source.FromHTML(strings.NewReader("<html><body><div>Just   some text.</div></body></html>"))
	require.NoError(t, err)
	assert.Equal(t, "Just some text.", raw.Text)
	assert.Empty(t, raw.Hints)
}

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/": `<html><head><title>Home</title></head><body><main>
			<p>Start page.</p>
			<a href="/page2.html">Two</a>
			<a href="/docs/intro">Intro</a>
			<a href="/file.pdf">PDF</a>
			<a href="/ignore/secret.html">Hidden</a>
			<a href="http://other.example/page.html">Elsewhere</a>
		</main></body></html>`,
		"/page2.html": `<html><body><main><p>Second page.</p><a href="/page3.html">Three</a></main></body></html>`,
		"/docs/intro": `<html><body><main><p>Intro page.</p></main></body></html>`,
		"/page3.html": `<html><body><main><p>Too deep.</p></main></body></html>`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetcher_Crawl(t *testing.T) {
	server := newSite(t)

	var progress []string
	f := source.NewWithConfig(source.FetcherConfig{
		MaxDepth:       1,
		RateLimit:      100,
		IgnorePatterns: []string{"/ignore/"},
		OnProgress:     func(u string) { progress = append(progress, u) },
	})

	docs, err := f.Crawl(context.Background(), server.URL+"/")
	require.NoError(t, err)

	var urls []string
	for _, d := range docs {
		urls = append(urls, d.URL)
	}
	assert.Equal(t, []string{
		server.URL + "/",
		server.URL + "/page2.html",
		server.URL + "/docs/intro",
	}, urls)
	assert.Equal(t, urls, progress)
	assert.Equal(t, "Home", docs[0].Title)
	assert.Equal(t, 1, docs[1].Metadata["depth"])
}

func TestFetcher_Fetch(t *testing.T) {
	server := newSite(t)
	f := source.NewWithConfig(source.FetcherConfig{RateLimit: 100})

	raw, err := f.Fetch(context.Background(), server.URL+"/page2.html")
	require.NoError(t, err)
	assert.Contains(t, raw.Text, "Second page.")
	assert.Equal(t, "text/html", raw.Metadata["contentType"])

	_, err = f.Fetch(context.Background(), server.URL+"/missing.html")
	assert.ErrorContains(t, err, "received status code 404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, server.URL+"/page2.html")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "notes.md")
	htmlPath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(textPath, []byte(notes), 0o644))
	require.NoError(t, os.WriteFile(htmlPath, []byte(page), 0o644))

	f := source.NewWithConfig(source.FetcherConfig{})

	docs, err := source.Load(context.Background(), f, textPath)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes", docs[0].Title)
	assert.Equal(t, textPath, docs[0].URL)
	assert.NotEmpty(t, docs[0].Hints)

	docs, err = source.Load(context.Background(), f, htmlPath)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Cell Biology", docs[0].Title)

	_, err = source.Load(context.Background(), f, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
