package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xhad/textotest/internal/models"
)

// Load reads an input named on the command line: an http(s) URL, an HTML
// file, "-" for stdin, or any other file as plain text.
func Load(ctx context.Context, f *Fetcher, input string) ([]models.RawDocument, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return f.Crawl(ctx, input)
	}

	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", input, err)
	}

	var raw models.RawDocument
	switch strings.ToLower(filepath.Ext(input)) {
	case ".html", ".htm":
		raw, err = FromHTML(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	default:
		raw = FromText(string(data))
	}
	if raw.Title == "" && input != "-" {
		raw.Title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	raw.URL = input
	return []models.RawDocument{raw}, nil
}
