package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/xhad/textotest/internal/models"
)

type quizOutput struct {
	ID         string             `json:"id"`
	Title      string             `json:"title,omitempty"`
	Source     string             `json:"source,omitempty"`
	DocumentID string             `json:"document_id"`
	Request    models.QuizRequest `json:"request"`
	Questions  []models.Record    `json:"questions"`
}

func renderJSON(w io.Writer, results []result) error {
	out := make([]quizOutput, 0, len(results))
	for _, r := range results {
		out = append(out, quizOutput{
			ID:         r.Quiz.ID,
			Title:      r.Title,
			Source:     r.URL,
			DocumentID: r.Quiz.DocumentID,
			Request:    r.Quiz.Request,
			Questions:  r.Quiz.Records(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode quizzes: %v", err)
	}
	return nil
}

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	stemColor   = color.New(color.Bold)
	answerColor = color.New(color.FgGreen)
	metaColor   = color.New(color.FgHiBlack)
)

func renderText(w io.Writer, results []result) {
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		titleColor.Fprintf(w, "\n%s\n", title)
		metaColor.Fprintf(w, "quiz %s, %d questions\n", r.Quiz.ID, r.Quiz.Len())

		if r.Quiz.Len() == 0 {
			color.New(color.FgYellow).Fprintln(w, "No questions could be generated from this document.")
			continue
		}

		for _, rec := range r.Quiz.Records() {
			renderRecord(w, rec)
		}
	}
}

func renderRecord(w io.Writer, rec models.Record) {
	stemColor.Fprintf(w, "\n%d. %s\n", rec.Number, rec.Stem)
	metaColor.Fprintf(w, "   [%s, %s, %s, %d pt]\n", rec.Type, rec.Difficulty, rec.Category, rec.Points)

	switch {
	case len(rec.LeftItems) > 0:
		for i := 0; i < max(len(rec.LeftItems), len(rec.RightItems)); i++ {
			left, right := "", ""
			if i < len(rec.LeftItems) {
				left = rec.LeftItems[i]
			}
			if i < len(rec.RightItems) {
				right = rec.RightItems[i]
			}
			fmt.Fprintf(w, "   %d) %-24s %c) %s\n", i+1, left, 'a'+i, right)
		}
	case len(rec.Options) > 0:
		for i, opt := range rec.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'A'+i, opt)
		}
	}

	answerColor.Fprintf(w, "   Answer: %s\n", strings.TrimSpace(rec.Answer))
}
