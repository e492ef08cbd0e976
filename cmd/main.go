package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/internal/types"
	"github.com/xhad/textotest/pkg/archive"
	cfgPkg "github.com/xhad/textotest/pkg/config"
	"github.com/xhad/textotest/pkg/llm"
	"github.com/xhad/textotest/pkg/logger"
	"github.com/xhad/textotest/pkg/quiz"
	"github.com/xhad/textotest/pkg/source"
	"github.com/xhad/textotest/pkg/store"
)

type inputList []string

func (l *inputList) String() string { return strings.Join(*l, ",") }

func (l *inputList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type Config struct {
	ConfigPath  string
	Inputs      inputList
	Type        string
	Difficulty  string
	Count       int
	Embed       bool
	DBUrl       string
	ArchivePath string
	JSON        bool
	IndexTerms  string
	MaxDepth    int
	Parallel    int
	LogMode     string
}

func main() {
	config := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	var config Config

	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file")
	flag.Var(&config.Inputs, "input", "Text, markdown or HTML file, URL, or - for stdin (repeatable)")
	flag.StringVar(&config.Type, "type", "mixed", "Question type: multiple_choice, true_false, fill_blank, short_answer, matching or mixed")
	flag.StringVar(&config.Difficulty, "difficulty", "", "Only keep questions of this difficulty: easy, medium or hard")
	flag.IntVar(&config.Count, "count", 10, "Number of questions per document")
	flag.BoolVar(&config.Embed, "embed", false, "Rank distractors with the embedding model")
	flag.StringVar(&config.DBUrl, "db-url", "", "PostgreSQL connection string for the shared term corpus")
	flag.StringVar(&config.ArchivePath, "archive", "", "SQLite file to save generated quizzes to")
	flag.BoolVar(&config.JSON, "json", false, "Print quizzes as JSON records")
	flag.StringVar(&config.IndexTerms, "index-terms", "", "File of corpus terms (term[,category] per line) to embed and store")
	flag.IntVar(&config.MaxDepth, "max-depth", 0, "Maximum link depth when the input is a URL")
	flag.IntVar(&config.Parallel, "parallel", 4, "Documents processed at once")
	flag.StringVar(&config.LogMode, "log", "", "Log mode: quiet, dev or prod")
	flag.Parse()

	config.Inputs = append(config.Inputs, flag.Args()...)
	return config
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// result is one generated quiz and the document it came from.
type result struct {
	Title string
	URL   string
	Quiz  models.Quiz
}

func run(ctx context.Context, config Config) error {
	cfg, err := cfgPkg.LoadConfig(config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}
	if config.DBUrl != "" {
		cfg.Database.URL = config.DBUrl
	}
	if config.ArchivePath != "" {
		cfg.Archive.Path = config.ArchivePath
	}
	if config.LogMode != "" {
		cfg.Log.Mode = config.LogMode
	}
	if config.Embed {
		cfg.Embedding.Enabled = true
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	var embedder types.Embedder
	if cfg.Embedding.Enabled {
		emb, err := llm.InitShared(llm.EmbedderConfig{
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			RateLimit: cfg.Embedding.RateLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize embedder: %v", err)
		}
		defer llm.CloseShared()
		embedder = emb
	}

	var corpus types.NearestIndex
	var vectorStore *store.VectorStore
	if cfg.Database.URL != "" {
		vectorStore, err = store.NewWithConfig(ctx, store.VectorStoreConfig{
			ConnString:  cfg.Database.URL,
			TableName:   cfg.Database.TableName,
			VectorDim:   cfg.Database.VectorDim,
			SearchLimit: cfg.Database.SearchLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize vector store: %v", err)
		}
		defer vectorStore.Close()
		corpus = vectorStore
	}

	if config.IndexTerms != "" {
		if embedder == nil || vectorStore == nil {
			return errors.New("-index-terms needs -embed and a database URL")
		}
		if err := indexTerms(ctx, config.IndexTerms, embedder, vectorStore); err != nil {
			return err
		}
		if len(config.Inputs) == 0 {
			return nil
		}
	}

	if len(config.Inputs) == 0 {
		flag.Usage()
		return errors.New("no input given")
	}

	req, err := quiz.Validate(models.QuizRequest{
		QuestionType: models.QuestionType(config.Type),
		Difficulty:   models.Difficulty(config.Difficulty),
		Count:        config.Count,
	})
	if err != nil {
		return err
	}

	pipeline := quiz.NewFromConfig(cfg, embedder, corpus, log)
	results, err := generate(ctx, config, pipeline, req, log)
	if err != nil {
		return err
	}

	if cfg.Archive.Path != "" {
		if err := save(ctx, cfg.Archive.Path, results); err != nil {
			return err
		}
	}

	if config.JSON {
		return renderJSON(os.Stdout, results)
	}
	renderText(os.Stdout, results)
	return nil
}

func generate(ctx context.Context, config Config, pipeline *quiz.Pipeline, req models.QuizRequest, log *logger.Logger) ([]result, error) {
	var fetched int32
	fetcher := source.NewWithConfig(source.FetcherConfig{
		MaxDepth: config.MaxDepth,
		OnProgress: func(url string) {
			atomic.AddInt32(&fetched, 1)
		},
	})

	spinner := getSpinner("Generating quizzes...")
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if n := atomic.LoadInt32(&fetched); n > 0 {
					spinner.Describe(color.CyanString("Generating quizzes... (%d pages fetched)", n))
				}
				spinner.Add(1)
			}
		}
	}()

	perInput := make([][]result, len(config.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Parallel, 1))
	for i, input := range config.Inputs {
		g.Go(func() error {
			docs, err := source.Load(gctx, fetcher, input)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", input, err)
			}
			for _, raw := range docs {
				q, err := pipeline.Generate(gctx, raw, req)
				if err != nil {
					return fmt.Errorf("failed to generate quiz for %s: %w", raw.URL, err)
				}
				log.Info("generated quiz", "input", raw.URL, "quiz_id", q.ID, "questions", q.Len())
				perInput[i] = append(perInput[i], result{Title: raw.Title, URL: raw.URL, Quiz: q})
			}
			return nil
		})
	}
	err := g.Wait()

	close(done)
	spinner.Finish()
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, err
	}

	var results []result
	for _, rs := range perInput {
		results = append(results, rs...)
	}
	return results, nil
}

func save(ctx context.Context, path string, results []result) error {
	db, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, r := range results {
		if err := db.SaveQuiz(ctx, r.Quiz, r.Title); err != nil {
			return err
		}
	}
	color.Green("✓ Saved %d quizzes to %s", len(results), path)
	return nil
}

// indexTerms embeds each term in path and upserts it into the shared corpus.
func indexTerms(ctx context.Context, path string, embedder types.Embedder, vs *store.VectorStore) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	var terms []store.Term
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		text, category, _ := strings.Cut(line, ",")
		terms = append(terms, store.Term{Text: strings.TrimSpace(text), Category: strings.TrimSpace(category)})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %v", path, err)
	}

	bar := progressbar.NewOptions(len(terms),
		progressbar.OptionSetDescription(color.BlueString("Indexing terms...")),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	const batchSize = 64
	for start := 0; start < len(terms); start += batchSize {
		batch := terms[start:min(start+batchSize, len(terms))]
		texts := make([]string, len(batch))
		for i, t := range batch {
			texts[i] = t.Text
		}

		vectors, err := embedder.CreateEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed terms: %w", err)
		}
		if err := vs.Store(ctx, batch, vectors); err != nil {
			return err
		}
		bar.Add(len(batch))
	}
	bar.Finish()

	count, err := vs.Count(ctx)
	if err != nil {
		return err
	}
	color.Green("\n✓ Indexed %d terms (%d in corpus)", len(terms), count)
	return nil
}
