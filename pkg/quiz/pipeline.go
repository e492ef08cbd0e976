// Package quiz wires the normalizer, extractor, template engine, distractor
// generator, classifier and assembler into one request-scoped pipeline.
//
// A Pipeline holds no per-call state. One instance may serve concurrent
// Generate calls; the embedder and corpus index it is given must be safe
// for concurrent use.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/internal/types"
	"github.com/xhad/textotest/pkg/assembler"
	"github.com/xhad/textotest/pkg/classifier"
	"github.com/xhad/textotest/pkg/config"
	"github.com/xhad/textotest/pkg/distractor"
	"github.com/xhad/textotest/pkg/extractor"
	"github.com/xhad/textotest/pkg/generator"
	"github.com/xhad/textotest/pkg/logger"
	"github.com/xhad/textotest/pkg/processor"
)

type PipelineConfig struct {
	// OptionCount is the number of options an MCQ presents, answer included.
	OptionCount int

	Normalizer types.Normalizer
	Processor  processor.ProcessorConfig
	Extractor  extractor.ExtractorConfig
	Generator  generator.GeneratorConfig
	Distractor distractor.DistractorConfig
	Classifier classifier.ClassifierConfig
	Assembler  assembler.AssemblerConfig
	Logger     *logger.Logger
}

type Pipeline struct {
	config      PipelineConfig
	normalizer  types.Normalizer
	extractor   extractor.Extractor
	generator   generator.Generator
	distractors distractor.Generator
	classifier  classifier.Classifier
	assembler   assembler.Assembler
	log         *logger.Logger
}

func NewWithConfig(config PipelineConfig) *Pipeline {
	// An MCQ needs the answer and at least one distractor.
	if config.OptionCount < 2 {
		config.OptionCount = 4
	}
	if config.Logger == nil {
		config.Logger = logger.NewNop()
	}

	normalizer := config.Normalizer
	if normalizer == nil {
		p := processor.NewWithConfig(config.Processor)
		normalizer = &p
	}

	c := classifier.NewWithConfig(config.Classifier)
	if config.Generator.Categorizer == nil {
		config.Generator.Categorizer = &c
	}
	if config.Distractor.Categorizer == nil {
		config.Distractor.Categorizer = &c
	}

	return &Pipeline{
		config:      config,
		normalizer:  normalizer,
		extractor:   extractor.NewWithConfig(config.Extractor),
		generator:   generator.NewWithConfig(config.Generator),
		distractors: distractor.NewWithConfig(config.Distractor),
		classifier:  c,
		assembler:   assembler.NewWithConfig(config.Assembler),
		log:         config.Logger,
	}
}

// NewFromConfig builds a pipeline from loaded configuration. embedder and
// corpus may be nil.
func NewFromConfig(cfg *config.Config, embedder types.Embedder, corpus types.NearestIndex, log *logger.Logger) *Pipeline {
	typeWeights := make(map[models.QuestionType]float64)
	for name, w := range cfg.Classifier.TypeWeights {
		if t, ok := models.ParseQuestionType(name); ok && t != models.Mixed {
			typeWeights[t] = w
		}
	}

	pc := PipelineConfig{
		OptionCount: cfg.Pipeline.OptionCount,
		Extractor: extractor.ExtractorConfig{
			HeadingBonus:          cfg.Weights.HeadingBonus,
			BulletBonus:           cfg.Weights.BulletBonus,
			PositionalWeight:      cfg.Weights.PositionalWeight,
			PositionalDecay:       cfg.Weights.PositionalDecay,
			MinDocumentTokens:     cfg.Pipeline.MinDocumentTokens,
			SmallDocumentConcepts: cfg.Pipeline.SmallDocumentConcepts,
			MaxConcepts:           cfg.Pipeline.MaxConcepts,
			MaxSpanTokens:         cfg.Pipeline.MaxSpanTokens,
		},
		Generator: generator.GeneratorConfig{
			MatchingPairs: cfg.Pipeline.MatchingPairs,
		},
		Distractor: distractor.DistractorConfig{
			SimilarityLow:       cfg.Distractor.SimilarityLow,
			SimilarityHigh:      cfg.Distractor.SimilarityHigh,
			MinSemanticConcepts: cfg.Distractor.MinSemanticConcepts,
			Timeout:             time.Duration(cfg.Distractor.TimeoutMS) * time.Millisecond,
			DomainPools:         categoryMap(cfg.Distractor.DomainPools),
			CorpusLimit:         cfg.Database.SearchLimit,
		},
		Classifier: classifier.ClassifierConfig{
			TypeWeights:  typeWeights,
			HardKeywords: cfg.Classifier.HardKeywords,
			EasyKeywords: cfg.Classifier.EasyKeywords,
			EasyMax:      cfg.Classifier.EasyMax,
			MediumMax:    cfg.Classifier.MediumMax,
			Categories:   categoryMap(cfg.Classifier.Categories),
		},
		Assembler: assembler.AssemblerConfig{
			ConceptReuse: cfg.Pipeline.ConceptReuse,
		},
		Logger: log,
	}
	pc.Distractor.Embedder = embedder
	pc.Distractor.Corpus = corpus
	return NewWithConfig(pc)
}

func categoryMap(in map[string][]string) map[models.Category][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[models.Category][]string, len(in))
	for name, words := range in {
		out[models.Category(strings.ToLower(name))] = words
	}
	return out
}

// Validate normalizes a request or reports why it cannot be served.
func Validate(req models.QuizRequest) (models.QuizRequest, error) {
	t, ok := models.ParseQuestionType(string(req.QuestionType))
	if !ok {
		return req, &RequestError{Field: "question_type", Message: fmt.Sprintf("unknown type %q", req.QuestionType)}
	}
	req.QuestionType = t

	d, ok := models.ParseDifficulty(string(req.Difficulty))
	if !ok {
		return req, &RequestError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty %q", req.Difficulty)}
	}
	req.Difficulty = d

	if req.Count <= 0 {
		return req, &RequestError{Field: "count", Message: "must be positive"}
	}
	return req, nil
}

// Generate runs the whole pipeline over one document. Only invalid requests
// produce an error; a document without usable content yields an empty quiz.
func (p *Pipeline) Generate(ctx context.Context, raw models.RawDocument, req models.QuizRequest) (models.Quiz, error) {
	req, err := Validate(req)
	if err != nil {
		return models.Quiz{}, err
	}

	doc := p.normalizer.Normalize(raw)
	log := p.log.With("doc_id", doc.ID)

	concepts := p.extractor.Extract(doc.Chunks)
	log.Debug("extracted concepts", "chunks", len(doc.Chunks), "concepts", len(concepts))

	candidates := make(map[models.QuestionType][]models.ScoredQuestion)
	if len(concepts) > 0 {
		candidates = p.candidates(ctx, log, doc, concepts, req.QuestionType)
	}

	quiz := p.assembler.Assemble(doc, candidates, req)
	quiz.ID = quizID(doc, req)
	log.Debug("assembled quiz", "quiz_id", quiz.ID, "questions", quiz.Len())
	return quiz, nil
}

func (p *Pipeline) candidates(ctx context.Context, log *logger.Logger, doc models.Document, concepts []models.Concept, requested models.QuestionType) map[models.QuestionType][]models.ScoredQuestion {
	qtypes := []models.QuestionType{requested}
	if requested == models.Mixed {
		qtypes = models.QuestionTypes
	}

	byID := make(map[int]models.Concept, len(concepts))
	for _, c := range concepts {
		byID[c.ID] = c
	}

	var pool *distractor.Pool
	needsPool := requested == models.Mixed || requested == models.MultipleChoice
	if needsPool {
		var err error
		pool, err = p.distractors.NewPool(ctx, concepts)
		if err != nil {
			log.Warn("semantic ranking unavailable, using pattern distractors", "err", err)
		}
	}

	out := make(map[models.QuestionType][]models.ScoredQuestion)
	var short []models.CandidateQuestion
	for _, t := range qtypes {
		generated := p.generator.Generate(doc, concepts, t)
		log.Debug("generated candidates", "type", t, "count", len(generated))

		for _, q := range generated {
			if t == models.MultipleChoice {
				filled, err := p.withDistractors(ctx, log, doc, q, byID[q.SourceConcept], pool)
				if errors.Is(err, ErrInsufficientDistractors) {
					log.Debug("dropping multiple choice question", "answer", q.CorrectAnswer, "err", err)
					short = append(short, q)
					continue
				}
				q = filled
			}
			out[t] = append(out[t], p.classify(doc, q))
		}
	}

	if requested == models.Mixed {
		for _, q := range p.downgrade(doc, short, out[models.FillBlank], byID) {
			out[models.FillBlank] = append(out[models.FillBlank], p.classify(doc, q))
		}
	}
	return out
}

func (p *Pipeline) withDistractors(ctx context.Context, log *logger.Logger, doc models.Document, q models.CandidateQuestion, c models.Concept, pool *distractor.Pool) (models.CandidateQuestion, error) {
	k := p.config.OptionCount - 1
	supporting, _ := doc.Chunk(q.SupportingChunk)

	res := p.distractors.Generate(ctx, distractor.Answer{
		Text:       q.CorrectAnswer,
		EntityType: c.EntityType,
		Context:    supporting.Text,
	}, pool, k)
	if res.SemanticErr != nil {
		log.Warn("semantic distractors unavailable", "answer", q.CorrectAnswer, "err", res.SemanticErr)
	}

	if len(res.Distractors) < k {
		return q, fmt.Errorf("%w: found %d of %d for %q", ErrInsufficientDistractors, len(res.Distractors), k, q.CorrectAnswer)
	}
	return q.WithDistractors(res.Distractors), nil
}

// downgrade turns MCQs that could not be filled into FILL_BLANK questions
// for concepts that have none yet.
func (p *Pipeline) downgrade(doc models.Document, short []models.CandidateQuestion, existing []models.ScoredQuestion, byID map[int]models.Concept) []models.CandidateQuestion {
	covered := make(map[int]bool, len(existing))
	for _, q := range existing {
		covered[q.SourceConcept] = true
	}

	var out []models.CandidateQuestion
	for _, q := range short {
		if covered[q.SourceConcept] {
			continue
		}
		fb, ok := p.generator.Question(doc, byID[q.SourceConcept], models.FillBlank)
		if !ok {
			continue
		}
		covered[q.SourceConcept] = true
		out = append(out, fb)
	}
	return out
}

func (p *Pipeline) classify(doc models.Document, q models.CandidateQuestion) models.ScoredQuestion {
	supporting, _ := doc.Chunk(q.SupportingChunk)
	return p.classifier.Classify(q, supporting.Text)
}

func quizID(doc models.Document, req models.QuizRequest) string {
	name := fmt.Sprintf("%s/%016x/%s/%s/%d", doc.ID, doc.Seed, req.QuestionType, req.Difficulty, req.Count)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
