package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xhad/textotest/internal/models"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Pipeline
	if c.Pipeline.OptionCount < 2 || c.Pipeline.OptionCount > 10 {
		errors = append(errors, ValidationError{
			Field:   "pipeline.option_count",
			Message: "option_count must be between 2 and 10",
		})
	}

	if c.Pipeline.ConceptReuse != "per_type" && c.Pipeline.ConceptReuse != "unique" {
		errors = append(errors, ValidationError{
			Field:   "pipeline.concept_reuse",
			Message: fmt.Sprintf("unknown concept_reuse policy: %s", c.Pipeline.ConceptReuse),
		})
	}

	if c.Pipeline.MatchingPairs < 2 {
		errors = append(errors, ValidationError{
			Field:   "pipeline.matching_pairs",
			Message: "matching_pairs must be at least 2",
		})
	}

	if c.Pipeline.MaxSpanTokens < 1 {
		errors = append(errors, ValidationError{
			Field:   "pipeline.max_span_tokens",
			Message: "max_span_tokens must be positive",
		})
	}

	if c.Pipeline.SmallDocumentConcepts < 1 || c.Pipeline.MaxConcepts < c.Pipeline.SmallDocumentConcepts {
		errors = append(errors, ValidationError{
			Field:   "pipeline.max_concepts",
			Message: "max_concepts must be at least small_document_concepts",
		})
	}

	// Weights
	if value(c.Weights.HeadingBonus) < 0 || value(c.Weights.BulletBonus) < 0 || value(c.Weights.PositionalWeight) < 0 {
		errors = append(errors, ValidationError{
			Field:   "weights",
			Message: "bonuses must be non-negative",
		})
	}

	if c.Weights.PositionalDecay <= 0 {
		errors = append(errors, ValidationError{
			Field:   "weights.positional_decay",
			Message: "positional_decay must be positive",
		})
	}

	// Distractor
	if low := value(c.Distractor.SimilarityLow); low < -1 || c.Distractor.SimilarityHigh > 1 || low >= c.Distractor.SimilarityHigh {
		errors = append(errors, ValidationError{
			Field:   "distractor.similarity_low",
			Message: "similarity band must satisfy -1 <= low < high <= 1",
		})
	}

	if c.Distractor.TimeoutMS < 1 {
		errors = append(errors, ValidationError{
			Field:   "distractor.timeout_ms",
			Message: "timeout_ms must be positive",
		})
	}

	// Classifier
	if c.Classifier.EasyMax >= c.Classifier.MediumMax {
		errors = append(errors, ValidationError{
			Field:   "classifier.easy_max",
			Message: "easy_max must be less than medium_max",
		})
	}

	for name := range c.Classifier.TypeWeights {
		if qt, ok := models.ParseQuestionType(name); !ok || qt == models.Mixed {
			errors = append(errors, ValidationError{
				Field:   "classifier.type_weights",
				Message: fmt.Sprintf("unknown question type: %s", name),
			})
		}
	}

	for name := range c.Classifier.Categories {
		if !isCategory(name) {
			errors = append(errors, ValidationError{
				Field:   "classifier.categories",
				Message: fmt.Sprintf("unknown category: %s", name),
			})
		}
	}

	for name := range c.Distractor.DomainPools {
		if !isCategory(name) && name != string(models.General) {
			errors = append(errors, ValidationError{
				Field:   "distractor.domain_pools",
				Message: fmt.Sprintf("unknown category: %s", name),
			})
		}
	}

	// Embedding
	if c.Embedding.Enabled {
		if u, err := url.Parse(c.Embedding.BaseURL); err != nil || u.Scheme == "" {
			errors = append(errors, ValidationError{
				Field:   "embedding.base_url",
				Message: "invalid Ollama base URL",
			})
		}
	}

	if c.Embedding.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "embedding.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Database
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if strings.ContainsAny(c.Database.TableName, " ;\"'") {
		errors = append(errors, ValidationError{
			Field:   "database.table_name",
			Message: "table_name must be a plain identifier",
		})
	}

	return errors
}

func isCategory(name string) bool {
	for _, c := range models.Categories {
		if string(c) == name {
			return true
		}
	}
	return false
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
