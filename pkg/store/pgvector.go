package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/xhad/textotest/internal/types"
)

type VectorStoreConfig struct {
	ConnString  string
	TableName   string
	VectorDim   int
	BatchSize   int
	SearchLimit int
}

// Term is one corpus entry served as a distractor candidate.
type Term struct {
	Text     string
	Category string
}

// VectorStore is the shared corpus index. Candidates are ranked by pgvector
// cosine distance.
type VectorStore struct {
	config VectorStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(ctx context.Context, config VectorStoreConfig) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "corpus_terms"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768 // nomic-embed-text
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	if config.SearchLimit == 0 {
		config.SearchLimit = 20
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	vs := &VectorStore{
		config: config,
		pool:   pool,
	}

	if err := vs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	// Enable pgvector extension
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			term TEXT NOT NULL,
			category TEXT,
			embedding vector(%d)
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING hnsw (embedding vector_cosine_ops)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// TermID is stable for a term regardless of case, so re-indexing upserts.
func TermID(text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(strings.TrimSpace(text)))).String()
}

func (vs *VectorStore) Store(ctx context.Context, terms []Term, vectors [][]float32) error {
	if len(terms) != len(vectors) {
		return fmt.Errorf("failed to store terms: %d terms but %d vectors", len(terms), len(vectors))
	}

	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, term, category, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			embedding = EXCLUDED.embedding`,
		vs.config.TableName)

	for start := 0; start < len(terms); start += vs.config.BatchSize {
		end := min(start+vs.config.BatchSize, len(terms))

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(stmt, TermID(terms[i].Text), terms[i].Text, terms[i].Category, pgvector.NewVector(vectors[i]))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert terms: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// Nearest returns the closest corpus terms with score = 1 - cosine distance.
func (vs *VectorStore) Nearest(ctx context.Context, vector []float32, k int) ([]types.Neighbor, error) {
	if k <= 0 {
		k = vs.config.SearchLimit
	}

	query := fmt.Sprintf(`
		SELECT term, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1, term
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %v", err)
	}
	defer rows.Close()

	var neighbors []types.Neighbor
	for rows.Next() {
		var n types.Neighbor
		if err := rows.Scan(&n.Candidate, &n.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		neighbors = append(neighbors, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %v", err)
	}

	return neighbors, nil
}

func (vs *VectorStore) Count(ctx context.Context) (int, error) {
	var n int
	err := vs.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", vs.config.TableName)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count terms: %v", err)
	}
	return n, nil
}

func (vs *VectorStore) Clear(ctx context.Context) error {
	if _, err := vs.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", vs.config.TableName)); err != nil {
		return fmt.Errorf("failed to clear terms: %v", err)
	}
	return nil
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}
