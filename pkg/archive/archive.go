// Package archive stores finished quizzes as plain records in SQLite.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xhad/textotest/internal/models"
)

// ErrNotFound is returned when a quiz id has no row.
var ErrNotFound = errors.New("quiz not found")

type DB struct {
	db *sql.DB
}

// QuizRow is the stored summary of one quiz.
type QuizRow struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	Title        string    `json:"title"`
	QuestionType string    `json:"question_type"`
	Difficulty   string    `json:"difficulty"`
	Requested    int       `json:"requested"`
	NumQuestions int       `json:"num_questions"`
	Seed         uint64    `json:"seed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Open opens the database at path and creates the tables if needed.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	archive := &DB{db: db}
	if err := archive.CreateTables(); err != nil {
		db.Close()
		return nil, err
	}
	return archive, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			title TEXT,
			question_type TEXT NOT NULL,
			difficulty TEXT,
			requested INTEGER NOT NULL,
			num_questions INTEGER NOT NULL,
			seed TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			type TEXT NOT NULL,
			stem TEXT NOT NULL,
			options TEXT NOT NULL,
			answer TEXT NOT NULL,
			left_items TEXT NOT NULL,
			right_items TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			category TEXT NOT NULL,
			points INTEGER NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
		`CREATE INDEX IF NOT EXISTS questions_quiz_id ON questions (quiz_id, question_num)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveQuiz writes the quiz and its records, replacing an earlier copy with
// the same id.
func (db *DB) SaveQuiz(ctx context.Context, quiz models.Quiz, title string) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE quiz_id = ?", quiz.ID); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO quizzes (id, document_id, title, question_type, difficulty, requested, num_questions, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		quiz.ID, quiz.DocumentID, title, string(quiz.Request.QuestionType), string(quiz.Request.Difficulty),
		quiz.Request.Count, quiz.Len(), strconv.FormatUint(quiz.Seed, 16), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (id, quiz_id, question_num, type, stem, options, answer, left_items, right_items, difficulty, category, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare question insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range quiz.Records() {
		options, left, right, err := encodeLists(r)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			fmt.Sprintf("%s-%d", quiz.ID, r.Number), quiz.ID, r.Number, r.Type, r.Stem,
			options, r.Answer, left, right, r.Difficulty, r.Category, r.Points,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d: %w", r.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz: %w", err)
	}
	return nil
}

func encodeLists(r models.Record) (string, string, string, error) {
	var out [3]string
	for i, list := range [][]string{r.Options, r.LeftItems, r.RightItems} {
		if list == nil {
			list = []string{}
		}
		data, err := json.Marshal(list)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to encode question %d: %w", r.Number, err)
		}
		out[i] = string(data)
	}
	return out[0], out[1], out[2], nil
}

const quizColumns = "id, document_id, title, question_type, difficulty, requested, num_questions, seed, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row scanner) (QuizRow, error) {
	var (
		q    QuizRow
		seed string
	)
	err := row.Scan(&q.ID, &q.DocumentID, &q.Title, &q.QuestionType, &q.Difficulty, &q.Requested, &q.NumQuestions, &seed, &q.CreatedAt)
	if err != nil {
		return q, err
	}
	q.Seed, err = strconv.ParseUint(seed, 16, 64)
	if err != nil {
		return q, fmt.Errorf("failed to parse seed %q: %w", seed, err)
	}
	return q, nil
}

func (db *DB) GetQuiz(ctx context.Context, id string) (*QuizRow, error) {
	q, err := scanQuiz(db.db.QueryRowContext(ctx, "SELECT "+quizColumns+" FROM quizzes WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return &q, nil
}

// ListQuizzes returns the newest quizzes first. A limit of zero lists all.
func (db *DB) ListQuizzes(ctx context.Context, limit int) ([]QuizRow, error) {
	query := "SELECT " + quizColumns + " FROM quizzes ORDER BY created_at DESC, id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []QuizRow
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}
	return quizzes, nil
}

// GetRecords returns a stored quiz's questions in order.
func (db *DB) GetRecords(ctx context.Context, quizID string) ([]models.Record, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT question_num, type, stem, options, answer, left_items, right_items, difficulty, category, points
		FROM questions WHERE quiz_id = ? ORDER BY question_num`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var (
			r                    models.Record
			options, left, right string
		)
		if err := rows.Scan(&r.Number, &r.Type, &r.Stem, &options, &r.Answer, &left, &right, &r.Difficulty, &r.Category, &r.Points); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		for _, field := range []struct {
			data string
			dst  *[]string
		}{{options, &r.Options}, {left, &r.LeftItems}, {right, &r.RightItems}} {
			if err := json.Unmarshal([]byte(field.data), field.dst); err != nil {
				return nil, fmt.Errorf("failed to decode question %d: %w", r.Number, err)
			}
			if len(*field.dst) == 0 {
				*field.dst = nil
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return records, nil
}
