package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// StoredQuestion is a persisted question-embedding pair.
type StoredQuestion struct {
	ID         int64
	Question   string
	Options    []string
	Answer     string
	Difficulty string
	Embedding  []float32
}

// QuestionRepo manages the questions table.
type QuestionRepo interface {
	// Insert persists a question keyed uniquely by its text. A uniqueness
	// conflict (another caller already recorded the same text) is a no-op,
	// never an error.
	Insert(ctx context.Context, q StoredQuestion) error

	// RecentEmbeddings returns the embeddings of the n most recently
	// inserted questions, newest first.
	RecentEmbeddings(ctx context.Context, n int) ([][]float32, error)

	// Count returns the number of stored questions.
	Count(ctx context.Context) (int, error)

	// DeleteAll wipes the questions table.
	DeleteAll(ctx context.Context) error
}

type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Insert(ctx context.Context, q StoredQuestion) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	embedding, err := json.Marshal(q.Embedding)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO questions (question, options, answer, difficulty, embedding)
		VALUES (?, ?, ?, ?, ?)`,
		q.Question, string(options), q.Answer, q.Difficulty, string(embedding),
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *questionRepo) RecentEmbeddings(ctx context.Context, n int) ([][]float32, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT embedding FROM questions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query embeddings: %w", err)
	}
	defer rows.Close()

	var out [][]float32
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		var vec []float32
		if err := json.Unmarshal([]byte(raw), &vec); err != nil {
			return nil, fmt.Errorf("unmarshal embedding: %w", err)
		}
		out = append(out, vec)
	}
	return out, rows.Err()
}

func (r *questionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func (r *questionRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions`)
	return err
}
