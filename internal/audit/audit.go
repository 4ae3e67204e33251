// Package audit persists session summaries and full transcripts to Postgres
// for later review. The store is optional: the engine treats a nil Auditor
// as audit disabled.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the audit tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS session_summaries (
			id UUID PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			channel TEXT NOT NULL,
			intake JSONB NOT NULL,
			turn_count INT NOT NULL,
			urgent BOOLEAN NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS session_turns (
			id UUID PRIMARY KEY,
			summary_id UUID NOT NULL REFERENCES session_summaries(id),
			position INT NOT NULL,
			speaker TEXT NOT NULL,
			text TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_session_summaries_conversation
			ON session_summaries(conversation_id);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// WriteSummary persists the record's intake snapshot and transcript in a
// single transaction. System entries are stored along with spoken turns so
// the full context of the conversation can be replayed.
func (s *Store) WriteSummary(ctx context.Context, rec *session.Record) error {
	intakeJSON, err := json.Marshal(rec.Intake.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal intake: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	summaryID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO session_summaries (id, conversation_id, channel, intake, turn_count, urgent, started_at, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		summaryID, rec.ConversationID, string(rec.Channel), intakeJSON,
		rec.TurnCount, rec.Intake.UrgentSymptoms, rec.StartedAt, rec.Duration(time.Now()).Seconds(),
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}

	for i, turn := range rec.Transcript {
		_, err = tx.Exec(ctx, `
			INSERT INTO session_turns (id, summary_id, position, speaker, text)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), summaryID, i, string(turn.Speaker), turn.Text,
		)
		if err != nil {
			return fmt.Errorf("insert turn %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
