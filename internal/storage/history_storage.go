package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

// HistoryStore keeps the reports of each practice session for the lifetime
// of the process. Sessions keep at most limit entries; older ones are pruned.
type HistoryStore struct {
	db    *sql.DB
	limit int
	log   zerolog.Logger
}

func NewHistoryStore(ctx context.Context, limit int) (*HistoryStore, error) {
	db, err := OpenMemory(ctx)
	if err != nil {
		return nil, err
	}
	return &HistoryStore{db: db, limit: limit, log: logger.Component("storage")}, nil
}

func (s *HistoryStore) Append(ctx context.Context, sessionID string, report models.FeedbackReport) (models.HistoryEntry, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("marshal report: %w", err)
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO history(session_id, question, response, report, created_at) VALUES(?, ?, ?, ?, ?)",
		sessionID, report.Question, report.Transcription, string(raw), now.UnixNano())
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("insert history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.HistoryEntry{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE session_id = ? AND id NOT IN (
			SELECT id FROM history WHERE session_id = ? ORDER BY id DESC LIMIT ?
		)`, sessionID, sessionID, s.limit); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("prune history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.HistoryEntry{}, err
	}

	s.log.Debug().Str("session", sessionID).Int64("id", id).Msg("Append(): stored report")
	return models.HistoryEntry{
		ID:        id,
		SessionID: sessionID,
		Question:  report.Question,
		Response:  report.Transcription,
		Report:    report,
		CreatedAt: now,
	}, nil
}

// List returns the session's entries, newest first.
func (s *HistoryStore) List(ctx context.Context, sessionID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, response, report, created_at
		FROM history
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?`, sessionID, s.limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var (
			e       models.HistoryEntry
			raw     string
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Question, &e.Response, &raw, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &e.Report); err != nil {
			return nil, fmt.Errorf("decode report %d: %w", e.ID, err)
		}
		e.SessionID = sessionID
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear drops every entry of the session and returns how many were removed.
func (s *HistoryStore) Clear(ctx context.Context, sessionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}
