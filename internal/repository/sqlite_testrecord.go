package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/studyclock/internal/db"
	"github.com/alexanderramin/studyclock/internal/domain"
)

// SQLiteTestRecordRepo implements TestRecordRepo using a SQLite database.
type SQLiteTestRecordRepo struct {
	db db.DBTX
}

// NewSQLiteTestRecordRepo creates a new SQLiteTestRecordRepo.
func NewSQLiteTestRecordRepo(conn db.DBTX) *SQLiteTestRecordRepo {
	return &SQLiteTestRecordRepo{db: conn}
}

const testRecordColumns = `id, user_id, taken_at, answers, personality_type, description, recommendation,
	extraversion, openness, conscientiousness, agreeableness, neuroticism`

func (r *SQLiteTestRecordRepo) Create(ctx context.Context, rec *domain.TestRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = nowUTC()
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}

	query := `INSERT INTO test_records (` + testRecordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		formatTime(rec.Timestamp),
		string(answers),
		rec.PersonalityType,
		rec.Description,
		rec.Recommendation,
		rec.Scores.Extraversion,
		rec.Scores.Openness,
		rec.Scores.Conscientiousness,
		rec.Scores.Agreeableness,
		rec.Scores.Neuroticism,
	)
	if err != nil {
		return fmt.Errorf("inserting test record: %w", err)
	}
	return nil
}

func (r *SQLiteTestRecordRepo) GetByID(ctx context.Context, id string) (*domain.TestRecord, error) {
	query := `SELECT ` + testRecordColumns + ` FROM test_records WHERE id = ?`
	rec, err := scanTestRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("test record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning test record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteTestRecordRepo) ListByUser(ctx context.Context, userID string) ([]*domain.TestRecord, error) {
	query := `SELECT ` + testRecordColumns + ` FROM test_records
		WHERE user_id = ?
		ORDER BY taken_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing test records: %w", err)
	}
	defer rows.Close()

	var records []*domain.TestRecord
	for rows.Next() {
		rec, err := scanTestRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning test record row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanTestRecord(row rowScanner) (*domain.TestRecord, error) {
	var rec domain.TestRecord
	var takenStr, answersStr string
	err := row.Scan(
		&rec.ID, &rec.UserID, &takenStr, &answersStr,
		&rec.PersonalityType, &rec.Description, &rec.Recommendation,
		&rec.Scores.Extraversion, &rec.Scores.Openness, &rec.Scores.Conscientiousness,
		&rec.Scores.Agreeableness, &rec.Scores.Neuroticism,
	)
	if err != nil {
		return nil, err
	}
	if rec.Timestamp, err = parseTime(takenStr); err != nil {
		return nil, fmt.Errorf("parsing taken_at: %w", err)
	}
	if err := json.Unmarshal([]byte(answersStr), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	return &rec, nil
}
