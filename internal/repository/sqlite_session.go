package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/studyclock/internal/db"
	"github.com/alexanderramin/studyclock/internal/domain"
)

// SQLiteStudySessionRepo implements StudySessionRepo using a SQLite database.
// Segments live in study_segments and are loaded alongside their session.
type SQLiteStudySessionRepo struct {
	db db.DBTX
}

// NewSQLiteStudySessionRepo creates a new SQLiteStudySessionRepo.
func NewSQLiteStudySessionRepo(conn db.DBTX) *SQLiteStudySessionRepo {
	return &SQLiteStudySessionRepo{db: conn}
}

const sessionColumns = `id, user_id, subject, start_time, end_time, duration_sec,
	focus_score, productivity, time_of_day, version, created_at, updated_at`

func (r *SQLiteStudySessionRepo) Create(ctx context.Context, s *domain.StudySession) error {
	now := nowUTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if s.Version == 0 {
		s.Version = 1
	}

	query := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Subject,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		s.TotalDuration.Seconds(),
		s.FocusScore,
		s.Productivity,
		string(s.TimeOfDay),
		s.Version,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("study session %s: %w", s.ID, ErrConflict)
		}
		return fmt.Errorf("inserting study session: %w", err)
	}

	if err := r.insertSegments(ctx, s.ID, s.StudySegments); err != nil {
		return err
	}
	return r.insertSegments(ctx, s.ID, s.BreakSegments)
}

func (r *SQLiteStudySessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSessionRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}

	segs, err := r.loadSegments(ctx, `SELECT session_id, id, kind, segment_number, start_time, end_time, duration_sec
		FROM study_segments WHERE session_id = ?
		ORDER BY kind, segment_number`, id)
	if err != nil {
		return nil, err
	}
	attachSegments(s, segs[s.ID])
	return s, nil
}

func (r *SQLiteStudySessionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE user_id = ?
		ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing study sessions: %w", err)
	}

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := scanSessionRow(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning study session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	rows.Close()

	if len(sessions) == 0 {
		return sessions, nil
	}

	segs, err := r.loadSegments(ctx, `SELECT g.session_id, g.id, g.kind, g.segment_number, g.start_time, g.end_time, g.duration_sec
		FROM study_segments g
		JOIN study_sessions s ON s.id = g.session_id
		WHERE s.user_id = ?
		ORDER BY g.session_id, g.kind, g.segment_number`, userID)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		attachSegments(s, segs[s.ID])
	}
	return sessions, nil
}

func (r *SQLiteStudySessionRepo) Update(ctx context.Context, s *domain.StudySession) error {
	s.UpdatedAt = nowUTC()
	query := `UPDATE study_sessions SET
		subject = ?, start_time = ?, end_time = ?, duration_sec = ?,
		focus_score = ?, productivity = ?, time_of_day = ?,
		version = version + 1, updated_at = ?
		WHERE id = ?
		RETURNING version`
	err := r.db.QueryRowContext(ctx, query,
		s.Subject,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		s.TotalDuration.Seconds(),
		s.FocusScore,
		s.Productivity,
		string(s.TimeOfDay),
		formatTime(s.UpdatedAt),
		s.ID,
	).Scan(&s.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("study session: %w", ErrNotFound)
		}
		return fmt.Errorf("updating study session: %w", err)
	}
	return nil
}

func (r *SQLiteStudySessionRepo) ReplaceSegments(ctx context.Context, sessionID string, study, breaks []domain.Segment) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_segments WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing segments: %w", err)
	}
	if err := r.insertSegments(ctx, sessionID, study); err != nil {
		return err
	}
	return r.insertSegments(ctx, sessionID, breaks)
}

func (r *SQLiteStudySessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting study session: %w", err)
	}
	return nil
}

func (r *SQLiteStudySessionRepo) insertSegments(ctx context.Context, sessionID string, segs []domain.Segment) error {
	query := `INSERT INTO study_segments (id, session_id, kind, segment_number, start_time, end_time, duration_sec)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, seg := range segs {
		_, err := r.db.ExecContext(ctx, query,
			seg.ID,
			sessionID,
			string(seg.Kind),
			seg.SegmentNumber,
			formatTime(seg.StartTime),
			nullableTimeToString(seg.EndTime),
			seg.Duration.Seconds(),
		)
		if err != nil {
			return fmt.Errorf("inserting %s segment #%d: %w", seg.Kind, seg.SegmentNumber, err)
		}
	}
	return nil
}

// loadSegments runs a segment query and groups the rows by session id.
func (r *SQLiteStudySessionRepo) loadSegments(ctx context.Context, query string, arg any) (map[string][]domain.Segment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing segments: %w", err)
	}
	defer rows.Close()

	bySession := make(map[string][]domain.Segment)
	for rows.Next() {
		var sessionID, startStr, kind string
		var endStr sql.NullString
		var durationSec float64
		var seg domain.Segment

		if err := rows.Scan(&sessionID, &seg.ID, &kind, &seg.SegmentNumber, &startStr, &endStr, &durationSec); err != nil {
			return nil, fmt.Errorf("scanning segment row: %w", err)
		}
		seg.Kind = domain.SegmentKind(kind)
		seg.StartTime, err = parseTime(startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing segment start_time: %w", err)
		}
		seg.EndTime = parseNullableTime(endStr)
		seg.Duration = secondsToDuration(durationSec)

		bySession[sessionID] = append(bySession[sessionID], seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}
	return bySession, nil
}

// attachSegments splits rows ordered by (kind, segment_number) into the two lists.
func attachSegments(s *domain.StudySession, segs []domain.Segment) {
	s.StudySegments = []domain.Segment{}
	s.BreakSegments = []domain.Segment{}
	for _, seg := range segs {
		if seg.Kind == domain.SegmentBreak {
			s.BreakSegments = append(s.BreakSegments, seg)
		} else {
			s.StudySegments = append(s.StudySegments, seg)
		}
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionRow(row rowScanner) (*domain.StudySession, error) {
	var s domain.StudySession
	var startStr, createdStr, updatedStr, tod string
	var endStr sql.NullString
	var durationSec float64

	err := row.Scan(
		&s.ID, &s.UserID, &s.Subject, &startStr, &endStr, &durationSec,
		&s.FocusScore, &s.Productivity, &tod, &s.Version, &createdStr, &updatedStr,
	)
	if err != nil {
		return nil, err
	}

	if s.StartTime, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	s.EndTime = parseNullableTime(endStr)
	s.TotalDuration = secondsToDuration(durationSec)
	s.TimeOfDay = domain.TimeOfDay(tod)
	return &s, nil
}
