package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/lib/pq"
)

var (
	ErrSnapshotNotFound      = errors.New("schedule snapshot not found")
	ErrArchiveNotInitialised = errors.New("schedule archive table does not exist")
)

const DefaultSnapshotLimit = 20

// ArchiveRepository хранит нормализованные расписания, сохраненные через сервис.
type ArchiveRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, snapshot *models.ScheduleSnapshot) error
	ListByTournament(ctx context.Context, tournamentID, limit int) ([]models.ScheduleSnapshot, error)
	GetByID(ctx context.Context, id int) (*models.ScheduleSnapshot, error)
	Delete(ctx context.Context, id int) error
}

type postgresArchiveRepository struct {
	db SQLExecutor
}

// NewPostgresArchiveRepository принимает *sql.DB или *sql.Tx.
func NewPostgresArchiveRepository(db SQLExecutor) ArchiveRepository {
	return &postgresArchiveRepository{db: db}
}

const archiveSchema = `
	CREATE TABLE IF NOT EXISTS schedule_snapshots (
		id            SERIAL PRIMARY KEY,
		tournament_id INTEGER     NOT NULL,
		match_count   INTEGER     NOT NULL,
		matches       JSONB       NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS schedule_snapshots_tournament_idx
		ON schedule_snapshots (tournament_id, created_at DESC);`

func (r *postgresArchiveRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, archiveSchema); err != nil {
		return fmt.Errorf("create schedule_snapshots: %w", err)
	}
	return nil
}

func (r *postgresArchiveRepository) Save(ctx context.Context, s *models.ScheduleSnapshot) error {
	matches, err := json.Marshal(s.Matches)
	if err != nil {
		return fmt.Errorf("encode snapshot matches: %w", err)
	}
	s.MatchCount = len(s.Matches)

	query := `
		INSERT INTO schedule_snapshots (tournament_id, match_count, matches)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query, s.TournamentID, s.MatchCount, matches).Scan(&s.ID, &s.CreatedAt)
	return r.handleArchiveError(err)
}

// ListByTournament возвращает заголовки снимков, новые первыми, без матчей.
func (r *postgresArchiveRepository) ListByTournament(ctx context.Context, tournamentID, limit int) ([]models.ScheduleSnapshot, error) {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}
	query := `
		SELECT id, tournament_id, match_count, created_at
		FROM schedule_snapshots
		WHERE tournament_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, limit)
	if err != nil {
		return nil, r.handleArchiveError(err)
	}
	defer rows.Close()

	snapshots := make([]models.ScheduleSnapshot, 0)
	for rows.Next() {
		var s models.ScheduleSnapshot
		if err := rows.Scan(&s.ID, &s.TournamentID, &s.MatchCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *postgresArchiveRepository) GetByID(ctx context.Context, id int) (*models.ScheduleSnapshot, error) {
	query := `
		SELECT id, tournament_id, match_count, matches, created_at
		FROM schedule_snapshots
		WHERE id = $1`

	var (
		s       models.ScheduleSnapshot
		matches []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.TournamentID, &s.MatchCount, &matches, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, r.handleArchiveError(err)
	}
	if err := json.Unmarshal(matches, &s.Matches); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", id, err)
	}
	return &s, nil
}

func (r *postgresArchiveRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_snapshots WHERE id = $1`, id)
	if err != nil {
		return r.handleArchiveError(err)
	}
	return checkAffectedRows(result, ErrSnapshotNotFound)
}

func (r *postgresArchiveRepository) handleArchiveError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
		return ErrArchiveNotInitialised
	}
	return err
}
