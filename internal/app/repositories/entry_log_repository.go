package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
)

// EntryLogRepository reads gate entry/exit logs. Rows are written by the
// face-recognition gate service, this API only reads them.
type EntryLogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEntryLogRepository creates a new EntryLogRepository
func NewEntryLogRepository(db *pgxpool.Pool) *EntryLogRepository {
	return &EntryLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListRecent retrieves the most recent entry logs with pagination
func (r *EntryLogRepository) ListRecent(ctx context.Context, studentID *uuid.UUID, offset uint64, limit int) ([]*models.EntryLog, int64, error) {
	query := r.sb.Select("id, student_id, student_name, entry_type, location, timestamp, created_at, COUNT(*) OVER() AS total_count").
		From("entry_logs")

	if studentID != nil {
		query = query.Where(squirrel.Eq{"student_id": *studentID})
	}

	sql, args, err := query.
		OrderBy("timestamp DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list entry logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list entry logs query")
		return nil, 0, fmt.Errorf("error listing entry logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.EntryLog
	var total int64
	for rows.Next() {
		var l models.EntryLog
		err := rows.Scan(&l.ID, &l.StudentID, &l.StudentName, &l.EntryType, &l.Location, &l.Timestamp, &l.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning entry log row: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entry log rows: %w", err)
	}

	return logs, total, nil
}

// CountToday returns the number of entries recorded since midnight
func (r *EntryLogRepository) CountToday(ctx context.Context) (int, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sql, args, err := r.sb.Select("COUNT(*)").
		From("entry_logs").
		Where(squirrel.GtOrEq{"timestamp": midnight}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count today entries query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting today's entries: %w", err)
	}

	return count, nil
}
