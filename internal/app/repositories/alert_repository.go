package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
)

// AlertRepository handles security and operational alerts
type AlertRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(db *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new alert with active status
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	alert.ID = uuid.New()
	alert.Status = "active"
	alert.CreatedAt = time.Now()

	sql, args, err := r.sb.Insert("alerts").
		Columns("id", "title", "message", "severity", "status", "building_id", "created_at").
		Values(alert.ID, alert.Title, alert.Message, alert.Severity, alert.Status, alert.BuildingID, alert.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create alert query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("title", alert.Title).Msg("Error executing create alert query")
		return fmt.Errorf("error creating alert: %w", err)
	}

	return nil
}

// List retrieves alerts, optionally filtered by status, newest first
func (r *AlertRepository) List(ctx context.Context, status string, offset uint64, limit int) ([]*models.Alert, int64, error) {
	query := r.sb.Select("id, title, message, severity, status, building_id, created_at, COUNT(*) OVER() AS total_count").
		From("alerts")

	if status != "" {
		query = query.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := query.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list alerts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list alerts query")
		return nil, 0, fmt.Errorf("error listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	var total int64
	for rows.Next() {
		var a models.Alert
		err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.Severity, &a.Status, &a.BuildingID, &a.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning alert row: %w", err)
		}
		alerts = append(alerts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating alert rows: %w", err)
	}

	return alerts, total, nil
}

// Resolve marks an alert as resolved
func (r *AlertRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("alerts").
		Set("status", "resolved").
		Where(squirrel.Eq{"id": id, "status": "active"}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build resolve alert query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error resolving alert: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Alert not found")
	}

	return nil
}

// CountActive returns the number of active alerts
func (r *AlertRepository) CountActive(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("alerts").
		Where(squirrel.Eq{"status": "active"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count active alerts query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting active alerts: %w", err)
	}

	return count, nil
}
