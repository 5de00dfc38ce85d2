package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
)

// MaintenanceRepository handles maintenance request database operations
type MaintenanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMaintenanceRepository creates a new MaintenanceRepository
func NewMaintenanceRepository(db *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const maintenanceColumns = "id, building_id, room_number, issue_type, description, priority, status, requested_by, assigned_to, notes, created_at, updated_at"

// Create inserts a new maintenance request with pending status
func (r *MaintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	now := time.Now()
	req.ID = uuid.New()
	req.Status = "pending"
	req.CreatedAt = now
	req.UpdatedAt = now

	sql, args, err := r.sb.Insert("maintenance_requests").
		Columns("id", "building_id", "room_number", "issue_type", "description", "priority", "status", "requested_by", "notes", "created_at", "updated_at").
		Values(req.ID, req.BuildingID, req.RoomNumber, req.IssueType, req.Description, req.Priority, req.Status, req.RequestedBy, req.Notes, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create maintenance query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("roomNumber", req.RoomNumber).Msg("Error executing create maintenance query")
		return fmt.Errorf("error creating maintenance request: %w", err)
	}

	return nil
}

// GetByID retrieves a maintenance request by ID
func (r *MaintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	sql, args, err := r.sb.Select(maintenanceColumns).
		From("maintenance_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get maintenance query: %w", err)
	}

	var m models.MaintenanceRequest
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&m.ID, &m.BuildingID, &m.RoomNumber, &m.IssueType, &m.Description,
		&m.Priority, &m.Status, &m.RequestedBy, &m.AssignedTo, &m.Notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("error retrieving maintenance request: %w", err)
	}

	return &m, nil
}

// List retrieves maintenance requests with optional filters
func (r *MaintenanceRepository) List(ctx context.Context, buildingID *uuid.UUID, status string, offset uint64, limit int) ([]*models.MaintenanceRequest, int64, error) {
	query := r.sb.Select(maintenanceColumns + ", COUNT(*) OVER() AS total_count").
		From("maintenance_requests")

	if buildingID != nil {
		query = query.Where(squirrel.Eq{"building_id": *buildingID})
	}
	if status != "" {
		query = query.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := query.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list maintenance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list maintenance query")
		return nil, 0, fmt.Errorf("error listing maintenance requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequest
	var total int64
	for rows.Next() {
		var m models.MaintenanceRequest
		err := rows.Scan(
			&m.ID, &m.BuildingID, &m.RoomNumber, &m.IssueType, &m.Description,
			&m.Priority, &m.Status, &m.RequestedBy, &m.AssignedTo, &m.Notes,
			&m.CreatedAt, &m.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning maintenance row: %w", err)
		}
		requests = append(requests, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating maintenance rows: %w", err)
	}

	return requests, total, nil
}

// Update updates the status, priority, assignee or notes of a request
func (r *MaintenanceRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	sql, args, err := r.sb.Update("maintenance_requests").
		Set("status", req.Status).
		Set("priority", req.Priority).
		Set("assigned_to", req.AssignedTo).
		Set("notes", req.Notes).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update maintenance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("id", req.ID.String()).Msg("Error executing update maintenance query")
		return fmt.Errorf("error updating maintenance request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaintenanceNotFound
	}

	return nil
}
