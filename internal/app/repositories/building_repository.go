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
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/dberrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
)

// BuildingRepository handles hostel building database operations
type BuildingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBuildingRepository creates a new BuildingRepository
func NewBuildingRepository(db *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const buildingColumns = "id, name, address, total_floors, total_rooms, capacity, director_id, is_active, created_at"

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	err := row.Scan(
		&b.ID, &b.Name, &b.Address, &b.TotalFloors, &b.TotalRooms,
		&b.Capacity, &b.DirectorID, &b.IsActive, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new building
func (r *BuildingRepository) Create(ctx context.Context, building *models.Building) error {
	building.ID = uuid.New()
	building.CreatedAt = time.Now()

	sql, args, err := r.sb.Insert("buildings").
		Columns("id", "name", "address", "total_floors", "total_rooms", "capacity", "director_id", "is_active", "created_at").
		Values(building.ID, building.Name, building.Address, building.TotalFloors, building.TotalRooms, building.Capacity, building.DirectorID, building.IsActive, building.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create building query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "buildings_name_key") {
			return apperrors.NewConflictError("Building name already exists")
		}
		logger.Error().Err(err).Str("name", building.Name).Msg("Error executing create building query")
		return fmt.Errorf("error creating building: %w", err)
	}

	return nil
}

// GetByID retrieves a building by ID
func (r *BuildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	sql, args, err := r.sb.Select(buildingColumns).
		From("buildings").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get building query: %w", err)
	}

	building, err := scanBuilding(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBuildingNotFound
		}
		logger.Error().Err(err).Str("id", id.String()).Msg("Error scanning building row")
		return nil, fmt.Errorf("error retrieving building: %w", err)
	}

	return building, nil
}

// List retrieves all buildings ordered by name
func (r *BuildingRepository) List(ctx context.Context) ([]*models.Building, error) {
	sql, args, err := r.sb.Select(buildingColumns).
		From("buildings").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list buildings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list buildings query")
		return nil, fmt.Errorf("error listing buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		var b models.Building
		err := rows.Scan(
			&b.ID, &b.Name, &b.Address, &b.TotalFloors, &b.TotalRooms,
			&b.Capacity, &b.DirectorID, &b.IsActive, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning building row: %w", err)
		}
		buildings = append(buildings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating building rows: %w", err)
	}

	return buildings, nil
}

// Update updates mutable building fields
func (r *BuildingRepository) Update(ctx context.Context, building *models.Building) error {
	sql, args, err := r.sb.Update("buildings").
		Set("name", building.Name).
		Set("address", building.Address).
		Set("total_floors", building.TotalFloors).
		Set("director_id", building.DirectorID).
		Set("is_active", building.IsActive).
		Where(squirrel.Eq{"id": building.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update building query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("id", building.ID.String()).Msg("Error executing update building query")
		return fmt.Errorf("error updating building: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBuildingNotFound
	}

	return nil
}

// Count returns the number of active buildings
func (r *BuildingRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("buildings").
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count buildings query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting buildings: %w", err)
	}

	return count, nil
}
