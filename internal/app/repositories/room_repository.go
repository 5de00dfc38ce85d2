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

// RoomRepository handles room database operations
type RoomRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const roomColumns = "r.id, r.building_id, r.room_number, r.floor_number, r.room_type, r.capacity, r.current_occupancy, r.status, r.rent_amount, r.amenities, r.description, r.is_active, r.created_at, r.updated_at"

func scanRoom(row pgx.Row) (*models.Room, error) {
	var m models.Room
	err := row.Scan(
		&m.ID, &m.BuildingID, &m.RoomNumber, &m.FloorNumber, &m.RoomType,
		&m.Capacity, &m.CurrentOccupancy, &m.Status, &m.RentAmount,
		&m.Amenities, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	now := time.Now()
	room.ID = uuid.New()
	room.CreatedAt = now
	room.UpdatedAt = now

	sql, args, err := r.sb.Insert("rooms").
		Columns("id", "building_id", "room_number", "floor_number", "room_type", "capacity", "current_occupancy", "status", "rent_amount", "amenities", "description", "is_active", "created_at", "updated_at").
		Values(room.ID, room.BuildingID, room.RoomNumber, room.FloorNumber, room.RoomType, room.Capacity, room.CurrentOccupancy, room.Status, room.RentAmount, room.Amenities, room.Description, room.IsActive, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create room query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "rooms_building_id_room_number_key") {
			return apperrors.ErrRoomNumberExists
		}
		logger.Error().Err(err).Str("roomNumber", room.RoomNumber).Msg("Error executing create room query")
		return fmt.Errorf("error creating room: %w", err)
	}

	return nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	sql, args, err := r.sb.Select(roomColumns).
		From("rooms r").
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room query: %w", err)
	}

	room, err := scanRoom(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		logger.Error().Err(err).Str("id", id.String()).Msg("Error scanning room row")
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}

	return room, nil
}

// RoomFilter holds optional room listing filters
type RoomFilter struct {
	BuildingID  *uuid.UUID
	FloorNumber *int
	RoomType    string
	Status      string
	Search      string
}

// List retrieves rooms matching the filter with pagination
func (r *RoomRepository) List(ctx context.Context, filter RoomFilter, offset uint64, limit int) ([]*models.Room, int64, error) {
	query := r.sb.Select(roomColumns + ", b.name, COUNT(*) OVER() AS total_count").
		From("rooms r").
		Join("buildings b ON b.id = r.building_id").
		Where(squirrel.Eq{"r.is_active": true})

	if filter.BuildingID != nil {
		query = query.Where(squirrel.Eq{"r.building_id": *filter.BuildingID})
	}
	if filter.FloorNumber != nil {
		query = query.Where(squirrel.Eq{"r.floor_number": *filter.FloorNumber})
	}
	if filter.RoomType != "" {
		query = query.Where(squirrel.Eq{"r.room_type": filter.RoomType})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.ILike{"r.room_number": "%" + filter.Search + "%"})
	}

	sql, args, err := query.
		OrderBy("b.name ASC", "r.floor_number ASC", "r.room_number ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list rooms query")
		return nil, 0, fmt.Errorf("error listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	var total int64
	for rows.Next() {
		var m models.Room
		var buildingName string
		err := rows.Scan(
			&m.ID, &m.BuildingID, &m.RoomNumber, &m.FloorNumber, &m.RoomType,
			&m.Capacity, &m.CurrentOccupancy, &m.Status, &m.RentAmount,
			&m.Amenities, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
			&buildingName, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning room row: %w", err)
		}
		m.Building = &models.Building{ID: m.BuildingID, Name: buildingName}
		rooms = append(rooms, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, total, nil
}

// ListAvailable retrieves rooms with spare capacity, not under maintenance
func (r *RoomRepository) ListAvailable(ctx context.Context, buildingID *uuid.UUID) ([]*models.Room, error) {
	query := r.sb.Select(roomColumns).
		From("rooms r").
		Where(squirrel.Eq{"r.is_active": true}).
		Where(squirrel.NotEq{"r.status": models.RoomStatusMaintenance}).
		Where("r.current_occupancy < r.capacity")

	if buildingID != nil {
		query = query.Where(squirrel.Eq{"r.building_id": *buildingID})
	}

	sql, args, err := query.
		OrderBy("r.floor_number ASC", "r.room_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list available rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, nil
}

// ListForStats retrieves the minimal room fields needed for occupancy stats
func (r *RoomRepository) ListForStats(ctx context.Context) ([]*models.Room, error) {
	sql, args, err := r.sb.Select("r.id, r.capacity, r.current_occupancy, r.status").
		From("rooms r").
		Where(squirrel.Eq{"r.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build room stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying room stats: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var m models.Room
		if err := rows.Scan(&m.ID, &m.Capacity, &m.CurrentOccupancy, &m.Status); err != nil {
			return nil, fmt.Errorf("error scanning room stats row: %w", err)
		}
		rooms = append(rooms, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room stats rows: %w", err)
	}

	return rooms, nil
}

// Update updates mutable room fields
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	sql, args, err := r.sb.Update("rooms").
		Set("room_number", room.RoomNumber).
		Set("floor_number", room.FloorNumber).
		Set("room_type", room.RoomType).
		Set("capacity", room.Capacity).
		Set("status", room.Status).
		Set("rent_amount", room.RentAmount).
		Set("amenities", room.Amenities).
		Set("description", room.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update room query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "rooms_building_id_room_number_key") {
			return apperrors.ErrRoomNumberExists
		}
		logger.Error().Err(err).Str("id", room.ID.String()).Msg("Error executing update room query")
		return fmt.Errorf("error updating room: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// Delete soft-deletes a room
func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("rooms").
		Set("is_active", false).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete room query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// IncrementOccupancyTx increments a room's occupancy inside a transaction.
// The WHERE clause enforces the capacity ceiling at the database, so two
// concurrent allotments cannot both take the last slot. Returns ErrRoomFull
// when the guard rejects the update.
func (r *RoomRepository) IncrementOccupancyTx(ctx context.Context, tx pgx.Tx, roomID uuid.UUID) error {
	sql := `UPDATE rooms
		SET current_occupancy = current_occupancy + 1,
		    status = CASE WHEN current_occupancy + 1 >= capacity THEN 'occupied' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND current_occupancy < capacity AND status != 'maintenance'`

	cmdTag, err := tx.Exec(ctx, sql, roomID)
	if err != nil {
		return fmt.Errorf("error incrementing room occupancy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomFull
	}

	return nil
}

// DecrementOccupancyTx decrements a room's occupancy inside a transaction.
// The counter never goes below zero. A room that exists with zero occupancy
// means the counter and the allotment rows disagree, which is reported as
// ErrRoomNotOccupied rather than a missing room.
func (r *RoomRepository) DecrementOccupancyTx(ctx context.Context, tx pgx.Tx, roomID uuid.UUID) error {
	sql := `UPDATE rooms
		SET current_occupancy = current_occupancy - 1,
		    status = CASE WHEN status = 'occupied' THEN 'available' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND current_occupancy > 0`

	cmdTag, err := tx.Exec(ctx, sql, roomID)
	if err != nil {
		return fmt.Errorf("error decrementing room occupancy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)", roomID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking room existence: %w", err)
		}
		if !exists {
			return apperrors.ErrRoomNotFound
		}
		return apperrors.ErrRoomNotOccupied
	}

	return nil
}
