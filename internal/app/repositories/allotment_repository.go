package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/db"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/dberrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/helpers"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
)

// AllotmentRepository handles room allotment database operations. The
// allot, vacate and transfer flows run inside a single transaction so the
// occupancy counter, the allotment row and the student's room mirror can
// never disagree.
type AllotmentRepository struct {
	db       *db.PostgresDB
	sb       squirrel.StatementBuilderType
	rooms    *RoomRepository
	students *StudentRepository
}

// NewAllotmentRepository creates a new AllotmentRepository
func NewAllotmentRepository(database *db.PostgresDB, rooms *RoomRepository, students *StudentRepository) *AllotmentRepository {
	return &AllotmentRepository{
		db:       database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		rooms:    rooms,
		students: students,
	}
}

const allotmentColumns = "a.id, a.student_id, a.room_id, a.allotted_by, a.allotment_date, a.vacate_date, a.status, a.notes, a.created_at"

// GetActiveByStudent retrieves a student's active allotment if one exists
func (r *AllotmentRepository) GetActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error) {
	sql, args, err := r.sb.Select(allotmentColumns).
		From("room_allotments a").
		Where(squirrel.Eq{"a.student_id": studentID, "a.status": models.AllotmentStatusActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active allotment query: %w", err)
	}

	var a models.RoomAllotment
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.StudentID, &a.RoomID, &a.AllottedBy, &a.AllotmentDate,
		&a.VacateDate, &a.Status, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Error scanning active allotment row")
		return nil, fmt.Errorf("error retrieving active allotment: %w", err)
	}

	return &a, nil
}

// GetActiveByID retrieves an allotment by id, restricted to active status
func (r *AllotmentRepository) GetActiveByID(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error) {
	sql, args, err := r.sb.Select(allotmentColumns).
		From("room_allotments a").
		Where(squirrel.Eq{"a.id": allotmentID, "a.status": models.AllotmentStatusActive}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active allotment query: %w", err)
	}

	var a models.RoomAllotment
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.StudentID, &a.RoomID, &a.AllottedBy, &a.AllotmentDate,
		&a.VacateDate, &a.Status, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		logger.Error().Err(err).Str("allotmentID", allotmentID.String()).Msg("Error scanning allotment row")
		return nil, fmt.Errorf("error retrieving allotment: %w", err)
	}

	return &a, nil
}

// AllotmentFilter holds optional allotment listing filters
type AllotmentFilter struct {
	StudentID *uuid.UUID
	RoomID    *uuid.UUID
	Status    string
}

// List retrieves allotments matching the filter with pagination, joining
// student and room details for display.
func (r *AllotmentRepository) List(ctx context.Context, filter AllotmentFilter, offset uint64, limit int) ([]*models.RoomAllotment, int64, error) {
	query := r.sb.Select(allotmentColumns + ", s.full_name, s.register_number, rm.room_number, COUNT(*) OVER() AS total_count").
		From("room_allotments a").
		Join("students s ON s.id = a.student_id").
		Join("rooms rm ON rm.id = a.room_id")

	if filter.StudentID != nil {
		query = query.Where(squirrel.Eq{"a.student_id": *filter.StudentID})
	}
	if filter.RoomID != nil {
		query = query.Where(squirrel.Eq{"a.room_id": *filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": filter.Status})
	}

	sql, args, err := query.
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list allotments query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list allotments query")
		return nil, 0, fmt.Errorf("error listing allotments: %w", err)
	}
	defer rows.Close()

	var allotments []*models.RoomAllotment
	var total int64
	for rows.Next() {
		var a models.RoomAllotment
		var studentName, registerNumber, roomNumber string
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.RoomID, &a.AllottedBy, &a.AllotmentDate,
			&a.VacateDate, &a.Status, &a.Notes, &a.CreatedAt,
			&studentName, &registerNumber, &roomNumber, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning allotment row: %w", err)
		}
		a.Student = &models.Student{ID: a.StudentID, FullName: studentName, RegisterNumber: registerNumber}
		a.Room = &models.Room{ID: a.RoomID, RoomNumber: roomNumber}
		allotments = append(allotments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating allotment rows: %w", err)
	}

	return allotments, total, nil
}

// AllotRoom creates an active allotment for a student in one transaction.
// Steps: take an occupancy slot (capacity guard in SQL), insert the
// allotment row (partial unique index rejects a second active allotment),
// then mirror the room number onto the student.
func (r *AllotmentRepository) AllotRoom(ctx context.Context, studentID, roomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	allotment := &models.RoomAllotment{
		ID:            uuid.New(),
		StudentID:     studentID,
		RoomID:        roomID,
		AllottedBy:    allottedBy,
		AllotmentDate: time.Now(),
		Status:        models.AllotmentStatusActive,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.rooms.IncrementOccupancyTx(ctx, tx, roomID); err != nil {
			return err
		}

		if err := r.insertAllotmentTx(ctx, tx, allotment); err != nil {
			return err
		}

		roomNumber, err := r.roomNumberTx(ctx, tx, roomID)
		if err != nil {
			return err
		}

		return r.students.SetRoomNumberTx(ctx, tx, studentID, &roomNumber)
	})
	if err != nil {
		return nil, err
	}

	return allotment, nil
}

// Vacate closes an active allotment in one transaction. A vacated or
// transferred allotment id reports not found. Notes passed in are merged
// onto the allotment's existing notes, and the returned allotment carries
// the merged value.
func (r *AllotmentRepository) Vacate(ctx context.Context, allotmentID uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	var closed *models.RoomAllotment

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		active, err := r.lockActiveAllotmentTx(ctx, tx, allotmentID)
		if err != nil {
			return err
		}

		merged := mergeNotes(active.Notes, notes)
		if err := r.closeAllotmentTx(ctx, tx, active.ID, models.AllotmentStatusVacated, merged); err != nil {
			return err
		}

		if err := r.rooms.DecrementOccupancyTx(ctx, tx, active.RoomID); err != nil {
			return err
		}

		if err := r.students.SetRoomNumberTx(ctx, tx, active.StudentID, nil); err != nil {
			return err
		}

		today := helpers.Today()
		active.Status = models.AllotmentStatusVacated
		active.VacateDate = &today
		active.Notes = merged
		closed = active
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// Transfer moves the student on an active allotment to a new room in one
// transaction. The old allotment is marked transferred, both occupancy
// counters are adjusted, a fresh active allotment is created, and the
// student mirror updated. A full target room rolls back every step.
func (r *AllotmentRepository) Transfer(ctx context.Context, allotmentID, newRoomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	var newAllotment *models.RoomAllotment

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		active, err := r.lockActiveAllotmentTx(ctx, tx, allotmentID)
		if err != nil {
			return err
		}

		if active.RoomID == newRoomID {
			return apperrors.NewBadRequestError("Student is already allotted to this room")
		}

		oldRoomNumber, err := r.roomNumberTx(ctx, tx, active.RoomID)
		if err != nil {
			return err
		}
		newRoomNumber, err := r.roomNumberTx(ctx, tx, newRoomID)
		if err != nil {
			return err
		}

		closedNotes := annotateNotes("Transferred to "+newRoomNumber, notes)
		if err := r.closeAllotmentTx(ctx, tx, active.ID, models.AllotmentStatusTransferred, &closedNotes); err != nil {
			return err
		}

		if err := r.rooms.DecrementOccupancyTx(ctx, tx, active.RoomID); err != nil {
			return err
		}

		if err := r.rooms.IncrementOccupancyTx(ctx, tx, newRoomID); err != nil {
			return err
		}

		openedNotes := annotateNotes("Transferred from "+oldRoomNumber, notes)
		newAllotment = &models.RoomAllotment{
			ID:            uuid.New(),
			StudentID:     active.StudentID,
			RoomID:        newRoomID,
			AllottedBy:    allottedBy,
			AllotmentDate: time.Now(),
			Status:        models.AllotmentStatusActive,
			Notes:         &openedNotes,
			CreatedAt:     time.Now(),
		}
		if err := r.insertAllotmentTx(ctx, tx, newAllotment); err != nil {
			return err
		}

		return r.students.SetRoomNumberTx(ctx, tx, active.StudentID, &newRoomNumber)
	})
	if err != nil {
		return nil, err
	}

	return newAllotment, nil
}

func (r *AllotmentRepository) insertAllotmentTx(ctx context.Context, tx pgx.Tx, a *models.RoomAllotment) error {
	sql, args, err := r.sb.Insert("room_allotments").
		Columns("id", "student_id", "room_id", "allotted_by", "allotment_date", "status", "notes", "created_at").
		Values(a.ID, a.StudentID, a.RoomID, a.AllottedBy, a.AllotmentDate, a.Status, a.Notes, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert allotment query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "one_active_allotment_per_student") {
			return apperrors.ErrDuplicateAllotment
		}
		logger.Error().Err(err).Str("studentID", a.StudentID.String()).Msg("Error inserting allotment")
		return fmt.Errorf("error inserting allotment: %w", err)
	}

	return nil
}

// lockActiveAllotmentTx loads an active allotment by id with a row lock
// so concurrent vacate/transfer requests serialize on it.
func (r *AllotmentRepository) lockActiveAllotmentTx(ctx context.Context, tx pgx.Tx, allotmentID uuid.UUID) (*models.RoomAllotment, error) {
	sql := `SELECT id, student_id, room_id, allotted_by, allotment_date, vacate_date, status, notes, created_at
		FROM room_allotments
		WHERE id = $1 AND status = 'active'
		FOR UPDATE`

	var a models.RoomAllotment
	err := tx.QueryRow(ctx, sql, allotmentID).Scan(
		&a.ID, &a.StudentID, &a.RoomID, &a.AllottedBy, &a.AllotmentDate,
		&a.VacateDate, &a.Status, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		return nil, fmt.Errorf("error locking active allotment: %w", err)
	}

	return &a, nil
}

func (r *AllotmentRepository) closeAllotmentTx(ctx context.Context, tx pgx.Tx, allotmentID uuid.UUID, status models.AllotmentStatus, notes *string) error {
	builder := r.sb.Update("room_allotments").
		Set("status", status).
		Set("vacate_date", helpers.Today()).
		Where(squirrel.Eq{"id": allotmentID, "status": models.AllotmentStatusActive})

	if notes != nil {
		builder = builder.Set("notes", notes)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build close allotment query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error closing allotment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAllotmentNotFound
	}

	return nil
}

// annotateNotes prefixes transfer notes with the movement description
func annotateNotes(prefix string, notes *string) string {
	if notes == nil || *notes == "" {
		return prefix
	}
	return prefix + ". " + *notes
}

// mergeNotes appends vacate notes to whatever the allotment already
// carries. Nil when neither side has anything to keep.
func mergeNotes(existing, added *string) *string {
	if added == nil || *added == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return added
	}
	merged := *existing + ". " + *added
	return &merged
}

func (r *AllotmentRepository) roomNumberTx(ctx context.Context, tx pgx.Tx, roomID uuid.UUID) (string, error) {
	var roomNumber string
	err := tx.QueryRow(ctx, "SELECT room_number FROM rooms WHERE id = $1", roomID).Scan(&roomNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrRoomNotFound
		}
		return "", fmt.Errorf("error reading room number: %w", err)
	}
	return roomNumber, nil
}
