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

// StudentRepository handles student record database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const studentColumns = "s.id, s.register_number, s.full_name, s.email, s.phone, s.hostel_status, s.room_number, s.building_id, s.is_active, s.created_at, s.updated_at"

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.RegisterNumber, &s.FullName, &s.Email, &s.Phone,
		&s.HostelStatus, &s.RoomNumber, &s.BuildingID, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now()
	student.ID = uuid.New()
	student.CreatedAt = now
	student.UpdatedAt = now

	sql, args, err := r.sb.Insert("students").
		Columns("id", "register_number", "full_name", "email", "phone", "hostel_status", "building_id", "is_active", "created_at", "updated_at").
		Values(student.ID, student.RegisterNumber, student.FullName, student.Email, student.Phone, student.HostelStatus, student.BuildingID, student.IsActive, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_register_number_key") {
			return apperrors.ErrRegisterNumberAlreadyExists
		}
		logger.Error().Err(err).Str("registerNumber", student.RegisterNumber).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID, including the building relation if set
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students s").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("id", id.String()).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByRegisterNumber retrieves a student by register number
func (r *StudentRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students s").
		Where(squirrel.Eq{"s.register_number": registerNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by register number query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// List retrieves students with filters and pagination
func (r *StudentRepository) List(ctx context.Context, buildingID *uuid.UUID, hostelStatus string, search string, offset uint64, limit int) ([]*models.Student, int64, error) {
	query := r.sb.Select(studentColumns + ", b.name, COUNT(*) OVER() AS total_count").
		From("students s").
		LeftJoin("buildings b ON b.id = s.building_id")

	if buildingID != nil {
		query = query.Where(squirrel.Eq{"s.building_id": *buildingID})
	}
	if hostelStatus != "" {
		query = query.Where(squirrel.Eq{"s.hostel_status": hostelStatus})
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"s.full_name": pattern},
			squirrel.ILike{"s.register_number": pattern},
		})
	}

	sql, args, err := query.
		OrderBy("s.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var total int64
	for rows.Next() {
		var s models.Student
		var buildingName *string
		err := rows.Scan(
			&s.ID, &s.RegisterNumber, &s.FullName, &s.Email, &s.Phone,
			&s.HostelStatus, &s.RoomNumber, &s.BuildingID, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt,
			&buildingName, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		if buildingName != nil && s.BuildingID != nil {
			s.Building = &models.Building{ID: *s.BuildingID, Name: *buildingName}
		}
		students = append(students, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

// Update updates mutable student fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("full_name", student.FullName).
		Set("email", student.Email).
		Set("phone", student.Phone).
		Set("hostel_status", student.HostelStatus).
		Set("building_id", student.BuildingID).
		Set("is_active", student.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("id", student.ID.String()).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete soft-deletes a student record
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("students").
		Set("is_active", false).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetRoomNumberTx updates the denormalized room number on a student row
// inside an existing transaction. Allotment flows call this so the mirror
// never drifts from the allotments table.
func (r *StudentRepository) SetRoomNumberTx(ctx context.Context, tx pgx.Tx, studentID uuid.UUID, roomNumber *string) error {
	sql, args, err := r.sb.Update("students").
		Set("room_number", roomNumber).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set room number query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting student room number: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Counts returns total and active student counts
func (r *StudentRepository) Counts(ctx context.Context) (total int, active int, err error) {
	sql := "SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM students"
	if err := r.db.QueryRow(ctx, sql).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("error counting students: %w", err)
	}
	return total, active, nil
}
