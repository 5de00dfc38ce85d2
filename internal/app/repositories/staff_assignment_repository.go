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

// StaffAssignmentRepository handles warden/caretaker building assignments
type StaffAssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStaffAssignmentRepository creates a new StaffAssignmentRepository
func NewStaffAssignmentRepository(db *pgxpool.Pool) *StaffAssignmentRepository {
	return &StaffAssignmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create assigns a staff member to a building
func (r *StaffAssignmentRepository) Create(ctx context.Context, assignment *models.StaffAssignment) error {
	assignment.ID = uuid.New()
	if assignment.StartDate.IsZero() {
		assignment.StartDate = time.Now()
	}
	assignment.IsActive = true

	sql, args, err := r.sb.Insert("staff_assignments").
		Columns("id", "staff_id", "building_id", "floor_numbers", "assignment_type", "start_date", "is_active").
		Values(assignment.ID, assignment.StaffID, assignment.BuildingID, assignment.FloorNumbers, assignment.AssignmentType, assignment.StartDate, assignment.IsActive).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create staff assignment query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("staffID", assignment.StaffID.String()).Msg("Error executing create staff assignment query")
		return fmt.Errorf("error creating staff assignment: %w", err)
	}

	return nil
}

// ListByStaff retrieves the active assignments for a staff member
func (r *StaffAssignmentRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.StaffAssignment, error) {
	sql, args, err := r.sb.Select("id, staff_id, building_id, floor_numbers, assignment_type, start_date, is_active").
		From("staff_assignments").
		Where(squirrel.Eq{"staff_id": staffID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list staff assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing staff assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.StaffAssignment
	for rows.Next() {
		var a models.StaffAssignment
		err := rows.Scan(&a.ID, &a.StaffID, &a.BuildingID, &a.FloorNumbers, &a.AssignmentType, &a.StartDate, &a.IsActive)
		if err != nil {
			return nil, fmt.Errorf("error scanning staff assignment row: %w", err)
		}
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff assignment rows: %w", err)
	}

	return assignments, nil
}

// HasBuildingAccess reports whether a staff member has an active assignment
// covering the given building
func (r *StaffAssignmentRepository) HasBuildingAccess(ctx context.Context, staffID, buildingID uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("staff_assignments").
		Where(squirrel.Eq{"staff_id": staffID, "building_id": buildingID, "is_active": true}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build building access query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking building access: %w", err)
	}

	return count > 0, nil
}

// Deactivate ends an assignment
func (r *StaffAssignmentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("staff_assignments").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build deactivate assignment query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deactivating staff assignment: %w", err)
	}

	return nil
}
