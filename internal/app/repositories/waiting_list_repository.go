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

// WaitingListRepository handles waiting list database operations
type WaitingListRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewWaitingListRepository creates a new WaitingListRepository
func NewWaitingListRepository(db *pgxpool.Pool) *WaitingListRepository {
	return &WaitingListRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const waitingColumns = "w.id, w.student_id, w.preferred_building_id, w.preferred_room_type, w.preferred_floor, w.priority_score, w.request_date, w.status, w.notes"

// Create adds a student to the waiting list
func (r *WaitingListRepository) Create(ctx context.Context, entry *models.WaitingListEntry) error {
	entry.ID = uuid.New()
	entry.RequestDate = time.Now()
	entry.Status = models.WaitingStatusWaiting

	sql, args, err := r.sb.Insert("waiting_list").
		Columns("id", "student_id", "preferred_building_id", "preferred_room_type", "preferred_floor", "priority_score", "request_date", "status", "notes").
		Values(entry.ID, entry.StudentID, entry.PreferredBuildingID, entry.PreferredRoomType, entry.PreferredFloor, entry.PriorityScore, entry.RequestDate, entry.Status, entry.Notes).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create waiting entry query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "one_waiting_entry_per_student") {
			return apperrors.ErrAlreadyOnWaitingList
		}
		logger.Error().Err(err).Str("studentID", entry.StudentID.String()).Msg("Error executing create waiting entry query")
		return fmt.Errorf("error creating waiting entry: %w", err)
	}

	return nil
}

// List retrieves waiting entries in queue order: priority first, then
// earliest request.
func (r *WaitingListRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.WaitingListEntry, int64, error) {
	sql, args, err := r.sb.Select(waitingColumns + ", s.full_name, s.register_number, COUNT(*) OVER() AS total_count").
		From("waiting_list w").
		Join("students s ON s.id = w.student_id").
		Where(squirrel.Eq{"w.status": models.WaitingStatusWaiting}).
		OrderBy("w.priority_score DESC", "w.request_date ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list waiting entries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list waiting entries query")
		return nil, 0, fmt.Errorf("error listing waiting entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WaitingListEntry
	var total int64
	for rows.Next() {
		var w models.WaitingListEntry
		var studentName, registerNumber string
		err := rows.Scan(
			&w.ID, &w.StudentID, &w.PreferredBuildingID, &w.PreferredRoomType,
			&w.PreferredFloor, &w.PriorityScore, &w.RequestDate, &w.Status, &w.Notes,
			&studentName, &registerNumber, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning waiting entry row: %w", err)
		}
		w.Student = &models.Student{ID: w.StudentID, FullName: studentName, RegisterNumber: registerNumber}
		entries = append(entries, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating waiting entry rows: %w", err)
	}

	return entries, total, nil
}

// GetByID retrieves a waiting entry by ID
func (r *WaitingListRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WaitingListEntry, error) {
	sql, args, err := r.sb.Select(waitingColumns).
		From("waiting_list w").
		Where(squirrel.Eq{"w.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get waiting entry query: %w", err)
	}

	var w models.WaitingListEntry
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&w.ID, &w.StudentID, &w.PreferredBuildingID, &w.PreferredRoomType,
		&w.PreferredFloor, &w.PriorityScore, &w.RequestDate, &w.Status, &w.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWaitingEntryNotFound
		}
		return nil, fmt.Errorf("error retrieving waiting entry: %w", err)
	}

	return &w, nil
}

// GetWaitingByStudent retrieves a student's open waiting entry if present
func (r *WaitingListRepository) GetWaitingByStudent(ctx context.Context, studentID uuid.UUID) (*models.WaitingListEntry, error) {
	sql, args, err := r.sb.Select(waitingColumns).
		From("waiting_list w").
		Where(squirrel.Eq{"w.student_id": studentID, "w.status": models.WaitingStatusWaiting}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get waiting entry by student query: %w", err)
	}

	var w models.WaitingListEntry
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&w.ID, &w.StudentID, &w.PreferredBuildingID, &w.PreferredRoomType,
		&w.PreferredFloor, &w.PriorityScore, &w.RequestDate, &w.Status, &w.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWaitingEntryNotFound
		}
		return nil, fmt.Errorf("error retrieving waiting entry: %w", err)
	}

	return &w, nil
}

// MarkAllotted closes a waiting entry after its student receives a room
func (r *WaitingListRepository) MarkAllotted(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, models.WaitingStatusAllotted)
}

// Cancel removes a waiting entry from the queue
func (r *WaitingListRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, models.WaitingStatusCancelled)
}

func (r *WaitingListRepository) setStatus(ctx context.Context, id uuid.UUID, status models.WaitingStatus) error {
	sql, args, err := r.sb.Update("waiting_list").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": models.WaitingStatusWaiting}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build waiting status update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating waiting entry status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrWaitingEntryNotFound
	}

	return nil
}

// CountWaiting returns the number of students currently waiting
func (r *WaitingListRepository) CountWaiting(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("waiting_list").
		Where(squirrel.Eq{"status": models.WaitingStatusWaiting}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count waiting query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting waiting entries: %w", err)
	}

	return count, nil
}
