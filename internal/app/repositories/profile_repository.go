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

const profileColumns = "id, email, password, full_name, role, phone, is_active, last_login_at, created_at, updated_at"

// ProfileRepository handles user profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Password, &p.FullName, &p.Role,
		&p.Phone, &p.IsActive, &p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	now := time.Now()
	profile.ID = uuid.New()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	sql, args, err := r.sb.Insert("profiles").
		Columns("id", "email", "password", "full_name", "role", "phone", "is_active", "created_at", "updated_at").
		Values(profile.ID, profile.Email, profile.Password, profile.FullName, profile.Role, profile.Phone, profile.IsActive, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", profile.Email).Msg("Error executing create profile query")
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Str("id", id.String()).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("profiles").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile by email query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// List retrieves profiles with optional role filter and pagination.
// Returns the page of profiles plus the total matching count.
func (r *ProfileRepository) List(ctx context.Context, role string, search string, offset uint64, limit int) ([]*models.Profile, int64, error) {
	query := r.sb.Select(profileColumns + ", COUNT(*) OVER() AS total_count").
		From("profiles")

	if role != "" {
		query = query.Where(squirrel.Eq{"role": role})
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	sql, args, err := query.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list profiles query")
		return nil, 0, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	var total int64
	for rows.Next() {
		var p models.Profile
		err := rows.Scan(
			&p.ID, &p.Email, &p.Password, &p.FullName, &p.Role,
			&p.Phone, &p.IsActive, &p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, total, nil
}

// Update updates mutable profile fields
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		Set("full_name", profile.FullName).
		Set("role", profile.Role).
		Set("phone", profile.Phone).
		Set("is_active", profile.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("id", profile.ID.String()).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// UpdateLastLogin records a successful login time
func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Update("profiles").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("id", id.String()).Msg("Error updating last login")
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// CountStaff counts active accounts holding a staff role
func (r *ProfileRepository) CountStaff(ctx context.Context) (int, error) {
	staffRoles := []models.RoleType{
		models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden,
		models.RoleDeputyWarden, models.RoleAssistantWarden, models.RoleCaretaker,
	}

	sql, args, err := r.sb.Select("COUNT(*)").
		From("profiles").
		Where(squirrel.Eq{"role": staffRoles, "is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count staff query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting staff: %w", err)
	}

	return count, nil
}
