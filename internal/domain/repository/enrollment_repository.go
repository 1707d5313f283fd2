package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courseapp/internal/common"
	"courseapp/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error)
	FindByID(ctx context.Context, id string) (*model.Enrollment, error)
	UpdateProgress(ctx context.Context, id string, progress int, status model.EnrollmentStatus) (*model.Enrollment, error)
}

type pgEnrollmentRepository struct {
	db *sql.DB
}

func NewPgEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &pgEnrollmentRepository{db: db}
}

const enrollmentColumns = `id, user_id, course_id, progress, status, enrolled_at, completed_at`

func scanEnrollment(row interface{ Scan(...interface{}) error }) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	var completedAt sql.NullTime
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.Status, &e.EnrolledAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		e.CompletedAt = &completedAt.Time
	}
	return e, nil
}

func (r *pgEnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	query := `INSERT INTO enrollments (id, user_id, course_id, progress, status)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		enrollment.ID, enrollment.UserID, enrollment.CourseID, enrollment.Progress, enrollment.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // already enrolled
				return fmt.Errorf("user already enrolled in course: %w", common.ErrConflict)
			case "23503": // course or user gone
				return fmt.Errorf("referenced user or course does not exist: %w", common.ErrNotFound)
			}
		}
		return fmt.Errorf("pgEnrollmentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	query := `SELECT e.id, e.user_id, e.course_id, e.progress, e.status, e.enrolled_at, e.completed_at,
	                 c.id, c.title, c.slug, c.category, c.description, c.level,
	                 c.duration, c.price, c.created_by, c.created_at, c.updated_at
	          FROM enrollments e
	          JOIN courses c ON c.id = e.course_id
	          WHERE e.user_id = $1
	          ORDER BY e.enrolled_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgEnrollmentRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		e := model.Enrollment{Course: &model.Course{}}
		var completedAt sql.NullTime
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.Status, &e.EnrolledAt, &completedAt,
			&e.Course.ID, &e.Course.Title, &e.Course.Slug, &e.Course.Category,
			&e.Course.Description, &e.Course.Level, &e.Course.Duration, &e.Course.Price,
			&e.Course.CreatedBy, &e.Course.CreatedAt, &e.Course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("pgEnrollmentRepository.ListByUser scan: %w", err)
		}
		if completedAt.Valid {
			e.CompletedAt = &completedAt.Time
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *pgEnrollmentRepository) FindByID(ctx context.Context, id string) (*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	enrollment, err := scanEnrollment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEnrollmentRepository.FindByID: %w", err)
	}
	return enrollment, nil
}

func (r *pgEnrollmentRepository) UpdateProgress(ctx context.Context, id string, progress int, status model.EnrollmentStatus) (*model.Enrollment, error) {
	query := `UPDATE enrollments
	          SET progress = $2, status = $3,
	              completed_at = CASE WHEN $3 = 'completed' THEN now() ELSE completed_at END
	          WHERE id = $1 RETURNING ` + enrollmentColumns
	enrollment, err := scanEnrollment(r.db.QueryRowContext(ctx, query, id, progress, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEnrollmentRepository.UpdateProgress: %w", err)
	}
	return enrollment, nil
}
