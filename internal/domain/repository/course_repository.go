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

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) (*model.Course, error)
}

type pgCourseRepository struct {
	db *sql.DB
}

func NewPgCourseRepository(db *sql.DB) CourseRepository {
	return &pgCourseRepository{db: db}
}

const courseColumns = `id, title, slug, category, description, level, duration, price, created_by, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Category, &c.Description, &c.Level,
		&c.Duration, &c.Price, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `INSERT INTO courses (id, title, slug, category, description, level, duration, price, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Slug, course.Category, course.Description,
		course.Level, course.Duration, course.Price, course.CreatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("course with given slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCourseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.FindByID: %w", err)
	}
	return course, nil
}

// List returns all courses newest-first, each joined with its creator's
// name, email and role.
func (r *pgCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	query := `SELECT c.id, c.title, c.slug, c.category, c.description, c.level,
	                 c.duration, c.price, c.created_by, c.created_at, c.updated_at,
	                 u.name, u.email, u.role
	          FROM courses c
	          JOIN users u ON u.id = c.created_by
	          ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCourseRepository.List: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c := model.Course{Creator: &model.CourseCreator{}}
		err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Category, &c.Description, &c.Level,
			&c.Duration, &c.Price, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&c.Creator.Name, &c.Creator.Email, &c.Creator.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("pgCourseRepository.List scan: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *pgCourseRepository) Update(ctx context.Context, course *model.Course) (*model.Course, error) {
	query := `UPDATE courses SET title = $2, slug = $3, category = $4, description = $5,
	                 level = $6, duration = $7, price = $8, updated_at = now()
	          WHERE id = $1 RETURNING ` + courseColumns
	updated, err := scanCourse(r.db.QueryRowContext(ctx, query,
		course.ID, course.Title, course.Slug, course.Category, course.Description,
		course.Level, course.Duration, course.Price))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.Update: %w", err)
	}
	return updated, nil
}
