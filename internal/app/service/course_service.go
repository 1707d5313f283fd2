package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"courseapp/internal/common"
	"courseapp/internal/domain/model"
	"courseapp/internal/domain/repository"
	"courseapp/internal/platform/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

const courseListCacheKey = "courses:list"

type CourseService struct {
	courseRepo repository.CourseRepository
	rdb        *redis.Client // nil disables caching
}

func NewCourseService(courseRepo repository.CourseRepository, rdb *redis.Client) *CourseService {
	return &CourseService{courseRepo: courseRepo, rdb: rdb}
}

type CreateCourseRequest struct {
	Title       string            `json:"title" validate:"required"`
	Category    string            `json:"category" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Level       model.CourseLevel `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration    string            `json:"duration" validate:"required"`
	Price       float64           `json:"price" validate:"gte=0"`
}

type UpdateCourseRequest struct {
	ID          string             `json:"id" validate:"required"`
	Title       *string            `json:"title,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Description *string            `json:"description,omitempty"`
	Level       *model.CourseLevel `json:"level,omitempty"`
	Duration    *string            `json:"duration,omitempty"`
	Price       *float64           `json:"price,omitempty"`
}

// Create stores a new course owned by creatorID. The owner always comes from
// the verified token's claims, never from the request body.
func (s *CourseService) Create(ctx context.Context, creatorID string, req CreateCourseRequest) (*model.Course, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Level == "" {
		req.Level = model.LevelBeginner
	}

	course := &model.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Category:    req.Category,
		Description: req.Description,
		Level:       req.Level,
		Duration:    req.Duration,
		Price:       req.Price,
		CreatedBy:   creatorID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.invalidateListCache(ctx)
	return course, nil
}

// List returns all courses with their creators, serving from the Redis cache
// when warm.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, courseListCacheKey).Bytes()
		if err == nil {
			var courses []model.Course
			if err := json.Unmarshal(cached, &courses); err == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(courses); err == nil {
			if err := s.rdb.Set(ctx, courseListCacheKey, payload, config.AppConfig.CourseCacheTTL).Err(); err != nil {
				log.Printf("WARN: caching course list failed: %v", err)
			}
		}
	}
	return courses, nil
}

func (s *CourseService) Update(ctx context.Context, req UpdateCourseRequest) (*model.Course, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
		course.Slug = slug.Make(*req.Title)
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Level != nil {
		if !req.Level.Valid() {
			return nil, fmt.Errorf("unknown level %q: %w", *req.Level, common.ErrValidation)
		}
		course.Level = *req.Level
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative: %w", common.ErrValidation)
		}
		course.Price = *req.Price
	}

	updated, err := s.courseRepo.Update(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.invalidateListCache(ctx)
	return updated, nil
}

func (s *CourseService) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, courseListCacheKey).Err(); err != nil {
		log.Printf("WARN: invalidating course list cache failed: %v", err)
	}
}
