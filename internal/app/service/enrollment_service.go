package service

import (
	"context"
	"fmt"

	"courseapp/internal/common"
	"courseapp/internal/domain/model"
	"courseapp/internal/domain/repository"

	"github.com/google/uuid"
)

type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type UpdateProgressRequest struct {
	ID       string `json:"id" validate:"required"`
	Progress int    `json:"progress" validate:"gte=0,lte=100"`
}

type EnrollmentList struct {
	Enrollments []model.Enrollment    `json:"enrollments"`
	Stats       model.EnrollmentStats `json:"stats"`
}

// Enroll registers the verified user into a course.
func (s *EnrollmentService) Enroll(ctx context.Context, userID string, req EnrollRequest) (*model.Enrollment, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.FindByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: req.CourseID,
		Progress: 0,
		Status:   model.EnrollmentActive,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}
	return enrollment, nil
}

// ListByUser returns the user's enrollments with their courses plus summary
// stats.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID string) (*EnrollmentList, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	stats := model.EnrollmentStats{Total: len(enrollments)}
	for _, e := range enrollments {
		switch e.Status {
		case model.EnrollmentActive:
			stats.Active++
		case model.EnrollmentCompleted:
			stats.Completed++
		}
	}
	return &EnrollmentList{Enrollments: enrollments, Stats: stats}, nil
}

// UpdateProgress records progress on the user's own enrollment; reaching 100
// marks it completed.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, userID string, req UpdateProgressRequest) (*model.Enrollment, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != userID {
		return nil, fmt.Errorf("enrollment belongs to another user: %w", common.ErrForbidden)
	}

	status := enrollment.Status
	if req.Progress >= 100 {
		status = model.EnrollmentCompleted
	}

	updated, err := s.enrollmentRepo.UpdateProgress(ctx, req.ID, req.Progress, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	return updated, nil
}
