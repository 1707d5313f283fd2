package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"courseapp/internal/common"
	"courseapp/internal/common/security"
	"courseapp/internal/domain/model"
	"courseapp/internal/platform/config"
)

func initTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:         []byte("test-secret"),
		JWTExp:         7 * 24 * time.Hour,
		CourseCacheTTL: time.Minute,
	}
	security.InitJWT()
}

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	cp := *user
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, user *model.User) (*model.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Name = user.Name
	stored.Phone = user.Phone
	stored.Role = user.Role
	stored.Status = user.Status
	stored.UpdatedAt = time.Now()
	cp := *stored
	return &cp, nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role model.Role) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// memCourseRepo is an in-memory CourseRepository for tests.
type memCourseRepo struct {
	courses map[string]*model.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[string]*model.Course{}}
}

func (r *memCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range r.courses {
		if c.Slug == course.Slug {
			return fmt.Errorf("course with given slug already exists: %w", common.ErrConflict)
		}
	}
	cp := *course
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.courses[course.ID] = &cp
	return nil
}

func (r *memCourseRepo) FindByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCourseRepo) List(_ context.Context) ([]model.Course, error) {
	courses := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.After(courses[j].CreatedAt) })
	return courses, nil
}

func (r *memCourseRepo) Update(_ context.Context, course *model.Course) (*model.Course, error) {
	stored, ok := r.courses[course.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *course
	cp.CreatedAt = stored.CreatedAt
	cp.UpdatedAt = time.Now()
	r.courses[course.ID] = &cp
	out := cp
	return &out, nil
}

// memEnrollmentRepo is an in-memory EnrollmentRepository for tests.
type memEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
}

func newMemEnrollmentRepo() *memEnrollmentRepo {
	return &memEnrollmentRepo{enrollments: map[string]*model.Enrollment{}}
}

func (r *memEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	for _, e := range r.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return fmt.Errorf("user already enrolled in course: %w", common.ErrConflict)
		}
	}
	cp := *enrollment
	cp.EnrolledAt = time.Now()
	r.enrollments[enrollment.ID] = &cp
	return nil
}

func (r *memEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]model.Enrollment, error) {
	enrollments := []model.Enrollment{}
	for _, e := range r.enrollments {
		if e.UserID == userID {
			enrollments = append(enrollments, *e)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].EnrolledAt.After(enrollments[j].EnrolledAt)
	})
	return enrollments, nil
}

func (r *memEnrollmentRepo) FindByID(_ context.Context, id string) (*model.Enrollment, error) {
	e, ok := r.enrollments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memEnrollmentRepo) UpdateProgress(_ context.Context, id string, progress int, status model.EnrollmentStatus) (*model.Enrollment, error) {
	stored, ok := r.enrollments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Progress = progress
	stored.Status = status
	if status == model.EnrollmentCompleted && stored.CompletedAt == nil {
		now := time.Now()
		stored.CompletedAt = &now
	}
	cp := *stored
	return &cp, nil
}

// memChatRepo is an in-memory ChatRepository for tests.
type memChatRepo struct {
	messages []model.ChatMessage
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{}
}

func (r *memChatRepo) Create(_ context.Context, message *model.ChatMessage) error {
	cp := *message
	cp.CreatedAt = time.Now()
	r.messages = append(r.messages, cp)
	return nil
}

func (r *memChatRepo) ListByUser(_ context.Context, userID string) ([]model.ChatMessage, error) {
	out := []model.ChatMessage{}
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].UserID == userID {
			out = append(out, r.messages[i])
		}
	}
	return out, nil
}

// fakeGenerator echoes a canned mentor reply.
type fakeGenerator struct {
	reply string
	err   error
}

func (g *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if g.reply != "" {
		return g.reply, nil
	}
	return "mentor: " + prompt, nil
}

// fakeMailer records what would have been sent.
type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) Send(toName, toAddr, subject, body string) {
	m.sent = append(m.sent, toAddr)
}
