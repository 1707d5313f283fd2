package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appMiddleware "courseapp/internal/api/middleware"
	"courseapp/internal/common"
	"courseapp/internal/common/security"
	"courseapp/internal/domain/model"
	"courseapp/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
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

// newAPIRouter mounts a resource handler under its API path with the same
// Verifier chain the real router uses.
func newAPIRouter(pattern string, register func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(appMiddleware.Verifier(security.TokenAuth))
	r.Route(pattern, register)
	return r
}

func tokenFor(t *testing.T, role model.Role) (string, *model.User) {
	t.Helper()
	user := &model.User{
		ID:    uuid.NewString(),
		Name:  "Test " + string(role),
		Email: string(role) + "@example.com",
		Role:  role,
	}
	token, err := security.GenerateToken(user)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token, user
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: security.AccessTokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) common.APIResponse {
	t.Helper()
	var resp common.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response envelope: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

// In-memory repositories shared by the handler tests.

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

type memCourseRepo struct {
	courses map[string]*model.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[string]*model.Course{}}
}

func (r *memCourseRepo) Create(_ context.Context, course *model.Course) error {
	cp := *course
	cp.CreatedAt = time.Now()
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
	return courses, nil
}

func (r *memCourseRepo) Update(_ context.Context, course *model.Course) (*model.Course, error) {
	if _, ok := r.courses[course.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *course
	r.courses[course.ID] = &cp
	out := cp
	return &out, nil
}

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
	out := []model.Enrollment{}
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
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

type memChatRepo struct {
	messages []model.ChatMessage
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

type fakeGenerator struct {
	reply string
}

func (g *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	if g.reply != "" {
		return g.reply, nil
	}
	return "mentor: " + prompt, nil
}

type fakeMailer struct{}

func (m *fakeMailer) Send(toName, toAddr, subject, body string) {}
