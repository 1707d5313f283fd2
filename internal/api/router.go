package api

import (
	"net/http"
	"time"

	"courseapp/internal/api/handler"
	appMiddleware "courseapp/internal/api/middleware"
	"courseapp/internal/app/service"
	"courseapp/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	courseService *service.CourseService,
	enrollmentService *service.EnrollmentService,
	chatService *service.ChatService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes. These never pass through the page gate; each resource
	// group verifies the token itself.
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(appMiddleware.Verifier(security.TokenAuth))

		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		courseHandler := handler.NewCourseHandler(courseService)
		v1.Route("/courses", courseHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes)

		enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
		v1.Route("/enrollments", enrollmentHandler.RegisterRoutes)

		chatHandler := handler.NewChatHandler(chatService)
		v1.Route("/chat", chatHandler.RegisterRoutes)
	})

	// Static assets and the favicon bypass the page gate.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("./web/static"))))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./web/static/favicon.ico")
	})

	// Every remaining path is page navigation, protected by the single
	// access-control filter and served as the SPA shell.
	r.With(appMiddleware.PageGate).Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./web/index.html")
	}))

	return r
}
