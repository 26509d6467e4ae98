// Package httpapi exposes the application services as a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/learnable-edu/learnable/internal/logging"
	"github.com/learnable-edu/learnable/internal/server/services"
)

// Server wires the application services into an http.Handler. It owns no
// state of its own; all behavior lives in the services.
type Server struct {
	accounts *services.AccountService
	content  *services.ContentService
	videos   *services.VideoService
	tts      *services.TTSService
	logger   logging.Logger
}

func NewServer(accounts *services.AccountService, content *services.ContentService,
	videos *services.VideoService, tts *services.TTSService, logger logging.Logger) *Server {
	return &Server{
		accounts: accounts,
		content:  content,
		videos:   videos,
		tts:      tts,
		logger:   logger,
	}
}

// Handler builds the route table. Read endpoints are public, mutations
// require a bearer token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/google", s.handleGoogleLogin)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)
	mux.HandleFunc("PUT /api/auth/profile", s.handleUpdateProfile)
	mux.HandleFunc("PUT /api/auth/password", s.handleChangePassword)

	mux.HandleFunc("GET /api/courses", s.handleListCourses)
	mux.HandleFunc("GET /api/courses/{id}", s.handleGetCourse)
	mux.HandleFunc("POST /api/courses", s.authorized(s.handleCreateCourse))
	mux.HandleFunc("PUT /api/courses/{id}", s.authorized(s.handleUpdateCourse))
	mux.HandleFunc("DELETE /api/courses/{id}", s.authorized(s.handleDeleteCourse))

	mux.HandleFunc("GET /api/courses/{id}/lessons", s.handleListLessons)
	mux.HandleFunc("GET /api/lessons/{id}", s.handleGetLesson)
	mux.HandleFunc("POST /api/lessons", s.authorized(s.handleCreateLesson))
	mux.HandleFunc("PUT /api/lessons/{id}", s.authorized(s.handleUpdateLesson))
	mux.HandleFunc("DELETE /api/lessons/{id}", s.authorized(s.handleDeleteLesson))

	mux.HandleFunc("GET /api/courses/{id}/quizzes", s.handleListQuizzes)
	mux.HandleFunc("GET /api/quizzes/{id}", s.handleGetQuiz)
	mux.HandleFunc("POST /api/quizzes", s.authorized(s.handleCreateQuiz))
	mux.HandleFunc("PUT /api/quizzes/{id}", s.authorized(s.handleUpdateQuiz))
	mux.HandleFunc("DELETE /api/quizzes/{id}", s.authorized(s.handleDeleteQuiz))

	mux.HandleFunc("GET /api/lessons/{id}/videos", s.handleListLessonVideos)
	mux.HandleFunc("GET /api/videos/{id}/url", s.handleVideoURL)
	mux.HandleFunc("POST /api/videos", s.authorized(s.handleRegisterVideo))
	mux.HandleFunc("POST /api/videos/{id}/complete", s.authorized(s.handleCompleteVideo))
	mux.HandleFunc("DELETE /api/videos/{id}", s.authorized(s.handleDeleteVideo))

	mux.HandleFunc("POST /api/tts", s.handleSynthesize)

	return corsMiddleware(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
