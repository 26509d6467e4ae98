package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/learnable-edu/learnable/internal/server/models"
)

type coursePayload struct {
	Title       string `json:"title"`
	TitleTa     string `json:"title_ta"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

type lessonPayload struct {
	CourseID  string  `json:"course_id"`
	Title     string  `json:"title"`
	TitleTa   string  `json:"title_ta"`
	Content   string  `json:"content"`
	ContentTa string  `json:"content_ta"`
	Position  int     `json:"position"`
	VideoID   *string `json:"video_id"`
	QuizID    *string `json:"quiz_id"`
}

type quizPayload struct {
	CourseID  string          `json:"course_id"`
	LessonID  *string         `json:"lesson_id"`
	Title     string          `json:"title"`
	Questions json.RawMessage `json:"questions"`
}

func (p *coursePayload) model() *models.Course {
	return &models.Course{
		Title:       p.Title,
		TitleTa:     p.TitleTa,
		Description: p.Description,
		Category:    p.Category,
		Icon:        p.Icon,
	}
}

func (p *lessonPayload) model() *models.Lesson {
	return &models.Lesson{
		CourseID:  p.CourseID,
		Title:     p.Title,
		TitleTa:   p.TitleTa,
		Content:   p.Content,
		ContentTa: p.ContentTa,
		Position:  p.Position,
		VideoID:   p.VideoID,
		QuizID:    p.QuizID,
	}
}

func (p *quizPayload) model() *models.Quiz {
	return &models.Quiz{
		CourseID:  p.CourseID,
		LessonID:  p.LessonID,
		Title:     p.Title,
		Questions: p.Questions,
	}
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.content.ListCourses(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, courses)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.content.GetCourse(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, course)
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req coursePayload
	if !s.decodeBody(w, r, &req) {
		return
	}

	course, err := s.content.CreateCourse(r.Context(), req.model())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, course)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req coursePayload
	if !s.decodeBody(w, r, &req) {
		return
	}

	course := req.model()
	course.ID = r.PathValue("id")

	updated, err := s.content.UpdateCourse(r.Context(), course)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteCourse(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.content.ListLessons(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, lessons)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.content.GetLesson(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, lesson)
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonPayload
	if !s.decodeBody(w, r, &req) {
		return
	}

	lesson, err := s.content.CreateLesson(r.Context(), req.model())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, lesson)
}

func (s *Server) handleUpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonPayload
	if !s.decodeBody(w, r, &req) {
		return
	}

	lesson := req.model()
	lesson.ID = r.PathValue("id")

	updated, err := s.content.UpdateLesson(r.Context(), lesson)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteLesson(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.content.ListQuizzes(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, quizzes)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.content.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, quiz)
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizPayload
	if !s.decodeBody(w, r, &req) {
		return
	}

	quiz, err := s.content.CreateQuiz(r.Context(), req.model())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, quiz)
}

func (s *Server) handleUpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizPayload
	if !s.decodeBody(w, r, &req) {
		return
	}

	quiz := req.model()
	quiz.ID = r.PathValue("id")

	updated, err := s.content.UpdateQuiz(r.Context(), quiz)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
