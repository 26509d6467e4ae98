package httpapi

import (
	"encoding/base64"
	"net/http"

	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/services"
)

type registerVideoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CourseID    *string `json:"course_id"`
	LessonID    *string `json:"lesson_id"`
}

type registerVideoResponse struct {
	Video     *models.Video `json:"video"`
	UploadURL string        `json:"upload_url"`
}

type synthesizeRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Voice    string  `json:"voice"`
	Speed    float64 `json:"speed"`
}

func (s *Server) handleRegisterVideo(w http.ResponseWriter, r *http.Request) {
	var req registerVideoRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	video, uploadURL, err := s.videos.RegisterUpload(r.Context(), &models.Video{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		LessonID:    req.LessonID,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, registerVideoResponse{Video: video, UploadURL: uploadURL})
}

func (s *Server) handleCompleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.videos.CompleteUpload(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleVideoURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.videos.PlaybackURL(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleListLessonVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.videos.ListByLesson(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, videos)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.videos.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleSynthesize proxies text to speech. Audio comes back base64 encoded
// inside JSON so browser clients can play it without a second request.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	audio, err := s.tts.Synthesize(r.Context(), &services.SynthesizeRequest{
		Text:     req.Text,
		Language: req.Language,
		Voice:    req.Voice,
		Speed:    req.Speed,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"audio_base64": base64.StdEncoding.EncodeToString(audio),
		"format":       "mp3",
	})
}
