package models

import (
	"encoding/json"
	"time"
)

// Course is a top-level learning unit. Titles are bilingual: Title holds the
// English text and TitleTa the Tamil text.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	TitleTa     string    `json:"title_ta"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`

	// Lessons is populated only when a single course is fetched.
	Lessons []*Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	TitleTa   string    `json:"title_ta"`
	Content   string    `json:"content"`
	ContentTa string    `json:"content_ta"`
	Position  int       `json:"position"`
	VideoID   *string   `json:"video_id"`
	QuizID    *string   `json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Quiz questions are stored as an opaque JSON document; the backend does not
// grade them.
type Quiz struct {
	ID        string          `json:"id"`
	CourseID  string          `json:"course_id"`
	LessonID  *string         `json:"lesson_id"`
	Title     string          `json:"title"`
	Questions json.RawMessage `json:"questions"`
	CreatedAt time.Time       `json:"created_at"`
}

// Video upload states.
const (
	VideoUploadPending  = "pending"
	VideoUploadComplete = "uploaded"
)

// Video is the metadata record for a lesson video stored in object storage.
// The bytes themselves live under StorageKey in the media bucket.
type Video struct {
	ID           string    `json:"id"`
	CourseID     *string   `json:"course_id"`
	LessonID     *string   `json:"lesson_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StorageKey   string    `json:"storage_key"`
	UploadStatus string    `json:"upload_status"`
	CreatedAt    time.Time `json:"created_at"`
}
