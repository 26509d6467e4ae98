// Package courses persists course, lesson, and quiz content.
package courses

import (
	"context"

	"github.com/learnable-edu/learnable/internal/server/models"
)

type Repository interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id string) error

	ListLessonsByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	UpdateLesson(ctx context.Context, lesson *models.Lesson) error
	DeleteLesson(ctx context.Context, id string) error
	DeleteLessonsByCourse(ctx context.Context, courseID string) error

	ListQuizzesByCourse(ctx context.Context, courseID string) ([]*models.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*models.Quiz, error)
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	UpdateQuiz(ctx context.Context, quiz *models.Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
	DeleteQuizzesByCourse(ctx context.Context, courseID string) error
}
