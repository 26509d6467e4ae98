package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/dbx"
	"github.com/learnable-edu/learnable/internal/logging"
	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/repositories/repomanager"
)

// ContentService manages courses, lessons, and quizzes. It is thin by
// design: handlers map almost one-to-one onto repository calls, with id
// generation and a transactional cascade on course deletion as the only
// logic of note.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ContentService {
	return &ContentService{db: db, repomanager: m, logger: logger}
}

func (s *ContentService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repomanager.Courses(s.db).ListCourses(ctx)
}

// GetCourse returns the course with its lessons populated.
func (s *ContentService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	repo := s.repomanager.Courses(s.db)

	course, err := repo.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := repo.ListLessonsByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Lessons = lessons

	return course, nil
}

func (s *ContentService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course.Title == "" {
		return nil, fmt.Errorf("%w: course title is required", common.ErrorInvalidInput)
	}

	course.ID = uuid.NewString()
	course.CreatedAt = time.Now().UTC()

	if err := s.repomanager.Courses(s.db).CreateCourse(ctx, course); err != nil {
		s.logger.Error(ctx, "course insert failed", "error", err)
		return nil, common.ErrorInternal
	}
	return course, nil
}

func (s *ContentService) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course.Title == "" {
		return nil, fmt.Errorf("%w: course title is required", common.ErrorInvalidInput)
	}

	if err := s.repomanager.Courses(s.db).UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return s.repomanager.Courses(s.db).GetCourse(ctx, course.ID)
}

// DeleteCourse removes the course and everything hanging off it in one
// transaction, so a crash cannot leave orphaned lessons pointing at a
// deleted course.
func (s *ContentService) DeleteCourse(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		courseRepo := s.repomanager.Courses(tx)

		if err := courseRepo.DeleteLessonsByCourse(ctx, id); err != nil {
			return err
		}
		if err := courseRepo.DeleteQuizzesByCourse(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Videos(tx).DeleteByCourse(ctx, id); err != nil {
			return err
		}
		return courseRepo.DeleteCourse(ctx, id)
	})
}

func (s *ContentService) ListLessons(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	if courseID == "" {
		return []*models.Lesson{}, nil
	}
	return s.repomanager.Courses(s.db).ListLessonsByCourse(ctx, courseID)
}

func (s *ContentService) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	return s.repomanager.Courses(s.db).GetLesson(ctx, id)
}

func (s *ContentService) CreateLesson(ctx context.Context, lesson *models.Lesson) (*models.Lesson, error) {
	if lesson.Title == "" || lesson.CourseID == "" {
		return nil, fmt.Errorf("%w: lesson title and course_id are required", common.ErrorInvalidInput)
	}

	// the course must exist before a lesson can point at it
	if _, err := s.repomanager.Courses(s.db).GetCourse(ctx, lesson.CourseID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown course", common.ErrorInvalidInput)
		}
		return nil, err
	}

	lesson.ID = uuid.NewString()
	lesson.CreatedAt = time.Now().UTC()

	if err := s.repomanager.Courses(s.db).CreateLesson(ctx, lesson); err != nil {
		s.logger.Error(ctx, "lesson insert failed", "error", err)
		return nil, common.ErrorInternal
	}
	return lesson, nil
}

func (s *ContentService) UpdateLesson(ctx context.Context, lesson *models.Lesson) (*models.Lesson, error) {
	if lesson.Title == "" {
		return nil, fmt.Errorf("%w: lesson title is required", common.ErrorInvalidInput)
	}

	if err := s.repomanager.Courses(s.db).UpdateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return s.repomanager.Courses(s.db).GetLesson(ctx, lesson.ID)
}

func (s *ContentService) DeleteLesson(ctx context.Context, id string) error {
	return s.repomanager.Courses(s.db).DeleteLesson(ctx, id)
}

func (s *ContentService) ListQuizzes(ctx context.Context, courseID string) ([]*models.Quiz, error) {
	if courseID == "" {
		return []*models.Quiz{}, nil
	}
	return s.repomanager.Courses(s.db).ListQuizzesByCourse(ctx, courseID)
}

func (s *ContentService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.repomanager.Courses(s.db).GetQuiz(ctx, id)
}

func (s *ContentService) CreateQuiz(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if quiz.Title == "" || quiz.CourseID == "" {
		return nil, fmt.Errorf("%w: quiz title and course_id are required", common.ErrorInvalidInput)
	}

	quiz.ID = uuid.NewString()
	quiz.CreatedAt = time.Now().UTC()
	if len(quiz.Questions) == 0 {
		quiz.Questions = []byte("[]")
	}

	if err := s.repomanager.Courses(s.db).CreateQuiz(ctx, quiz); err != nil {
		s.logger.Error(ctx, "quiz insert failed", "error", err)
		return nil, common.ErrorInternal
	}
	return quiz, nil
}

func (s *ContentService) UpdateQuiz(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if quiz.Title == "" {
		return nil, fmt.Errorf("%w: quiz title is required", common.ErrorInvalidInput)
	}

	if err := s.repomanager.Courses(s.db).UpdateQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	return s.repomanager.Courses(s.db).GetQuiz(ctx, quiz.ID)
}

func (s *ContentService) DeleteQuiz(ctx context.Context, id string) error {
	return s.repomanager.Courses(s.db).DeleteQuiz(ctx, id)
}
