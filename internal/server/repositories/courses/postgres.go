package courses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/dbx"
	"github.com/learnable-edu/learnable/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func wrapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func execAffecting(ctx context.Context, db dbx.DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// --- courses ---

const courseColumns = `id, title, title_ta, description, category, icon, created_at`

func (r *PostgresRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Course
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.TitleTa, &c.Description, &c.Category, &c.Icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	c := &models.Course{}
	err := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.TitleTa, &c.Description, &c.Category, &c.Icon, &c.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return c, nil
}

func (r *PostgresRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (` + courseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.TitleTa, course.Description, course.Category, course.Icon, course.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	query := `UPDATE courses SET title = $1, title_ta = $2, description = $3, category = $4, icon = $5 WHERE id = $6`
	return execAffecting(ctx, r.db, query,
		course.Title, course.TitleTa, course.Description, course.Category, course.Icon, course.ID)
}

func (r *PostgresRepository) DeleteCourse(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, `DELETE FROM courses WHERE id = $1`, id)
}

// --- lessons ---

const lessonColumns = `id, course_id, title, title_ta, content, content_ta, position, video_id, quiz_id, created_at`

func scanLesson(scan func(dest ...any) error) (*models.Lesson, error) {
	l := &models.Lesson{}
	err := scan(&l.ID, &l.CourseID, &l.Title, &l.TitleTa, &l.Content, &l.ContentTa,
		&l.Position, &l.VideoID, &l.QuizID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *PostgresRepository) ListLessonsByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+lessonColumns+` FROM lessons WHERE course_id = $1 ORDER BY position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id)
	l, err := scanLesson(row.Scan)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return l, nil
}

func (r *PostgresRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	query := `INSERT INTO lessons (` + lessonColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		lesson.ID, lesson.CourseID, lesson.Title, lesson.TitleTa, lesson.Content, lesson.ContentTa,
		lesson.Position, lesson.VideoID, lesson.QuizID, lesson.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	query := `UPDATE lessons SET title = $1, title_ta = $2, content = $3, content_ta = $4,
		position = $5, video_id = $6, quiz_id = $7 WHERE id = $8`
	return execAffecting(ctx, r.db, query,
		lesson.Title, lesson.TitleTa, lesson.Content, lesson.ContentTa,
		lesson.Position, lesson.VideoID, lesson.QuizID, lesson.ID)
}

func (r *PostgresRepository) DeleteLesson(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, `DELETE FROM lessons WHERE id = $1`, id)
}

func (r *PostgresRepository) DeleteLessonsByCourse(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE course_id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// --- quizzes ---

const quizColumns = `id, course_id, lesson_id, title, questions, created_at`

func (r *PostgresRepository) ListQuizzesByCourse(ctx context.Context, courseID string) ([]*models.Quiz, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE course_id = $1 ORDER BY created_at`, courseID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Quiz
	for rows.Next() {
		q := &models.Quiz{}
		var questions []byte
		if err := rows.Scan(&q.ID, &q.CourseID, &q.LessonID, &q.Title, &questions, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		q.Questions = questions
		result = append(result, q)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	q := &models.Quiz{}
	var questions []byte
	err := r.db.QueryRowContext(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id).
		Scan(&q.ID, &q.CourseID, &q.LessonID, &q.Title, &questions, &q.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	q.Questions = questions
	return q, nil
}

func (r *PostgresRepository) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	query := `INSERT INTO quizzes (` + quizColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		quiz.ID, quiz.CourseID, quiz.LessonID, quiz.Title, []byte(quiz.Questions), quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateQuiz(ctx context.Context, quiz *models.Quiz) error {
	query := `UPDATE quizzes SET lesson_id = $1, title = $2, questions = $3 WHERE id = $4`
	return execAffecting(ctx, r.db, query, quiz.LessonID, quiz.Title, []byte(quiz.Questions), quiz.ID)
}

func (r *PostgresRepository) DeleteQuiz(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, `DELETE FROM quizzes WHERE id = $1`, id)
}

func (r *PostgresRepository) DeleteQuizzesByCourse(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE course_id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
