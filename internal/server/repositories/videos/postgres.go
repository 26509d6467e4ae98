package videos

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

const videoColumns = `id, course_id, lesson_id, title, description, storage_key, upload_status, created_at`

func scanVideo(scan func(dest ...any) error) (*models.Video, error) {
	v := &models.Video{}
	err := scan(&v.ID, &v.CourseID, &v.LessonID, &v.Title, &v.Description,
		&v.StorageKey, &v.UploadStatus, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *PostgresRepository) Create(ctx context.Context, video *models.Video) error {
	query := `INSERT INTO videos (` + videoColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.CourseID, video.LessonID, video.Title, video.Description,
		video.StorageKey, video.UploadStatus, video.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Video, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	v, err := scanVideo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) ListByLesson(ctx context.Context, lessonID string) ([]*models.Video, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE lesson_id = $1 ORDER BY created_at`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Video
	for rows.Next() {
		v, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE videos SET upload_status = $1 WHERE id = $2`, models.VideoUploadComplete, id)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
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

func (r *PostgresRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE course_id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
