// Package videos persists metadata for lesson videos stored in the media
// bucket. The bytes themselves never pass through the server; clients upload
// and download through presigned URLs.
package videos

import (
	"context"

	"github.com/learnable-edu/learnable/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, video *models.Video) error
	Get(ctx context.Context, id string) (*models.Video, error)
	ListByLesson(ctx context.Context, lessonID string) ([]*models.Video, error)
	MarkUploaded(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseID string) error
}
