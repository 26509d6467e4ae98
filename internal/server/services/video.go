package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/logging"
	sc "github.com/learnable-edu/learnable/internal/server/config"
	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/repositories/repomanager"
)

// presignExpiry bounds how long an issued upload or playback URL stays
// usable.
const presignExpiry = 15 * time.Minute

// Indirections over the AWS SDK so tests can exercise error paths without a
// live S3 endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// VideoService issues presigned URLs for lesson video upload and playback
// and tracks video metadata. Bytes go straight between the client and the
// bucket.
type VideoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewVideoService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *VideoService {
	return &VideoService{db: db, repomanager: m, config: config, logger: logger}
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("videos/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *VideoService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *VideoService) presignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *VideoService) presignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// RegisterUpload creates the metadata record in "pending" state and returns
// it together with a presigned PUT URL the client uploads to.
func (s *VideoService) RegisterUpload(ctx context.Context, video *models.Video) (*models.Video, string, error) {
	if video.Title == "" {
		return nil, "", fmt.Errorf("%w: video title is required", common.ErrorInvalidInput)
	}

	video.ID = uuid.NewString()
	video.StorageKey = randomStorageKey()
	video.UploadStatus = models.VideoUploadPending
	video.CreatedAt = time.Now().UTC()

	uploadURL, err := s.presignedPutURL(ctx, video.StorageKey)
	if err != nil {
		s.logger.Error(ctx, "presign put failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	if err := s.repomanager.Videos(s.db).Create(ctx, video); err != nil {
		s.logger.Error(ctx, "video insert failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	return video, uploadURL, nil
}

// CompleteUpload flips the record to "uploaded" once the client confirms the
// PUT succeeded.
func (s *VideoService) CompleteUpload(ctx context.Context, id string) error {
	return s.repomanager.Videos(s.db).MarkUploaded(ctx, id)
}

// PlaybackURL returns a short-lived GET URL for the stored video.
func (s *VideoService) PlaybackURL(ctx context.Context, id string) (string, error) {
	video, err := s.repomanager.Videos(s.db).Get(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.presignedGetURL(ctx, video.StorageKey)
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "video_id", id, "error", err)
		return "", common.ErrorInternal
	}
	return url, nil
}

func (s *VideoService) ListByLesson(ctx context.Context, lessonID string) ([]*models.Video, error) {
	if lessonID == "" {
		return []*models.Video{}, nil
	}
	return s.repomanager.Videos(s.db).ListByLesson(ctx, lessonID)
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Videos(s.db).Delete(ctx, id)
}
