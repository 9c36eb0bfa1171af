package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/logging"
	sc "github.com/bloggyhq/bloggy/internal/server/config"
	"github.com/bloggyhq/bloggy/internal/server/models"
	"github.com/bloggyhq/bloggy/internal/server/repositories/repomanager"
)

// ObjectStore persists image bytes under a storage key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
}

// S3ObjectStore stores objects in an S3-compatible bucket (MinIO in
// development).
type S3ObjectStore struct {
	client *s3.Client
	bucket string
}

// NewS3ObjectStore builds an S3 client from static credentials and an
// optional custom endpoint.
func NewS3ObjectStore(ctx context.Context, cfg *sc.Config) (*S3ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,     // MINIO_ROOT_USER
			cfg.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3ObjectStore{client: client, bucket: cfg.S3Bucket}, nil
}

func (s *S3ObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		ContentType: &contentType,
		Body:        body,
	})
	return err
}

// allowedImageTypes mirrors the upload policy: jpeg/jpg/png/gif, matched on
// both file extension and declared content type.
var allowedImageTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
}

// ImageService validates uploads, writes the bytes to object storage, and
// records metadata. Posts reference images by the returned storage key.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	maxBytes    int64
	logger      logging.Logger
}

// NewImageService constructs an ImageService over the given object store.
func NewImageService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, maxBytes int64, logger logging.Logger) *ImageService {
	return &ImageService{
		db:          db,
		repomanager: m,
		store:       store,
		maxBytes:    maxBytes,
		logger:      logger.With("module", "image_service"),
	}
}

// randomStorageKey spreads uploads over date-based prefixes.
func randomStorageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// Upload validates the file and persists it. Size and type checks run before
// any byte reaches storage or the database.
func (s *ImageService) Upload(ctx context.Context, ownerID, fileName, contentType string, size int64, body io.Reader) (*models.Image, error) {
	if fileName == "" || size == 0 {
		return nil, common.ErrorNoFile
	}
	if size > s.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", common.ErrorFileTooLarge, s.maxBytes)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	subtype := contentType
	if i := strings.Index(contentType, "/"); i >= 0 {
		subtype = contentType[i+1:]
	}
	if !allowedImageTypes[ext] || !allowedImageTypes[strings.ToLower(subtype)] {
		return nil, fmt.Errorf("%w: only jpeg, jpg, png and gif are accepted", common.ErrorBadFileType)
	}

	image := &models.Image{
		ID:          uuid.NewString(),
		FileName:    fileName,
		StorageKey:  randomStorageKey("." + ext),
		OwnerID:     ownerID,
		SizeBytes:   size,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}

	// the announced size is client data; the stream itself is capped too
	if err := s.store.Put(ctx, image.StorageKey, contentType, io.LimitReader(body, s.maxBytes)); err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}

	if err := s.repomanager.Images(s.db).Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}
