package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appconfig "github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/pkg/logger"
)

// ReportsFolder is the key prefix for manager report workbooks.
const ReportsFolder = "reports"

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Uploader stores a file and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (*UploadResult, error)
}

type UploadResult struct {
	Key     string
	FileURL string
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(cfg appconfig.S3Config) *S3Storage {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
		)
		if err != nil {
			logger.Warn("Falling back to region-only AWS config", map[string]interface{}{
				"region": cfg.Region,
				"error":  err.Error(),
			})
			awsCfg = aws.Config{
				Region: cfg.Region,
			}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: cfg.BaseURL,
	}
}

// Upload puts body under folder/<uuid><ext of filename>.
func (s *S3Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (*UploadResult, error) {
	key := objectKey(folder, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               body,
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filepath.Base(filename))),
	})
	if err != nil {
		logger.Error("Failed to upload object", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return nil, fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	result := &UploadResult{
		Key:     key,
		FileURL: fileURL(s.baseURL, s.bucket, s.region, key),
	}
	logger.Info("Object uploaded", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
	})
	return result, nil
}

func objectKey(folder, filename string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(filename))
}

func fileURL(baseURL, bucket, region, key string) string {
	if baseURL != "" {
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
